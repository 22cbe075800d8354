package renderer

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
)

// CompactPaths partitions paths[0:n] so every lane with bounces left comes first
// and returns how many there are. isects is permuted in lock-step.
// The order within each group is not preserved.
func CompactPaths(paths []core.PathState, isects []geometry.Intersection, n int) int {
	lo, hi := 0, n-1
	for {
		for lo <= hi && paths[lo].Active() {
			lo++
		}
		for lo <= hi && !paths[hi].Active() {
			hi--
		}
		if lo >= hi {
			return lo
		}
		paths[lo], paths[hi] = paths[hi], paths[lo]
		isects[lo], isects[hi] = isects[hi], isects[lo]
		lo++
		hi--
	}
}

// CountActive returns the number of lanes in paths[0:n] with bounces left
func CountActive(paths []core.PathState, n int) int {
	count := 0
	for i := 0; i < n; i++ {
		if paths[i].Active() {
			count++
		}
	}
	return count
}
