package renderer

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/scene"
)

// firstBounceCache holds the camera rays and their intersections from the first iteration.
// Replaying it is only correct while primary rays carry no per-iteration jitter.
type firstBounceCache struct {
	paths  []core.PathState
	isects []geometry.Intersection
	valid  bool
}

func newFirstBounceCache(pixels int) *firstBounceCache {
	return &firstBounceCache{
		paths:  make([]core.PathState, pixels),
		isects: make([]geometry.Intersection, pixels),
	}
}

// populate traces the primary rays once and stores them verbatim
func (c *firstBounceCache) populate(runner core.Runner, s *scene.Scene, iteration, maxDepth int) {
	GeneratePrimaryRays(runner, s.Camera, iteration, maxDepth, c.paths, Jitter{})
	geometry.IntersectPaths(runner, s, c.paths, c.isects, len(c.paths))
	c.valid = true
}

// replay copies the cached depth-0 state into the working arrays
func (c *firstBounceCache) replay(paths []core.PathState, isects []geometry.Intersection) {
	copy(paths, c.paths)
	copy(isects, c.isects)
}

func (c *firstBounceCache) release() {
	c.paths = nil
	c.isects = nil
	c.valid = false
}
