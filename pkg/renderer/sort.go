package renderer

import (
	"sort"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
)

// byMaterial orders paired (path, intersection) slices by intersection material
type byMaterial struct {
	paths  []core.PathState
	isects []geometry.Intersection
}

func (b byMaterial) Len() int { return len(b.paths) }

func (b byMaterial) Less(i, j int) bool {
	return b.isects[i].MaterialID < b.isects[j].MaterialID
}

func (b byMaterial) Swap(i, j int) {
	b.paths[i], b.paths[j] = b.paths[j], b.paths[i]
	b.isects[i], b.isects[j] = b.isects[j], b.isects[i]
}

// SortByMaterial sorts paths[0:n] by the material of their latest intersection,
// carrying each intersection with its path. Ties are left in any order.
func SortByMaterial(paths []core.PathState, isects []geometry.Intersection, n int) {
	sort.Sort(byMaterial{paths: paths[:n], isects: isects[:n]})
}
