package integrator

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

// ShadePath advances one lane by one bounce given its intersection for this depth.
//
// A miss terminates the path black. An emissive hit multiplies in the light and
// terminates. Any other hit scatters the ray, and a path that spends its last
// bounce this way is discarded as black. Lanes already terminated are left alone.
// Random choices come from a generator seeded by (iteration, PixelIndex, depth).
func ShadePath(path *core.PathState, isect geometry.Intersection, materials []material.Material, iteration, depth int) {
	if !path.Active() {
		return
	}

	if !isect.Hit() {
		path.Throughput = core.Black
		path.Terminate()
		return
	}

	mat := &materials[isect.MaterialID]
	if mat.IsEmissive() {
		path.Throughput = path.Throughput.MultiplyVec(mat.Emission())
		path.Terminate()
		return
	}

	sampler := core.NewLaneSampler(iteration, path.PixelIndex, depth)
	point := path.Ray.At(isect.T)
	scatter := mat.Scatter(path.Ray, point, isect.Normal, isect.FrontFace, sampler)

	path.Throughput = path.Throughput.MultiplyVec(scatter.Attenuation)
	path.Ray = scatter.Scattered
	path.RemainingBounces--

	// Out of budget without reaching a light
	if path.RemainingBounces == 0 {
		path.Throughput = core.Black
	}
}

// ShadePaths runs ShadePath over paths[0:n] paired with isects[0:n]
func ShadePaths(runner core.Runner, paths []core.PathState, isects []geometry.Intersection, materials []material.Material, n, iteration, depth int) {
	runner.Run(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ShadePath(&paths[i], isects[i], materials, iteration, depth)
		}
	})
}
