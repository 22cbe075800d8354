package renderer

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/scene"
)

// Jitter selects the per-iteration perturbations applied to primary rays.
// Any enabled jitter makes primary rays differ between iterations.
type Jitter struct {
	Antialias    bool // Random sub-pixel position instead of the pixel center
	DepthOfField bool // Sample a lens point and refocus on the focal plane
}

// Enabled reports whether any jitter is on
func (j Jitter) Enabled() bool {
	return j.Antialias || j.DepthOfField
}

// GeneratePrimaryRays fills paths with one camera ray per pixel.
// Every lane starts white with maxDepth bounces and PixelIndex = y*width + x.
func GeneratePrimaryRays(runner core.Runner, camera scene.Camera, iteration, maxDepth int, paths []core.PathState, jitter Jitter) {
	runner.Run(camera.PixelCount(), func(lo, hi int) {
		for index := lo; index < hi; index++ {
			x := index % camera.Width
			y := index / camera.Width
			paths[index] = core.PathState{
				Ray:              primaryRay(camera, iteration, x, y, index, jitter),
				Throughput:       core.White,
				PixelIndex:       index,
				RemainingBounces: maxDepth,
			}
		}
	})
}

func primaryRay(camera scene.Camera, iteration, x, y, index int, jitter Jitter) core.Ray {
	px, py := float64(x)+0.5, float64(y)+0.5

	if !jitter.Enabled() {
		return core.NewRay(camera.Position, camera.GetRayDirection(px, py))
	}

	sampler := core.NewCameraSampler(iteration, index)
	if jitter.Antialias {
		offset := sampler.Get2D()
		px, py = float64(x)+offset.X, float64(y)+offset.Y
	}

	ray := core.NewRay(camera.Position, camera.GetRayDirection(px, py))
	if !jitter.DepthOfField || camera.LensRadius <= 0 {
		return ray
	}

	// Every ray through this pixel converges on the same point of the focal plane
	lens := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(camera.LensRadius)
	focusT := camera.FocalDistance / ray.Direction.Dot(camera.View)
	focus := ray.At(focusT)

	origin := ray.Origin.Add(camera.Right.Multiply(lens.X)).Add(camera.Up.Multiply(lens.Y))
	return core.NewRay(origin, focus.Subtract(origin).Normalize())
}
