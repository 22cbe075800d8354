package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// Accumulate adds every lane's throughput into image[PixelIndex].
// It must see the whole population, including lanes compacted out early.
func Accumulate(runner core.Runner, paths []core.PathState, accum []core.Vec3) {
	// PixelIndex is unique per lane, so lanes never share an output slot
	runner.Run(len(paths), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &paths[i]
			accum[p.PixelIndex] = accum[p.PixelIndex].Add(p.Throughput)
		}
	})
}

// ToImage converts accumulated sums to 8-bit color by averaging over iterations
// and clamping each channel to [0, 255]
func ToImage(accum []core.Vec3, width, height, iterations int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if iterations <= 0 {
		return img
	}

	scale := 255.0 / float64(iterations)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, vec3ToColor(accum[y*width+x].Multiply(scale)))
		}
	}
	return img
}

// vec3ToColor clamps a color already scaled to [0, 255]
func vec3ToColor(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 255)
	return color.RGBA{
		R: uint8(c.X),
		G: uint8(c.Y),
		B: uint8(c.Z),
		A: 255,
	}
}
