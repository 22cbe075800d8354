package renderer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

func TestAccumulate_UsesPixelIndex(t *testing.T) {
	paths := []core.PathState{
		{PixelIndex: 2, Throughput: core.NewVec3(1, 0, 0)},
		{PixelIndex: 0, Throughput: core.NewVec3(0, 1, 0)},
		{PixelIndex: 1, Throughput: core.NewVec3(0, 0, 1), RemainingBounces: 3},
	}
	accum := make([]core.Vec3, 3)

	Accumulate(core.SerialRunner{}, paths, accum)
	Accumulate(core.SerialRunner{}, paths, accum)

	assert.Equal(t, core.NewVec3(0, 2, 0), accum[0])
	assert.Equal(t, core.NewVec3(0, 0, 2), accum[1])
	assert.Equal(t, core.NewVec3(2, 0, 0), accum[2])
}

func TestAccumulate_ParallelMatchesSerial(t *testing.T) {
	const n = 5000
	paths := make([]core.PathState, n)
	for i := range paths {
		// Reverse order so chunk boundaries do not line up with pixels
		paths[i] = core.PathState{PixelIndex: n - 1 - i, Throughput: core.NewVec3(float64(i), 1, 0.5)}
	}

	serial := make([]core.Vec3, n)
	parallel := make([]core.Vec3, n)
	pool := NewWorkerPool(4)
	defer pool.Stop()

	Accumulate(core.SerialRunner{}, paths, serial)
	Accumulate(pool, paths, parallel)

	assert.Equal(t, serial, parallel)
}

func TestToImage_AveragesAndClamps(t *testing.T) {
	accum := []core.Vec3{
		core.NewVec3(1, 0.5, 0), // Averaged over 2: (0.5, 0.25, 0)
		core.NewVec3(4, -1, 2),  // Out of range on both ends
	}

	img := ToImage(accum, 2, 1, 2)

	assert.Equal(t, color.RGBA{R: 127, G: 63, B: 0, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 255, A: 255}, img.RGBAAt(1, 0))
}

func TestToImage_NoIterations(t *testing.T) {
	img := ToImage(make([]core.Vec3, 4), 2, 2, 0)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{}, img.RGBAAt(1, 1))
}
