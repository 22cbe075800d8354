package core

import (
	"math"
	"math/rand/v2"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Hash32 is a Wang-style 32-bit integer mix
func Hash32(a uint32) uint32 {
	a = (a + 0x7ed55d16) + (a << 12)
	a = (a ^ 0xc761c23c) ^ (a >> 19)
	a = (a + 0x165667b1) + (a << 5)
	a = (a + 0xd3a2646c) ^ (a << 9)
	a = (a + 0xfd7046c5) + (a << 3)
	a = (a ^ 0xb55a4f09) ^ (a >> 16)
	return a
}

// SeedFor derives the 128-bit PCG state for one lane from (iteration, pixel, depth).
// Hash32 is a bijection, so distinct triples of 32-bit values give distinct states.
func SeedFor(iteration, pixelIndex, depth int) (uint64, uint64) {
	return seedFor(iteration, pixelIndex, depth, laneStream)
}

const (
	laneStream   uint32 = 0
	cameraStream uint32 = 0x9e3779b9 // Keeps primary-ray jitter independent of depth-0 shading
)

func seedFor(iteration, pixelIndex, depth int, stream uint32) (uint64, uint64) {
	hi := uint64(Hash32(uint32(iteration)))<<32 | uint64(Hash32(uint32(depth)))
	lo := uint64(Hash32(uint32(pixelIndex)))<<32 | uint64(Hash32(stream))
	return hi, lo
}

// NewLaneSampler returns the deterministic sampler for one lane at one depth
func NewLaneSampler(iteration, pixelIndex, depth int) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewPCG(SeedFor(iteration, pixelIndex, depth))))
}

// NewCameraSampler returns the sampler used for primary-ray jitter of one pixel
func NewCameraSampler(iteration, pixelIndex int) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewPCG(seedFor(iteration, pixelIndex, 0, cameraStream))))
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	a := 2.0 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	// Find a vector perpendicular to normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}

	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec3(0, 0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}

// SamplePointInUnitSphere generates a random point inside a unit sphere using spherical coordinates
func SamplePointInUnitSphere(s1, s2 Vec2) Vec3 {
	// r = ∛(u₁) to account for volume scaling
	r := math.Cbrt(s1.X)
	phi := 2 * math.Pi * s1.Y
	cosTheta := 2*s2.X - 1
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)

	return NewVec3(r*sinTheta*math.Cos(phi), r*sinTheta*math.Sin(phi), r*cosTheta)
}
