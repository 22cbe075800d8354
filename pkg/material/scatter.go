package material

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// RayOffset pushes a scattered ray's origin off the surface along its new direction
const RayOffset = 1e-4

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Multiplicative throughput factor
}

// Scatter samples a new direction and throughput factor for a non-emissive hit.
// normal must face against rayIn; frontFace reports whether the ray arrived from outside.
func (m Material) Scatter(rayIn core.Ray, point, normal core.Vec3, frontFace bool, sampler core.Sampler) ScatterResult {
	var direction, attenuation core.Vec3

	switch m.Kind {
	case Specular:
		direction, attenuation = m.scatterSpecular(rayIn, normal, sampler)
	case Refractive:
		direction, attenuation = m.scatterRefractive(rayIn, normal, frontFace, sampler)
	default:
		// BRDF albedo/π times cosθ over the cosθ/π pdf leaves the albedo
		direction = core.SampleCosineHemisphere(normal, sampler.Get2D())
		attenuation = m.Color
	}

	direction = direction.Normalize()
	return ScatterResult{
		Scattered:   core.NewRay(point.Add(direction.Multiply(RayOffset)), direction),
		Attenuation: attenuation,
	}
}

func (m Material) scatterSpecular(rayIn core.Ray, normal core.Vec3, sampler core.Sampler) (core.Vec3, core.Vec3) {
	reflected := Reflect(rayIn.Direction.Normalize(), normal)

	if m.Fuzz > 0 {
		perturbation := core.SamplePointInUnitSphere(sampler.Get2D(), sampler.Get2D()).Multiply(m.Fuzz)
		// Keep the mirror direction when the perturbation would dive below the surface
		if fuzzed := reflected.Add(perturbation); fuzzed.Dot(normal) > 0 {
			reflected = fuzzed
		}
	}

	return reflected, m.SpecularColor
}

func (m Material) scatterRefractive(rayIn core.Ray, normal core.Vec3, frontFace bool, sampler core.Sampler) (core.Vec3, core.Vec3) {
	refractionRatio := m.IOR
	if frontFace {
		refractionRatio = 1.0 / m.IOR
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	// Total internal reflection
	cannotRefract := refractionRatio*sinTheta > 1.0

	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		return Reflect(unitDirection, normal), m.SpecularColor
	}
	return Refract(unitDirection, normal, refractionRatio), m.Color
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract calculates the refraction of a unit vector using Snell's law
func Refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
