package geometry

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// unitSphereRadius is the object-space radius of every sphere primitive
const unitSphereRadius = 0.5

// SphereIntersect tests an object-space ray against the unit sphere.
// The ray direction need not be normalized.
func SphereIntersect(ray core.Ray, tMin, tMax float64) (float64, core.Vec3, bool) {
	oc := ray.Origin

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - unitSphereRadius*unitSphereRadius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return 0, core.Vec3{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return 0, core.Vec3{}, false
		}
	}

	outwardNormal := ray.At(root).Multiply(1.0 / unitSphereRadius)
	return root, outwardNormal, true
}
