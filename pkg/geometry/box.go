package geometry

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

const (
	boxHalfExtent = 0.5
	parallelEps   = 1e-12
)

// BoxIntersect tests an object-space ray against the unit cube [-0.5, 0.5]³ with the slab method.
// A ray starting inside the box hits the far side.
func BoxIntersect(ray core.Ray, tMin, tMax float64) (float64, core.Vec3, bool) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	nearAxis, farAxis := -1, -1

	for axis := 0; axis < 3; axis++ {
		o := ray.Origin.Component(axis)
		d := ray.Direction.Component(axis)

		if math.Abs(d) < parallelEps {
			// Parallel to this slab: miss unless the origin lies between the planes
			if o < -boxHalfExtent || o > boxHalfExtent {
				return 0, core.Vec3{}, false
			}
			continue
		}

		t1 := (-boxHalfExtent - o) / d
		t2 := (boxHalfExtent - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear, nearAxis = t1, axis
		}
		if t2 < tFar {
			tFar, farAxis = t2, axis
		}
	}

	if nearAxis < 0 || tNear > tFar {
		return 0, core.Vec3{}, false
	}

	// Entering face: normal opposes the direction; exiting face: normal follows it
	if tNear > tMin && tNear < tMax {
		return tNear, axisNormal(nearAxis, -ray.Direction.Component(nearAxis)), true
	}
	if tFar > tMin && tFar < tMax {
		return tFar, axisNormal(farAxis, ray.Direction.Component(farAxis)), true
	}
	return 0, core.Vec3{}, false
}

// axisNormal returns the unit vector along axis with the sign of s
func axisNormal(axis int, s float64) core.Vec3 {
	sign := 1.0
	if s < 0 {
		sign = -1.0
	}
	var n core.Vec3
	switch axis {
	case 0:
		n.X = sign
	case 1:
		n.Y = sign
	default:
		n.Z = sign
	}
	return n
}
