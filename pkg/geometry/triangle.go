package geometry

import "github.com/df07/go-wavefront-tracer/pkg/core"

// TriangleIntersect tests a ray against one triangle using the Möller-Trumbore algorithm.
// The returned normal is the unnormalized geometric normal edge1 × edge2.
func TriangleIntersect(ray core.Ray, v0, v1, v2 core.Vec3, tMin, tMax float64) (float64, core.Vec3, bool) {
	const epsilon = 1e-12

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return 0, core.Vec3{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, core.Vec3{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, core.Vec3{}, false
	}

	t := f * edge2.Dot(q)
	if t <= tMin || t >= tMax {
		return 0, core.Vec3{}, false
	}

	return t, edge1.Cross(edge2), true
}

// MeshIntersect scans a triangle soup linearly and returns the closest hit
func MeshIntersect(ray core.Ray, vertices []core.Vec3, tMin, tMax float64) (float64, core.Vec3, bool) {
	closest := tMax
	var normal core.Vec3
	hit := false

	for i := 0; i+2 < len(vertices); i += 3 {
		t, n, ok := TriangleIntersect(ray, vertices[i], vertices[i+1], vertices[i+2], tMin, closest)
		if ok {
			closest, normal, hit = t, n, true
		}
	}

	if !hit {
		return 0, core.Vec3{}, false
	}
	return closest, normal.Normalize(), true
}
