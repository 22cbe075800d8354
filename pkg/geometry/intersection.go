package geometry

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/scene"
)

const (
	// NoHit is the sentinel T of an intersection record that found nothing
	NoHit = -1.0

	// HitEpsilon is the smallest t accepted as a hit, to avoid self-intersection at the ray origin
	HitEpsilon = 1e-4
)

// Intersection is the nearest-hit record of one ray for one depth.
// MaterialID, Normal and FrontFace are only meaningful when T > 0.
type Intersection struct {
	T          float64
	MaterialID int
	Normal     core.Vec3 // Unit world-space normal, facing against the ray
	FrontFace  bool      // Whether the ray hit the outside of the surface
}

// Miss returns the no-intersection record
func Miss() Intersection {
	return Intersection{T: NoHit, MaterialID: -1}
}

// Hit reports whether the record found a surface
func (i Intersection) Hit() bool {
	return i.T > 0
}

// Nearest scans every primitive in the scene and returns the closest positive hit
func Nearest(ray core.Ray, s *scene.Scene) Intersection {
	best := Miss()
	closest := math.Inf(1)

	for gi := range s.Geoms {
		g := &s.Geoms[gi]

		// Object-space ray; t is shared with world space because the direction is not renormalized
		objRay := core.NewRay(g.Transform.PointToObject(ray.Origin), g.Transform.DirToObject(ray.Direction))

		var t float64
		var objNormal core.Vec3
		var ok bool

		switch g.Type {
		case scene.Sphere:
			t, objNormal, ok = SphereIntersect(objRay, HitEpsilon, closest)
		case scene.Box:
			t, objNormal, ok = BoxIntersect(objRay, HitEpsilon, closest)
		case scene.Mesh:
			t, objNormal, ok = MeshIntersect(objRay, s.Models[g.ModelID].Vertices, HitEpsilon, closest)
		}

		if !ok || t >= closest {
			continue
		}

		closest = t
		best.T = t
		best.MaterialID = g.MaterialID
		best.Normal = g.Transform.NormalToWorld(objNormal)
	}

	if best.Hit() {
		best.FrontFace = ray.Direction.Dot(best.Normal) < 0
		if !best.FrontFace {
			best.Normal = best.Normal.Negate()
		}
	}

	return best
}

// IntersectPaths resolves the nearest hit for paths[0:n] into out[0:n].
// Lanes already terminated get a Miss record without being traced.
func IntersectPaths(runner core.Runner, s *scene.Scene, paths []core.PathState, out []Intersection, n int) {
	runner.Run(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if !paths[i].Active() {
				out[i] = Miss()
				continue
			}
			out[i] = Nearest(paths[i].Ray, s)
		}
	})
}
