package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// Transform places a unit primitive in the world.
// Rotation is in degrees around X, Y, Z, applied in that order, after scaling.
type Transform struct {
	Translate core.Vec3
	Rotate    core.Vec3
	Scale     core.Vec3

	forward [3]r3.Rotation // X, Y, Z
	inverse [3]r3.Rotation // Z⁻¹, Y⁻¹, X⁻¹
	ready   bool
}

var axes = [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}

// NewTransform creates a prepared transform
func NewTransform(translate, rotateDegrees, scale core.Vec3) Transform {
	t := Transform{Translate: translate, Rotate: rotateDegrees, Scale: scale}
	t.Prepare()
	return t
}

// Identity is the transform of a unit primitive left at the origin
func Identity() Transform {
	return NewTransform(core.Vec3{}, core.Vec3{}, core.White)
}

// Prepare precomputes the rotations. A zero Scale is treated as unit scale.
func (t *Transform) Prepare() {
	if t.Scale.IsZero() {
		t.Scale = core.White
	}
	for i := 0; i < 3; i++ {
		angle := t.Rotate.Component(i) * math.Pi / 180.0
		t.forward[i] = r3.NewRotation(angle, axes[i])
		t.inverse[2-i] = r3.NewRotation(-angle, axes[i])
	}
	t.ready = true
}

// Ready reports whether Prepare has been called
func (t *Transform) Ready() bool {
	return t.ready
}

// PointToObject maps a world-space point into object space
func (t *Transform) PointToObject(p core.Vec3) core.Vec3 {
	return t.DirToObject(p.Subtract(t.Translate))
}

// DirToObject maps a world-space direction into object space without renormalizing,
// so a ray parameter t means the same point in both spaces
func (t *Transform) DirToObject(d core.Vec3) core.Vec3 {
	v := toR3(d)
	for _, rot := range t.inverse {
		v = rot.Rotate(v)
	}
	return fromR3(v).DivideVec(t.Scale)
}

// PointToWorld maps an object-space point into world space
func (t *Transform) PointToWorld(p core.Vec3) core.Vec3 {
	v := toR3(p.MultiplyVec(t.Scale))
	for _, rot := range t.forward {
		v = rot.Rotate(v)
	}
	return fromR3(v).Add(t.Translate)
}

// NormalToWorld maps an object-space normal into a unit world-space normal
// using the inverse transpose of the linear part
func (t *Transform) NormalToWorld(n core.Vec3) core.Vec3 {
	v := toR3(n.DivideVec(t.Scale))
	for _, rot := range t.forward {
		v = rot.Rotate(v)
	}
	return fromR3(v).Normalize()
}

func toR3(v core.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromR3(v r3.Vec) core.Vec3 {
	return core.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
