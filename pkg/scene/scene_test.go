package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

func assertVecNear(t *testing.T, expected, actual core.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, 0, expected.Subtract(actual).Length(), 1e-9, msgAndArgs...)
}

func TestTransform_RoundTrip(t *testing.T) {
	transforms := []Transform{
		Identity(),
		NewTransform(core.NewVec3(1, 2, 3), core.Vec3{}, core.NewVec3(2, 2, 2)),
		NewTransform(core.NewVec3(-4, 0, 1), core.NewVec3(30, 45, 60), core.NewVec3(1, 3, 0.5)),
	}
	points := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(0.5, -0.25, 0.1),
		core.NewVec3(10, 20, -30),
	}

	for i, tr := range transforms {
		for _, p := range points {
			world := tr.PointToWorld(p)
			assertVecNear(t, p, tr.PointToObject(world), "transform %d point %v", i, p)
		}
	}
}

func TestTransform_RotationAndScale(t *testing.T) {
	// 90° about Y takes +X to -Z (right handed)
	tr := NewTransform(core.Vec3{}, core.NewVec3(0, 90, 0), core.White)
	assertVecNear(t, core.NewVec3(0, 0, -1), tr.PointToWorld(core.NewVec3(1, 0, 0)))

	scaled := NewTransform(core.NewVec3(0, 1, 0), core.Vec3{}, core.NewVec3(2, 4, 8))
	assertVecNear(t, core.NewVec3(0.5, 0.25, 0.125), scaled.DirToObject(core.NewVec3(1, 1, 1)))
	assertVecNear(t, core.NewVec3(0, 0, 0), scaled.PointToObject(core.NewVec3(0, 1, 0)))
}

func TestTransform_NormalToWorld(t *testing.T) {
	// A sheared normal must stay perpendicular to transformed tangents
	tr := NewTransform(core.Vec3{}, core.NewVec3(0, 0, 30), core.NewVec3(1, 4, 1))
	objNormal := core.NewVec3(1, 1, 0).Normalize()
	objTangent := core.NewVec3(1, -1, 0)

	worldNormal := tr.NormalToWorld(objNormal)
	worldTangent := tr.PointToWorld(objTangent).Subtract(tr.PointToWorld(core.Vec3{}))

	assert.InDelta(t, 1.0, worldNormal.Length(), 1e-12)
	assert.InDelta(t, 0.0, worldNormal.Dot(worldTangent), 1e-9)
}

func TestTransform_ZeroScaleMeansUnit(t *testing.T) {
	var tr Transform
	tr.Prepare()
	assert.Equal(t, core.White, tr.Scale)
	assertVecNear(t, core.NewVec3(1, 2, 3), tr.PointToObject(core.NewVec3(1, 2, 3)))
}

func TestNewCamera_Basis(t *testing.T) {
	cam := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  200,
		Height: 100,
		VFov:   90,
	})

	assertVecNear(t, core.NewVec3(0, 0, -1), cam.View)
	assertVecNear(t, core.NewVec3(1, 0, 0), cam.Right)
	assertVecNear(t, core.NewVec3(0, 1, 0), cam.Up)
	assert.InDelta(t, 5.0, cam.FocalDistance, 1e-12)

	// tan(45°) = 1: the image plane spans [-2,2]x[-1,1] at unit distance
	assert.InDelta(t, 4.0/200, cam.PixelLength.X, 1e-12)
	assert.InDelta(t, 2.0/100, cam.PixelLength.Y, 1e-12)

	// Image center looks straight ahead, left edge looks left, top row looks up
	assertVecNear(t, cam.View, cam.GetRayDirection(100, 50))
	assert.Less(t, cam.GetRayDirection(0, 50).X, 0.0)
	assert.Greater(t, cam.GetRayDirection(100, 0).Y, 0.0)

	assert.Equal(t, 20000, cam.PixelCount())
	assert.Equal(t, 201, cam.PixelIndex(1, 1))
}

func TestScene_Validate(t *testing.T) {
	newValid := func() *Scene {
		s := NewEmptyScene(4, 4)
		m := s.AddMaterial(material.NewLambertian(core.White))
		model := s.AddModel(NewPyramidModel())
		s.AddSphere(core.Vec3{}, 1, m)
		s.AddMesh(model, Identity(), m)
		return s
	}

	require.NoError(t, newValid().Validate())

	tests := []struct {
		name   string
		mutate func(s *Scene)
	}{
		{"zero resolution", func(s *Scene) { s.Camera.Width = 0 }},
		{"material out of range", func(s *Scene) { s.Geoms[0].MaterialID = 5 }},
		{"negative material", func(s *Scene) { s.Geoms[0].MaterialID = -1 }},
		{"model out of range", func(s *Scene) { s.Geoms[1].ModelID = 1 }},
		{"ragged triangle buffer", func(s *Scene) {
			s.Models[0].Vertices = append(s.Models[0].Vertices, core.Vec3{})
		}},
		{"negative emittance", func(s *Scene) { s.Materials[0].Emittance = -2 }},
		{"unknown shape", func(s *Scene) { s.Geoms[0].Type = ShapeType(42) }},
		{"unprepared transform", func(s *Scene) { s.Geoms[0].Transform = Transform{} }},
		{"flat scale", func(s *Scene) { s.Geoms[0].Transform = NewTransform(core.Vec3{}, core.Vec3{}, core.NewVec3(1, 0, 1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newValid()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScene))
		})
	}
}

func TestBuiltinScenes(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin(name, 32, 24)
			require.NoError(t, err)
			require.NoError(t, s.Validate())
			assert.Equal(t, 32*24, s.Camera.PixelCount())
		})
	}

	_, err := Builtin("nonexistent", 8, 8)
	assert.Error(t, err)
}

func TestPyramidModel(t *testing.T) {
	m := NewPyramidModel()
	assert.Equal(t, 6, m.TriangleCount())
	assert.Len(t, m.Vertices, 18)
}

func TestParseShapeType(t *testing.T) {
	for name, expected := range map[string]ShapeType{"sphere": Sphere, "cube": Box, "box": Box, "mesh": Mesh} {
		got, err := ParseShapeType(name)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	}
	_, err := ParseShapeType("torus")
	assert.Error(t, err)
}
