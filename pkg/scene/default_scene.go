package scene

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

// NewDefaultScene creates a few spheres and a pyramid mesh on a ground slab under a large sphere light
func NewDefaultScene(width, height int) *Scene {
	s := New(NewCamera(CameraConfig{
		Center:   core.NewVec3(0, 0.75, 2),
		LookAt:   core.NewVec3(0, 0.5, -1),
		Up:       core.NewVec3(0, 1, 0),
		Width:    width,
		Height:   height,
		VFov:     40.0,
		Aperture: 0.05, // Only used when depth of field is enabled
	}))

	sky := s.AddMaterial(material.NewEmissive(core.NewVec3(1.0, 0.95, 0.9), 4))
	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)))
	blue := s.AddMaterial(material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	silver := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0))
	gold := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	glass := s.AddMaterial(material.NewDielectric(1.5))

	s.AddSphere(core.NewVec3(30, 30.5, 15), 10, sky)
	s.AddBox(core.NewVec3(0, -0.05, 0), core.NewVec3(20, 0.1, 20), core.Vec3{}, ground)

	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, blue)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, gold)
	s.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass)

	pyramid := s.AddModel(NewPyramidModel())
	s.AddMesh(pyramid, NewTransform(core.NewVec3(-0.5, 0, -0.4), core.NewVec3(0, 30, 0), core.NewVec3(0.4, 0.4, 0.4)), blue)

	return s
}

// NewEmptyScene has a camera but no geometry; every path misses
func NewEmptyScene(width, height int) *Scene {
	return New(NewCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 1),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  width,
		Height: height,
		VFov:   45,
	}))
}

// NewPyramidModel returns a square pyramid of unit height on the y=0 plane as a triangle soup
func NewPyramidModel() Model {
	apex := core.NewVec3(0, 1, 0)
	base := [4]core.Vec3{}
	for i := range base {
		angle := math.Pi/4 + float64(i)*math.Pi/2
		base[i] = core.NewVec3(0.5*math.Cos(angle), 0, 0.5*math.Sin(angle))
	}

	var vertices []core.Vec3
	for i := range base {
		vertices = append(vertices, base[i], apex, base[(i+1)%4])
	}
	vertices = append(vertices, base[0], base[2], base[1], base[0], base[3], base[2])

	return Model{Name: "pyramid", Vertices: vertices}
}
