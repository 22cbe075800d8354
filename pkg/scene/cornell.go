package scene

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box built from thin boxes with a ceiling light
func NewCornellScene(width, height int) *Scene {
	s := New(NewCamera(CameraConfig{
		Center: core.NewVec3(0, 5, 10.5), // Outside the open front of the box
		LookAt: core.NewVec3(0, 5, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  width,
		Height: height,
		VFov:   45.0,
	}))

	light := s.AddMaterial(material.NewEmissive(core.NewVec3(1, 1, 1), 5))
	white := s.AddMaterial(material.NewLambertian(core.NewVec3(0.98, 0.98, 0.98)))
	red := s.AddMaterial(material.NewLambertian(core.NewVec3(0.85, 0.35, 0.35)))
	green := s.AddMaterial(material.NewLambertian(core.NewVec3(0.35, 0.85, 0.35)))
	mirror := s.AddMaterial(material.NewMetal(core.NewVec3(0.98, 0.98, 0.98), 0))
	glass := s.AddMaterial(material.NewDielectric(1.5))

	// Box of side 10 spanning x,z in [-5,5] and y in [0,10]
	const thickness = 0.01
	noRotation := core.Vec3{}

	s.AddBox(core.NewVec3(0, 10, 0), core.NewVec3(3, 0.3, 3), noRotation, light)

	// Floor, ceiling, back, left and right walls
	s.AddBox(core.NewVec3(0, 0, 0), core.NewVec3(10, thickness, 10), noRotation, white)
	s.AddBox(core.NewVec3(0, 10, 0), core.NewVec3(10, thickness, 10), noRotation, white)
	s.AddBox(core.NewVec3(0, 5, -5), core.NewVec3(10, 10, thickness), noRotation, white)
	s.AddBox(core.NewVec3(-5, 5, 0), core.NewVec3(thickness, 10, 10), noRotation, red)
	s.AddBox(core.NewVec3(5, 5, 0), core.NewVec3(thickness, 10, 10), noRotation, green)

	// Tall block the glass sphere rests on
	s.AddBox(core.NewVec3(1.8, 1.5, -0.8), core.NewVec3(2.4, 3, 2.4), core.NewVec3(0, -18, 0), white)

	s.AddSphere(core.NewVec3(-2, 4.5, -1), 1.5, mirror)
	s.AddSphere(core.NewVec3(1.8, 4.2, -0.8), 1.2, glass)

	return s
}
