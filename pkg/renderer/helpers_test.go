package renderer

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/material"
	"github.com/df07/go-wavefront-tracer/pkg/scene"
)

func newTestCamera(width, height int) scene.Camera {
	return scene.NewCamera(scene.CameraConfig{
		Center:   core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		Width:    width,
		Height:   height,
		VFov:     60,
		Aperture: 0.2,
	})
}

// newEnclosedScene puts the camera at the center of one large sphere
func newEnclosedScene(width, height int, m material.Material) *scene.Scene {
	s := scene.New(newTestCamera(width, height))
	id := s.AddMaterial(m)
	s.AddSphere(core.Vec3{}, 50, id)
	return s
}

func serialOptions() Options {
	options := DefaultOptions()
	options.Workers = 1
	return options
}
