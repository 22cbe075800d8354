package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/material"
)

// ErrInvalidScene is wrapped by every scene validation failure
var ErrInvalidScene = errors.New("invalid scene")

// Scene is the read-only bundle handed to the renderer: camera, geometry,
// materials and the triangle buffers referenced by mesh primitives
type Scene struct {
	Camera    Camera
	Geoms     []Geom
	Materials []material.Material
	Models    []Model
}

// New creates an empty scene with the given camera
func New(camera Camera) *Scene {
	return &Scene{Camera: camera}
}

// AddMaterial appends a material and returns its id
func (s *Scene) AddMaterial(m material.Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddModel appends a triangle soup and returns its id
func (s *Scene) AddModel(m Model) int {
	s.Models = append(s.Models, m)
	return len(s.Models) - 1
}

// AddGeom appends a primitive, preparing its transform if needed
func (s *Scene) AddGeom(g Geom) int {
	if !g.Transform.Ready() {
		g.Transform.Prepare()
	}
	s.Geoms = append(s.Geoms, g)
	return len(s.Geoms) - 1
}

// AddSphere adds a sphere of the given radius
func (s *Scene) AddSphere(center core.Vec3, radius float64, materialID int) int {
	d := 2 * radius
	return s.AddGeom(Geom{
		Type:       Sphere,
		Transform:  NewTransform(center, core.Vec3{}, core.NewVec3(d, d, d)),
		MaterialID: materialID,
	})
}

// AddBox adds a box with the given center, full size and rotation in degrees
func (s *Scene) AddBox(center, size, rotateDegrees core.Vec3, materialID int) int {
	return s.AddGeom(Geom{
		Type:       Box,
		Transform:  NewTransform(center, rotateDegrees, size),
		MaterialID: materialID,
	})
}

// AddMesh adds an instance of model modelID
func (s *Scene) AddMesh(modelID int, transform Transform, materialID int) int {
	return s.AddGeom(Geom{
		Type:       Mesh,
		Transform:  transform,
		MaterialID: materialID,
		ModelID:    modelID,
	})
}

// Validate performs the load-time bounds checks the renderer relies on.
// Out-of-range material or model references are configuration errors.
func (s *Scene) Validate() error {
	if s.Camera.Width <= 0 || s.Camera.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidScene, s.Camera.Width, s.Camera.Height)
	}

	for i, m := range s.Materials {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%w: material %d (%s): %v", ErrInvalidScene, i, m.Name, err)
		}
	}

	for i, model := range s.Models {
		if len(model.Vertices)%3 != 0 {
			return fmt.Errorf("%w: model %d (%s) has %d vertices, not a multiple of 3",
				ErrInvalidScene, i, model.Name, len(model.Vertices))
		}
	}

	for i, g := range s.Geoms {
		if g.MaterialID < 0 || g.MaterialID >= len(s.Materials) {
			return fmt.Errorf("%w: geom %d references material %d of %d",
				ErrInvalidScene, i, g.MaterialID, len(s.Materials))
		}
		switch g.Type {
		case Sphere, Box:
		case Mesh:
			if g.ModelID < 0 || g.ModelID >= len(s.Models) {
				return fmt.Errorf("%w: geom %d references model %d of %d",
					ErrInvalidScene, i, g.ModelID, len(s.Models))
			}
		default:
			return fmt.Errorf("%w: geom %d has unknown shape %v", ErrInvalidScene, i, g.Type)
		}
		if !g.Transform.Ready() {
			return fmt.Errorf("%w: geom %d transform not prepared", ErrInvalidScene, i)
		}
		sc := g.Transform.Scale
		if sc.X == 0 || sc.Y == 0 || sc.Z == 0 {
			return fmt.Errorf("%w: geom %d has degenerate scale %v", ErrInvalidScene, i, sc)
		}
	}

	return nil
}
