package scene

import (
	"fmt"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// ShapeType tags the primitive variants the intersection engine dispatches on
type ShapeType int

const (
	Sphere ShapeType = iota // Unit sphere, radius 0.5 around the origin
	Box                     // Unit cube [-0.5, 0.5]³
	Mesh                    // Triangle soup from Scene.Models[ModelID]
)

func (s ShapeType) String() string {
	switch s {
	case Sphere:
		return "sphere"
	case Box:
		return "box"
	case Mesh:
		return "mesh"
	default:
		return fmt.Sprintf("ShapeType(%d)", int(s))
	}
}

// ParseShapeType maps a scene-file name to a ShapeType
func ParseShapeType(name string) (ShapeType, error) {
	switch name {
	case "sphere":
		return Sphere, nil
	case "box", "cube":
		return Box, nil
	case "mesh":
		return Mesh, nil
	}
	return Sphere, fmt.Errorf("unknown shape type %q", name)
}

// Geom is one primitive in the geometry store
type Geom struct {
	Type       ShapeType
	Transform  Transform
	MaterialID int
	ModelID    int // Mesh only
}

// Model is a triangle soup: vertex positions in model space, grouped in triples
type Model struct {
	Name     string
	Vertices []core.Vec3
}

// TriangleCount returns the number of whole triangles in the soup
func (m Model) TriangleCount() int {
	return len(m.Vertices) / 3
}
