package material

import (
	"fmt"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// ScatterKind selects how a non-emissive surface scatters light
type ScatterKind int

const (
	Diffuse ScatterKind = iota
	Specular
	Refractive
)

func (k ScatterKind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Refractive:
		return "refractive"
	default:
		return fmt.Sprintf("ScatterKind(%d)", int(k))
	}
}

// ParseScatterKind maps a scene-file name to a ScatterKind
func ParseScatterKind(name string) (ScatterKind, error) {
	switch name {
	case "", "diffuse", "lambertian":
		return Diffuse, nil
	case "specular", "mirror", "metal":
		return Specular, nil
	case "refractive", "dielectric", "glass":
		return Refractive, nil
	}
	return Diffuse, fmt.Errorf("unknown scatter kind %q", name)
}

// Material describes the surface response of a primitive.
// Emittance > 0 marks a light source; the scatter fields are then unused.
type Material struct {
	Name          string
	Color         core.Vec3   // Base reflectance, also the transmission tint for refractive surfaces
	SpecularColor core.Vec3   // Mirror tint for specular reflection
	Kind          ScatterKind // Scatter behavior for non-emissive surfaces
	Fuzz          float64     // Specular only: 0 = perfect mirror, 1 = very fuzzy
	IOR           float64     // Refractive only: index of refraction (1.5 for glass)
	Emittance     float64     // Scalar emission strength, >= 0
}

// NewLambertian creates a diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Color: albedo, Kind: Diffuse}
}

// NewMetal creates a specular material, clamping fuzz to [0, 1]
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	return Material{Color: albedo, SpecularColor: albedo, Kind: Specular, Fuzz: max(0, min(1, fuzz))}
}

// NewDielectric creates a clear refractive material
func NewDielectric(refractiveIndex float64) Material {
	return Material{Color: core.White, SpecularColor: core.White, Kind: Refractive, IOR: refractiveIndex}
}

// NewEmissive creates a light source material
func NewEmissive(color core.Vec3, emittance float64) Material {
	return Material{Color: color, Emittance: emittance}
}

// IsEmissive reports whether the material is a light source
func (m Material) IsEmissive() bool {
	return m.Emittance > 0
}

// Emission returns the light carried back by a path that reaches this material
func (m Material) Emission() core.Vec3 {
	return m.Color.Multiply(m.Emittance)
}

// Validate checks the parameters a scene file can get wrong
func (m Material) Validate() error {
	if m.Emittance < 0 {
		return fmt.Errorf("negative emittance %g", m.Emittance)
	}
	if m.Kind < Diffuse || m.Kind > Refractive {
		return fmt.Errorf("invalid scatter kind %v", m.Kind)
	}
	if m.Kind == Refractive && m.IOR <= 0 {
		return fmt.Errorf("refractive material needs a positive IOR, got %g", m.IOR)
	}
	return nil
}
