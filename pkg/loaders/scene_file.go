package loaders

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/material"
	"github.com/df07/go-wavefront-tracer/pkg/renderer"
	"github.com/df07/go-wavefront-tracer/pkg/scene"
)

// SceneFile is the on-disk scene description shared by the TOML and YAML formats
type SceneFile struct {
	Camera    CameraSpec     `toml:"camera" yaml:"camera"`
	Render    RenderSettings `toml:"render" yaml:"render"`
	Materials []MaterialSpec `toml:"materials" yaml:"materials"`
	Models    []ModelSpec    `toml:"models" yaml:"models"`
	Objects   []ObjectSpec   `toml:"objects" yaml:"objects"`
}

// CameraSpec mirrors scene.CameraConfig in file form
type CameraSpec struct {
	Center        [3]float64 `toml:"center" yaml:"center"`
	LookAt        [3]float64 `toml:"look_at" yaml:"look_at"`
	Up            [3]float64 `toml:"up" yaml:"up"`
	Width         int        `toml:"width" yaml:"width"`
	Height        int        `toml:"height" yaml:"height"`
	VFov          float64    `toml:"vfov" yaml:"vfov"`
	Aperture      float64    `toml:"aperture" yaml:"aperture"`
	FocusDistance float64    `toml:"focus_distance" yaml:"focus_distance"`
}

// RenderSettings are the render-loop preferences a scene file may carry.
// Zero values leave the corresponding renderer option untouched.
type RenderSettings struct {
	Iterations   int   `toml:"iterations" yaml:"iterations"`
	MaxDepth     int   `toml:"max_depth" yaml:"max_depth"`
	Compact      *bool `toml:"compact" yaml:"compact"`
	Sort         *bool `toml:"sort" yaml:"sort"`
	Cache        *bool `toml:"cache" yaml:"cache"`
	DepthOfField bool  `toml:"depth_of_field" yaml:"depth_of_field"`
	Antialias    bool  `toml:"antialias" yaml:"antialias"`
}

// Apply overlays the settings on options.
// Enabling jitter turns the first-bounce cache off unless the file asks for it explicitly.
func (rs RenderSettings) Apply(options renderer.Options) renderer.Options {
	if rs.MaxDepth > 0 {
		options.MaxDepth = rs.MaxDepth
	}
	if rs.Compact != nil {
		options.CompactPaths = *rs.Compact
	}
	if rs.Sort != nil {
		options.SortByMaterial = *rs.Sort
	}
	options.DepthOfField = options.DepthOfField || rs.DepthOfField
	options.Antialias = options.Antialias || rs.Antialias
	if options.Jitter().Enabled() {
		options.CacheFirstBounce = false
	}
	if rs.Cache != nil {
		options.CacheFirstBounce = *rs.Cache
	}
	return options
}

// MaterialSpec describes one material; objects refer to it by name
type MaterialSpec struct {
	Name          string      `toml:"name" yaml:"name"`
	Kind          string      `toml:"kind" yaml:"kind"`
	Color         [3]float64  `toml:"color" yaml:"color"`
	SpecularColor *[3]float64 `toml:"specular_color" yaml:"specular_color"` // Defaults to Color
	Fuzz          float64     `toml:"fuzz" yaml:"fuzz"`
	IOR           float64     `toml:"ior" yaml:"ior"`
	Emittance     float64     `toml:"emittance" yaml:"emittance"`
}

// ModelSpec names a triangle soup, either inline or loaded from a PLY file
type ModelSpec struct {
	Name     string       `toml:"name" yaml:"name"`
	File     string       `toml:"file" yaml:"file"` // Relative to the scene file
	Vertices [][3]float64 `toml:"vertices" yaml:"vertices"`
}

// ObjectSpec places one primitive in the scene
type ObjectSpec struct {
	Shape     string     `toml:"shape" yaml:"shape"`
	Material  string     `toml:"material" yaml:"material"`
	Model     string     `toml:"model" yaml:"model"`
	Translate [3]float64 `toml:"translate" yaml:"translate"`
	Rotate    [3]float64 `toml:"rotate" yaml:"rotate"` // Degrees about X, Y, Z
	Scale     [3]float64 `toml:"scale" yaml:"scale"`   // Zero means 1
}

// LoadScene reads a .toml, .yaml or .yml scene description and builds a validated scene.
// Mesh files are loaded concurrently.
func LoadScene(path string) (*scene.Scene, RenderSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, RenderSettings{}, fmt.Errorf("failed to read scene file: %w", err)
	}

	file, err := ParseSceneFile(data, filepath.Ext(path))
	if err != nil {
		return nil, RenderSettings{}, fmt.Errorf("%s: %w", path, err)
	}

	s, err := file.Build(filepath.Dir(path))
	if err != nil {
		return nil, RenderSettings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, file.Render, nil
}

// ParseSceneFile decodes a scene description, rejecting unknown keys.
// ext selects the format and includes the leading dot.
func ParseSceneFile(data []byte, ext string) (*SceneFile, error) {
	var file SceneFile

	switch strings.ToLower(ext) {
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to parse TOML scene: %w", err)
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scene file extension %q", ext)
	}

	return &file, nil
}

// Build resolves names, loads mesh files relative to baseDir and validates the result
func (f *SceneFile) Build(baseDir string) (*scene.Scene, error) {
	s := scene.New(scene.NewCamera(scene.CameraConfig{
		Center:        vec(f.Camera.Center),
		LookAt:        vec(f.Camera.LookAt),
		Up:            upOrDefault(f.Camera.Up),
		Width:         f.Camera.Width,
		Height:        f.Camera.Height,
		VFov:          f.Camera.VFov,
		Aperture:      f.Camera.Aperture,
		FocusDistance: f.Camera.FocusDistance,
	}))

	materialIDs := make(map[string]int, len(f.Materials))
	for i, spec := range f.Materials {
		m, err := spec.toMaterial()
		if err != nil {
			return nil, fmt.Errorf("material %d (%s): %w", i, spec.Name, err)
		}
		if _, dup := materialIDs[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate material name %q", spec.Name)
		}
		materialIDs[spec.Name] = s.AddMaterial(m)
	}

	models, err := loadModels(baseDir, f.Models)
	if err != nil {
		return nil, err
	}
	modelIDs := make(map[string]int, len(models))
	for _, model := range models {
		if _, dup := modelIDs[model.Name]; dup {
			return nil, fmt.Errorf("duplicate model name %q", model.Name)
		}
		modelIDs[model.Name] = s.AddModel(model)
	}

	for i, object := range f.Objects {
		shape, err := scene.ParseShapeType(object.Shape)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		materialID, ok := materialIDs[object.Material]
		if !ok {
			return nil, fmt.Errorf("%w: object %d uses unknown material %q", scene.ErrInvalidScene, i, object.Material)
		}

		geom := scene.Geom{
			Type:       shape,
			Transform:  scene.NewTransform(vec(object.Translate), vec(object.Rotate), scaleOrUnit(object.Scale)),
			MaterialID: materialID,
		}
		if shape == scene.Mesh {
			modelID, ok := modelIDs[object.Model]
			if !ok {
				return nil, fmt.Errorf("%w: object %d uses unknown model %q", scene.ErrInvalidScene, i, object.Model)
			}
			geom.ModelID = modelID
		}
		s.AddGeom(geom)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (spec MaterialSpec) toMaterial() (material.Material, error) {
	kind, err := material.ParseScatterKind(spec.Kind)
	if err != nil {
		return material.Material{}, err
	}

	m := material.Material{
		Name:          spec.Name,
		Color:         vec(spec.Color),
		SpecularColor: vec(spec.Color),
		Kind:          kind,
		Fuzz:          max(0, min(1, spec.Fuzz)),
		IOR:           spec.IOR,
		Emittance:     spec.Emittance,
	}
	if spec.SpecularColor != nil {
		m.SpecularColor = vec(*spec.SpecularColor)
	}
	return m, m.Validate()
}

// loadModels builds every model, reading PLY files in parallel
func loadModels(baseDir string, specs []ModelSpec) ([]scene.Model, error) {
	models := make([]scene.Model, len(specs))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())

	for i, spec := range specs {
		if spec.File == "" {
			vertices := make([]core.Vec3, len(spec.Vertices))
			for j, v := range spec.Vertices {
				vertices[j] = vec(v)
			}
			models[i] = scene.Model{Name: spec.Name, Vertices: vertices}
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := spec.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			data, err := LoadPLY(path)
			if err != nil {
				return fmt.Errorf("model %q: %w", spec.Name, err)
			}
			models[i] = scene.Model{Name: spec.Name, Vertices: data.Triangles()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func upOrDefault(v [3]float64) core.Vec3 {
	if v == [3]float64{} {
		return core.NewVec3(0, 1, 0)
	}
	return vec(v)
}

// scaleOrUnit treats an unset scale axis as 1
func scaleOrUnit(v [3]float64) core.Vec3 {
	for i := range v {
		if v[i] == 0 {
			v[i] = 1
		}
	}
	return vec(v)
}
