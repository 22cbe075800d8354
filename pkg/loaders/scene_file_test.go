package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/material"
	"github.com/df07/go-wavefront-tracer/pkg/renderer"
	"github.com/df07/go-wavefront-tracer/pkg/scene"
)

func TestLoadScene_TOML(t *testing.T) {
	s, settings, err := LoadScene(filepath.Join("testdata", "tetra.toml"))
	require.NoError(t, err)

	assert.Equal(t, 32, s.Camera.Width)
	assert.Equal(t, 24, s.Camera.Height)
	assert.Len(t, s.Materials, 3)
	assert.Equal(t, material.Specular, s.Materials[2].Kind)
	assert.Equal(t, s.Materials[2].Color, s.Materials[2].SpecularColor)

	require.Len(t, s.Models, 2)
	assert.Equal(t, 4, s.Models[0].TriangleCount(), "tetra.ply has four faces")
	assert.Equal(t, 1, s.Models[1].TriangleCount())

	require.Len(t, s.Geoms, 3)
	assert.Equal(t, scene.Sphere, s.Geoms[0].Type)
	assert.Equal(t, scene.Mesh, s.Geoms[2].Type)
	assert.Equal(t, 0, s.Geoms[2].ModelID)
	assert.Equal(t, core.NewVec3(1, 1, 1), s.Geoms[2].Transform.Scale, "unset scale is unit")

	assert.Equal(t, 8, settings.Iterations)
	assert.Equal(t, 4, settings.MaxDepth)
	require.NotNil(t, settings.Sort)
	assert.False(t, *settings.Sort)
	assert.Nil(t, settings.Compact)
}

func TestLoadScene_YAML(t *testing.T) {
	s, settings, err := LoadScene(filepath.Join("testdata", "tetra.yaml"))
	require.NoError(t, err)

	assert.Len(t, s.Geoms, 2)
	assert.Equal(t, material.Refractive, s.Materials[1].Kind)
	assert.Equal(t, 1.5, s.Materials[1].IOR)
	assert.True(t, settings.Antialias)
	assert.NoError(t, s.Validate())
}

func TestLoadScene_RendersOneIteration(t *testing.T) {
	s, settings, err := LoadScene(filepath.Join("testdata", "tetra.toml"))
	require.NoError(t, err)

	rc, err := renderer.Setup(s, settings.Apply(renderer.DefaultOptions()), nil)
	require.NoError(t, err)
	defer rc.Close()

	stats := rc.RenderIteration(1, 0)
	assert.GreaterOrEqual(t, stats.Depths, 1)
	assert.LessOrEqual(t, stats.Depths, 4)
}

func TestParseSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"unknown toml key", ".toml", "[camera]\nwidth = 4\nheight = 4\nzoom = 2.0\n"},
		{"unknown yaml key", ".yaml", "camera:\n  width: 4\n  zoom: 2\n"},
		{"bad toml", ".toml", "[camera\n"},
		{"unsupported extension", ".json", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneFile([]byte(tt.data), tt.ext)
			assert.Error(t, err)
		})
	}
}

func TestSceneFile_BuildErrors(t *testing.T) {
	base := func() SceneFile {
		return SceneFile{
			Camera:    CameraSpec{Width: 4, Height: 4, VFov: 40, LookAt: [3]float64{0, 0, -1}},
			Materials: []MaterialSpec{{Name: "white", Color: [3]float64{1, 1, 1}}},
		}
	}

	tests := []struct {
		name    string
		modify  func(*SceneFile)
		invalid bool // Expect scene.ErrInvalidScene
	}{
		{"unknown material", func(f *SceneFile) {
			f.Objects = []ObjectSpec{{Shape: "sphere", Material: "red"}}
		}, true},
		{"unknown model", func(f *SceneFile) {
			f.Objects = []ObjectSpec{{Shape: "mesh", Material: "white", Model: "bunny"}}
		}, true},
		{"unknown shape", func(f *SceneFile) {
			f.Objects = []ObjectSpec{{Shape: "torus", Material: "white"}}
		}, false},
		{"unknown scatter kind", func(f *SceneFile) {
			f.Materials[0].Kind = "velvet"
		}, false},
		{"duplicate material", func(f *SceneFile) {
			f.Materials = append(f.Materials, f.Materials[0])
		}, false},
		{"partial triangle", func(f *SceneFile) {
			f.Models = []ModelSpec{{Name: "bad", Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}}}}
		}, true},
		{"missing mesh file", func(f *SceneFile) {
			f.Models = []ModelSpec{{Name: "gone", File: "gone.ply"}}
		}, false},
		{"zero resolution", func(f *SceneFile) {
			f.Camera.Width = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base()
			tt.modify(&f)

			_, err := f.Build(t.TempDir())
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, scene.ErrInvalidScene)
			}
		})
	}
}

func TestSceneFile_LoadsModelsConcurrently(t *testing.T) {
	dir := t.TempDir()
	ply, err := os.ReadFile(filepath.Join("testdata", "tetra.ply"))
	require.NoError(t, err)

	f := SceneFile{
		Camera:    CameraSpec{Width: 2, Height: 2, VFov: 40, LookAt: [3]float64{0, 0, -1}},
		Materials: []MaterialSpec{{Name: "white", Color: [3]float64{1, 1, 1}}},
	}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".ply"), ply, 0644))
		f.Models = append(f.Models, ModelSpec{Name: name, File: name + ".ply"})
		f.Objects = append(f.Objects, ObjectSpec{Shape: "mesh", Material: "white", Model: name})
	}

	s, err := f.Build(dir)
	require.NoError(t, err)

	require.Len(t, s.Models, 5)
	for i, model := range s.Models {
		assert.Equal(t, f.Models[i].Name, model.Name, "models keep file order")
		assert.Equal(t, 4, model.TriangleCount())
	}
}

func TestRenderSettings_Apply(t *testing.T) {
	off, on := false, true
	defaults := renderer.DefaultOptions()

	tests := []struct {
		name     string
		settings RenderSettings
		check    func(t *testing.T, o renderer.Options)
	}{
		{"empty keeps defaults", RenderSettings{}, func(t *testing.T, o renderer.Options) {
			assert.Equal(t, defaults, o)
		}},
		{"toggles", RenderSettings{MaxDepth: 3, Compact: &off, Sort: &off}, func(t *testing.T, o renderer.Options) {
			assert.Equal(t, 3, o.MaxDepth)
			assert.False(t, o.CompactPaths)
			assert.False(t, o.SortByMaterial)
			assert.True(t, o.CacheFirstBounce)
		}},
		{"jitter disables cache", RenderSettings{DepthOfField: true}, func(t *testing.T, o renderer.Options) {
			assert.True(t, o.DepthOfField)
			assert.False(t, o.CacheFirstBounce)
			assert.NoError(t, o.Validate())
		}},
		{"explicit cache wins", RenderSettings{Antialias: true, Cache: &on}, func(t *testing.T, o renderer.Options) {
			assert.True(t, o.CacheFirstBounce)
			assert.ErrorIs(t, o.Validate(), renderer.ErrInvalidOptions)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.settings.Apply(defaults))
		})
	}
}
