package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/imageio"
	"github.com/df07/go-wavefront-tracer/pkg/loaders"
	"github.com/df07/go-wavefront-tracer/pkg/renderer"
	"github.com/df07/go-wavefront-tracer/pkg/scene"
)

// config holds the parsed command line
type config struct {
	scene      string
	width      int
	height     int
	iterations int
	out        string
	options    renderer.Options
	noCache    bool
	verbose    bool
	depthSet   bool // -depth given explicitly; otherwise a scene file may supply it
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags reads the command line into a config
func parseFlags(args []string, stderr io.Writer) (config, error) {
	cfg := config{options: renderer.DefaultOptions()}
	var noCompact, noSort bool

	fs := flag.NewFlagSet("wavefront", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.scene, "scene", "cornell", "Built-in scene ("+strings.Join(scene.BuiltinNames(), ", ")+") or a .toml/.yaml scene file")
	fs.IntVar(&cfg.width, "width", 400, "Image width for built-in scenes")
	fs.IntVar(&cfg.height, "height", 400, "Image height for built-in scenes")
	fs.IntVar(&cfg.iterations, "iterations", 0, "Samples per pixel (0 = scene file value or 64)")
	fs.StringVar(&cfg.out, "out", "", "Output image (.png, .jpg, .bmp, .tiff); default output/<scene>/render_<timestamp>.png")
	fs.IntVar(&cfg.options.MaxDepth, "depth", cfg.options.MaxDepth, "Maximum bounces per path")
	fs.IntVar(&cfg.options.Workers, "workers", 0, "Stage workers (0 = use CPU count)")
	fs.BoolVar(&noCompact, "no-compact", false, "Disable active-set compaction")
	fs.BoolVar(&noSort, "no-sort", false, "Disable material sorting")
	fs.BoolVar(&cfg.noCache, "no-cache", false, "Disable the first-bounce cache")
	fs.BoolVar(&cfg.options.DepthOfField, "dof", false, "Enable depth of field (disables the first-bounce cache)")
	fs.BoolVar(&cfg.options.Antialias, "aa", false, "Enable sub-pixel antialiasing (disables the first-bounce cache)")
	fs.BoolVar(&cfg.verbose, "v", false, "Verbose (debug) logging")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "depth" {
			cfg.depthSet = true
		}
	})

	cfg.options.CompactPaths = !noCompact
	cfg.options.SortByMaterial = !noSort
	return cfg, nil
}

// createScene resolves a built-in scene name or loads a scene file
func createScene(cfg config) (*scene.Scene, loaders.RenderSettings, error) {
	switch strings.ToLower(filepath.Ext(cfg.scene)) {
	case ".toml", ".yaml", ".yml":
		return loaders.LoadScene(cfg.scene)
	}

	s, err := scene.Builtin(cfg.scene, cfg.width, cfg.height)
	if err != nil {
		return nil, loaders.RenderSettings{}, err
	}
	return s, loaders.RenderSettings{}, nil
}

// resolveOptions merges scene file settings under the command line
func resolveOptions(cfg config, settings loaders.RenderSettings) (renderer.Options, int) {
	fromFile := settings.Apply(renderer.DefaultOptions())

	options := cfg.options
	if !cfg.depthSet {
		options.MaxDepth = fromFile.MaxDepth
	}
	options.CompactPaths = options.CompactPaths && fromFile.CompactPaths
	options.SortByMaterial = options.SortByMaterial && fromFile.SortByMaterial
	options.DepthOfField = options.DepthOfField || fromFile.DepthOfField
	options.Antialias = options.Antialias || fromFile.Antialias
	options.CacheFirstBounce = fromFile.CacheFirstBounce && !cfg.noCache && !options.Jitter().Enabled()

	iterations := cfg.iterations
	if iterations <= 0 {
		iterations = settings.Iterations
	}
	if iterations <= 0 {
		iterations = 64
	}
	return options, iterations
}

func outputPath(cfg config) string {
	if cfg.out != "" {
		return cfg.out
	}
	name := strings.TrimSuffix(filepath.Base(cfg.scene), filepath.Ext(cfg.scene))
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join("output", name, fmt.Sprintf("render_%s.png", timestamp))
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	s, settings, err := createScene(cfg)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	options, iterations := resolveOptions(cfg, settings)

	rc, err := renderer.Setup(s, options, core.NewSlogLogger(log, slog.LevelDebug))
	if err != nil {
		return err
	}
	defer rc.Close()

	log.Info("rendering",
		"scene", cfg.scene,
		"width", s.Camera.Width,
		"height", s.Camera.Height,
		"iterations", iterations,
		"maxDepth", options.MaxDepth,
		"compact", options.CompactPaths,
		"sort", options.SortByMaterial,
		"cache", options.CacheFirstBounce)

	startTime := time.Now()
	results, errs := renderer.RenderProgressive(ctx, rc, renderer.ProgressiveConfig{Iterations: iterations})
	for result := range results {
		if result.IsLast {
			log.Info("render complete", "iterations", result.Stats.Iteration, "elapsed", time.Since(startTime))
		}
	}
	if err := <-errs; err != nil {
		// Keep whatever was accumulated before the interrupt
		log.Warn("render stopped early", "err", err, "iterations", rc.Iterations())
	}
	if rc.Iterations() == 0 {
		return errors.New("no iterations rendered")
	}

	filename := outputPath(cfg)
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imageio.Save(rc.Image(), filename); err != nil {
		return err
	}

	log.Info("render saved", "file", filename)
	return nil
}
