package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/integrator"
	"github.com/df07/go-wavefront-tracer/pkg/scene"
)

// RenderContext owns every buffer the render loop touches.
// It is created by Setup, driven one iteration at a time and released by Close.
type RenderContext struct {
	scene      *scene.Scene
	options    Options
	pixels     int
	paths      []core.PathState        // Working lane population
	isects     []geometry.Intersection // Paired with paths by position
	accum      []core.Vec3             // Running per-pixel sum of final throughputs
	cache      *firstBounceCache       // nil when caching is off
	pool       *WorkerPool
	iterations int
	logger     core.Logger
}

// Setup validates the scene and options and allocates the working arrays.
// A nil logger discards output.
func Setup(s *scene.Scene, options Options, logger core.Logger) (*RenderContext, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil scene", scene.ErrInvalidScene)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger()
	}

	pixels := s.Camera.PixelCount()
	rc := &RenderContext{
		scene:   s,
		options: options,
		pixels:  pixels,
		paths:   make([]core.PathState, pixels),
		isects:  make([]geometry.Intersection, pixels),
		accum:   make([]core.Vec3, pixels),
		pool:    NewWorkerPool(options.Workers),
		logger:  logger,
	}
	if options.CacheFirstBounce {
		rc.cache = newFirstBounceCache(pixels)
	}

	logger.Printf("Render context: %dx%d, %d geoms, %d materials, max depth %d, %d workers",
		s.Camera.Width, s.Camera.Height, len(s.Geoms), len(s.Materials),
		options.MaxDepth, rc.pool.GetNumWorkers())
	return rc, nil
}

// Close stops the workers and drops all buffers; safe on nil and safe to repeat
func (rc *RenderContext) Close() {
	if rc == nil || rc.pool == nil {
		return
	}
	rc.pool.Stop()
	rc.pool = nil
	if rc.cache != nil {
		rc.cache.release()
		rc.cache = nil
	}
	rc.paths = nil
	rc.isects = nil
}

// RenderIteration traces one sample per pixel and adds it to the accumulator.
// Iterations are numbered from 1; the first one populates the first-bounce cache.
// Calling it after Close panics.
func (rc *RenderContext) RenderIteration(iteration, frame int) IterationStats {
	start := time.Now()
	stats := IterationStats{Iteration: iteration, Frame: frame}

	if rc.cache != nil && !rc.cache.valid {
		rc.cache.populate(rc.pool, rc.scene, iteration, rc.options.MaxDepth)
		rc.logger.Printf("First-bounce cache populated for %d lanes", rc.pixels)
	}

	n := rc.pixels
	for depth := 0; depth < rc.options.MaxDepth; depth++ {
		if depth == 0 {
			rc.primaryBounce(iteration, &stats)
		} else {
			geometry.IntersectPaths(rc.pool, rc.scene, rc.paths, rc.isects, n)
		}

		integrator.ShadePaths(rc.pool, rc.paths, rc.isects, rc.scene.Materials, n, iteration, depth)

		var active int
		n, active = rc.regroup(n)

		stats.Depths++
		stats.ActivePerDepth = append(stats.ActivePerDepth, active)
		if active == 0 {
			break
		}
	}

	// Compaction only reorders the population, so the full array still holds every lane
	Accumulate(rc.pool, rc.paths, rc.accum)
	rc.iterations++

	stats.Duration = time.Since(start)
	rc.logger.Printf("Iteration %d (frame %d): %d depths, %d lanes alive at end, %v",
		iteration, frame, stats.Depths, stats.FinalActive(), stats.Duration)
	return stats
}

// regroup shrinks the working range [0:n) to its live lanes when compaction is on,
// then sorts the working range by material. Without compaction, live and terminated
// lanes stay interleaved, so the sort covers all n lanes and misses group first.
func (rc *RenderContext) regroup(n int) (working, active int) {
	if rc.options.CompactPaths {
		active = CompactPaths(rc.paths, rc.isects, n)
		working = active
	} else {
		active = CountActive(rc.paths, n)
		working = n
	}
	if rc.options.SortByMaterial && active > 0 && working > 1 {
		SortByMaterial(rc.paths, rc.isects, working)
	}
	return working, active
}

// primaryBounce fills depth 0 from the cache or by tracing fresh camera rays
func (rc *RenderContext) primaryBounce(iteration int, stats *IterationStats) {
	if rc.cache != nil && rc.cache.valid {
		rc.cache.replay(rc.paths, rc.isects)
		stats.CacheHit = true
		return
	}
	GeneratePrimaryRays(rc.pool, rc.scene.Camera, iteration, rc.options.MaxDepth, rc.paths, rc.options.Jitter())
	geometry.IntersectPaths(rc.pool, rc.scene, rc.paths, rc.isects, rc.pixels)
}

// Accumulated returns the running per-pixel sums, indexed y*width + x
func (rc *RenderContext) Accumulated() []core.Vec3 {
	return rc.accum
}

// Iterations returns how many iterations have been accumulated
func (rc *RenderContext) Iterations() int {
	return rc.iterations
}

// Image returns the accumulated average as an 8-bit image
func (rc *RenderContext) Image() *image.RGBA {
	return ToImage(rc.accum, rc.scene.Camera.Width, rc.scene.Camera.Height, rc.iterations)
}

// Options returns the toggles the context was set up with
func (rc *RenderContext) Options() Options {
	return rc.options
}
