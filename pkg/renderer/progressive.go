package renderer

import (
	"context"
	"image"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	Iterations    int // Total samples per pixel
	SnapshotEvery int // Emit an image every N iterations (0 = only the last)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		Iterations:    64,
		SnapshotEvery: 16,
	}
}

// IterationResult is emitted after every iteration; Image is only set on snapshots
type IterationResult struct {
	Stats  IterationStats
	Image  *image.RGBA
	IsLast bool
}

// RenderProgressive drives rc for config.Iterations iterations with channel-based communication.
// Iteration numbers continue from what rc has already accumulated.
// Cancellation is checked between iterations; the error channel then receives ctx.Err().
// Both channels are closed when the render stops. The caller remains responsible for rc.Close.
func RenderProgressive(ctx context.Context, rc *RenderContext, config ProgressiveConfig) (<-chan IterationResult, <-chan error) {
	resultChan := make(chan IterationResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(resultChan)
		defer close(errChan)

		rc.logger.Printf("Starting progressive rendering with %d iterations", config.Iterations)

		first := rc.Iterations() + 1
		for i := 0; i < config.Iterations; i++ {
			iteration := first + i

			// Check if the caller gave up before starting this iteration
			select {
			case <-ctx.Done():
				rc.logger.Printf("Rendering cancelled before iteration %d", iteration)
				errChan <- ctx.Err()
				return
			default:
			}

			stats := rc.RenderIteration(iteration, i)

			isLast := i == config.Iterations-1
			result := IterationResult{Stats: stats, IsLast: isLast}
			if isLast || (config.SnapshotEvery > 0 && (i+1)%config.SnapshotEvery == 0) {
				result.Image = rc.Image()
			}

			select {
			case resultChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return resultChan, errChan
}
