package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is wrapped by every Options validation failure
var ErrInvalidOptions = errors.New("invalid render options")

// Options contains the run-time toggles of the render loop
type Options struct {
	MaxDepth         int  // Bounce budget per path
	CompactPaths     bool // Drop terminated lanes from the working range after each depth
	SortByMaterial   bool // Group the active range by material after each depth
	CacheFirstBounce bool // Trace primary rays once and replay them every iteration
	DepthOfField     bool // Lens sampling on primary rays
	Antialias        bool // Sub-pixel jitter on primary rays
	Workers          int  // Stage workers (0 = use CPU count)
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		MaxDepth:         8,
		CompactPaths:     true,
		SortByMaterial:   true,
		CacheFirstBounce: true,
		Workers:          0, // Auto-detect CPU count
	}
}

// Jitter returns the primary-ray perturbations enabled by these options
func (o Options) Jitter() Jitter {
	return Jitter{Antialias: o.Antialias, DepthOfField: o.DepthOfField}
}

// Validate rejects option combinations the render loop cannot honor.
// A first-bounce cache replays the same primary rays every iteration,
// so it cannot be combined with primary-ray jitter.
func (o Options) Validate() error {
	if o.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidOptions, o.MaxDepth)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidOptions, o.Workers)
	}
	if o.CacheFirstBounce && o.Jitter().Enabled() {
		return fmt.Errorf("%w: first-bounce cache cannot be combined with depth of field or antialiasing",
			ErrInvalidOptions)
	}
	return nil
}
