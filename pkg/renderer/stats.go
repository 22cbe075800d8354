package renderer

import "time"

// IterationStats contains statistics about one render iteration
type IterationStats struct {
	Iteration      int           // 1-based iteration number
	Frame          int           // Caller-supplied frame id
	Depths         int           // Number of depth steps executed
	ActivePerDepth []int         // Lanes still alive after shading at each depth
	CacheHit       bool          // Depth 0 came from the first-bounce cache
	Duration       time.Duration // Wall time of the iteration
}

// FinalActive returns the active count after the last depth step
func (s IterationStats) FinalActive() int {
	if len(s.ActivePerDepth) == 0 {
		return 0
	}
	return s.ActivePerDepth[len(s.ActivePerDepth)-1]
}
