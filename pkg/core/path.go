package core

// PathState is the mutable per-lane state of one light path during an iteration.
// PixelIndex is fixed at creation and travels with the state through compaction and sorting.
type PathState struct {
	Ray              Ray
	Throughput       Vec3
	PixelIndex       int
	RemainingBounces int
}

// Active reports whether the path still has bounce budget
func (p *PathState) Active() bool {
	return p.RemainingBounces > 0
}

// Terminate ends the path, keeping its throughput
func (p *PathState) Terminate() {
	p.RemainingBounces = 0
}

// Runner executes fn over [0, n) in chunks and returns once every chunk is done.
// Chunks never overlap, so lanes writing only their own slots need no locking.
type Runner interface {
	Run(n int, fn func(lo, hi int))
}

// SerialRunner runs the whole range on the calling goroutine
type SerialRunner struct{}

func (SerialRunner) Run(n int, fn func(lo, hi int)) {
	if n > 0 {
		fn(0, n)
	}
}
