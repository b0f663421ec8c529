package dragging

import (
	"time"
)

// SketchState is the pointer trail of a gesture drawing a new event.
type SketchState = Trail

type SketchOptions struct {
	// SizeInterval snaps the start down and the end up to its multiples.
	SizeInterval time.Duration
	MinEventSize time.Duration
}

// Sketch computes the start and end of an event being drawn. Values are
// recomputed from the state on every call.
type Sketch struct {
	state   SketchState
	canvas  Canvas
	options SketchOptions
}

func NewSketch(state SketchState, canvas Canvas, options SketchOptions) *Sketch {
	return &Sketch{state: state, canvas: canvas, options: options}
}

// Start is the instant under the initial pointer, floored to SizeInterval.
func (s *Sketch) Start() time.Time {
	start := s.canvas.DateForPosition(s.state.InitialX, s.state.InitialY)
	return floorTo(start, s.options.SizeInterval)
}

// End is the instant under the current pointer, ceiled to SizeInterval and
// never earlier than Start plus MinEventSize.
func (s *Sketch) End() time.Time {
	end := ceilTo(s.canvas.DateForPosition(s.state.X, s.state.Y), s.options.SizeInterval)

	minEnd := s.Start().Add(max(s.options.MinEventSize, 0))
	if end.Before(minEnd) {
		return minEnd
	}
	return end
}
