package dragging

import (
	"errors"
)

var (
	ErrNotDragging     = errors.New("no drag gesture in progress")
	ErrAlreadyDragging = errors.New("a drag gesture is already in progress")
)

// Trail holds where a drag gesture started and where the pointer is now.
type Trail struct {
	InitialX float64
	InitialY float64
	X        float64
	Y        float64
}

type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Gesture tracks the lifecycle of a single drag:
// Idle -> Dragging -> (Confirm | Cancel) -> Idle.
// It is not safe for concurrent use.
type Gesture struct {
	phase    Phase
	trail    Trail
	onChange func(trail Trail, dragging bool)
}

// NewGesture returns an idle gesture. onChange, when not nil, is called with
// the live trail on every Begin and Move, and with dragging=false when the
// gesture ends.
func NewGesture(onChange func(trail Trail, dragging bool)) *Gesture {
	return &Gesture{onChange: onChange}
}

func (g *Gesture) Phase() Phase {
	return g.phase
}

// Trail returns the live trail; ok is false when idle.
func (g *Gesture) Trail() (Trail, bool) {
	return g.trail, g.phase == Dragging
}

func (g *Gesture) Begin(x, y float64) error {
	if g.phase == Dragging {
		return ErrAlreadyDragging
	}
	g.phase = Dragging
	g.trail = Trail{InitialX: x, InitialY: y, X: x, Y: y}
	g.notify(true)
	return nil
}

func (g *Gesture) Move(x, y float64) error {
	if g.phase != Dragging {
		return ErrNotDragging
	}
	g.trail.X = x
	g.trail.Y = y
	g.notify(true)
	return nil
}

// Confirm ends the gesture and returns the final trail for the caller to commit.
func (g *Gesture) Confirm() (Trail, error) {
	if g.phase != Dragging {
		return Trail{}, ErrNotDragging
	}
	trail := g.trail
	g.reset()
	return trail, nil
}

// Cancel discards the gesture. Cancelling an idle gesture is a no-op.
func (g *Gesture) Cancel() {
	if g.phase != Dragging {
		return
	}
	g.reset()
}

func (g *Gesture) reset() {
	g.phase = Idle
	g.trail = Trail{}
	g.notify(false)
}

func (g *Gesture) notify(dragging bool) {
	if g.onChange != nil {
		g.onChange(g.trail, dragging)
	}
}
