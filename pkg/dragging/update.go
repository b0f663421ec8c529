package dragging

import (
	"fmt"
	"time"
)

type Behavior string

const (
	Move   Behavior = "move"
	Resize Behavior = "resize"
)

func ParseBehavior(s string) (Behavior, error) {
	switch Behavior(s) {
	case Move, Resize:
		return Behavior(s), nil
	default:
		return "", fmt.Errorf("unknown drag behavior %q", s)
	}
}

// UpdateState is the pointer trail of a gesture moving or resizing an
// existing event, together with the event's original end and duration.
type UpdateState struct {
	Behavior      Behavior
	EventID       string
	EventEnd      time.Time
	EventDuration time.Duration
	Trail
}

type UpdateOptions struct {
	// DragInterval rounds the end to its nearest multiple.
	DragInterval time.Duration
	MinEventSize time.Duration
}

// Update computes the new times of an event being moved or resized. Both
// behaviors keep the distance between the pointer and the event's end edge.
type Update struct {
	state   UpdateState
	canvas  Canvas
	options UpdateOptions
}

func NewUpdate(state UpdateState, canvas Canvas, options UpdateOptions) *Update {
	return &Update{state: state, canvas: canvas, options: options}
}

func (u *Update) EventID() string {
	return u.state.EventID
}

func (u *Update) Behavior() Behavior {
	return u.state.Behavior
}

func (u *Update) originalStart() time.Time {
	return u.state.EventEnd.Add(-u.state.EventDuration)
}

func (u *Update) End() time.Time {
	grabOffset := u.state.EventEnd.Sub(u.canvas.DateForPosition(u.state.InitialX, u.state.InitialY))
	end := u.canvas.DateForPosition(u.state.X, u.state.Y).Add(grabOffset)

	if u.state.Behavior == Resize {
		if minEnd := u.originalStart().Add(u.options.MinEventSize); end.Before(minEnd) {
			end = minEnd
		}
	}

	return roundTo(end, u.options.DragInterval)
}

// Start stays fixed while resizing and follows End while moving.
func (u *Update) Start() time.Time {
	if u.state.Behavior == Resize {
		return u.originalStart()
	}
	return u.End().Add(-u.state.EventDuration)
}
