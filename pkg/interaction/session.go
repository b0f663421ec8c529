package interaction

import (
	"context"
	"sync"

	"github.com/klokku/calendarui/pkg/calendar"
	"github.com/klokku/calendarui/pkg/dragging"
	"github.com/klokku/calendarui/pkg/view"
	log "github.com/sirupsen/logrus"
)

// Session drives a single pointer gesture over a fixed viewport and window.
// Every Begin or Move returns the layout including the live overlay; Confirm
// commits it and Cancel returns to the plain layout. It is safe for
// concurrent use.
type Session struct {
	mu         sync.Mutex
	controller *Controller
	viewport   Viewport
	window     view.Window
	kind       GestureKind
	eventID    string
	gesture    *dragging.Gesture
}

func (c *Controller) NewSession(viewport Viewport, window view.Window, kind GestureKind, eventID string) (*Session, error) {
	probe := Gesture{Kind: kind, EventID: eventID}
	if err := probe.validate(); err != nil {
		return nil, err
	}
	return &Session{
		controller: c,
		viewport:   viewport,
		window:     window,
		kind:       kind,
		eventID:    eventID,
		gesture:    dragging.NewGesture(nil),
	}, nil
}

func (s *Session) Phase() dragging.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gesture.Phase()
}

func (s *Session) Begin(ctx context.Context, x, y float64) (*Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gesture.Begin(x, y); err != nil {
		return nil, err
	}
	return s.render(ctx)
}

// Move updates the pointer. A zeroed sentinel position leaves the trail as it
// was; the gesture still has to be confirmed or cancelled explicitly.
func (s *Session) Move(ctx context.Context, x, y float64) (*Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dragging.IsSentinel(x, y) {
		if s.gesture.Phase() != dragging.Dragging {
			return nil, dragging.ErrNotDragging
		}
		log.Debugf("ignoring sentinel pointer position (%g, %g)", x, y)
		return s.render(ctx)
	}
	if err := s.gesture.Move(x, y); err != nil {
		return nil, err
	}
	return s.render(ctx)
}

// Confirm ends the gesture and commits its result.
func (s *Session) Confirm(ctx context.Context) (calendar.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trail, err := s.gesture.Confirm()
	if err != nil {
		return calendar.Event{}, err
	}
	return s.controller.Commit(ctx, s.viewport, s.window, s.current(trail))
}

// Cancel ends the gesture without committing and returns the plain layout.
func (s *Session) Cancel(ctx context.Context) (*Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if trail, active := s.gesture.Trail(); active {
		s.gesture.Cancel()
		s.controller.Cancel(ctx, s.current(trail))
	}
	return s.controller.Render(ctx, s.viewport, s.window, nil)
}

func (s *Session) render(ctx context.Context) (*Layout, error) {
	trail, _ := s.gesture.Trail()
	g := s.current(trail)
	return s.controller.Render(ctx, s.viewport, s.window, &g)
}

func (s *Session) current(trail dragging.Trail) Gesture {
	return Gesture{Kind: s.kind, EventID: s.eventID, Trail: trail}
}
