package interaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/calendarui/internal/config"
	"github.com/klokku/calendarui/internal/event_bus"
	"github.com/klokku/calendarui/pkg/arranger"
	"github.com/klokku/calendarui/pkg/calendar"
	"github.com/klokku/calendarui/pkg/dragging"
	"github.com/klokku/calendarui/pkg/event_area"
	"github.com/klokku/calendarui/pkg/view"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidGesture = errors.New("invalid gesture")

type GestureKind string

const (
	Sketch GestureKind = "sketch"
	Move               = GestureKind(dragging.Move)
	Resize             = GestureKind(dragging.Resize)
)

func ParseGestureKind(s string) (GestureKind, error) {
	switch GestureKind(s) {
	case Sketch, Move, Resize:
		return GestureKind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidGesture, s)
	}
}

// Gesture is a drag in progress. EventID is required for Move and Resize.
type Gesture struct {
	Kind    GestureKind
	EventID string
	dragging.Trail
}

func (g Gesture) validate() error {
	if _, err := ParseGestureKind(string(g.Kind)); err != nil {
		return err
	}
	if g.Kind != Sketch && g.EventID == "" {
		return fmt.Errorf("%w: %s requires an event id", ErrInvalidGesture, g.Kind)
	}
	return nil
}

// Viewport is the on-screen rectangle of the event area.
type Viewport struct {
	Width  float64
	Height float64
	Top    float64
	Left   float64
}

type Options struct {
	DayPaddingRight float64
	BlockPadding    float64
	DragInterval    time.Duration
	MinEventSize    time.Duration
}

func OptionsFromConfig(cfg config.Layout) Options {
	return Options{
		DayPaddingRight: cfg.DayPaddingRight,
		BlockPadding:    cfg.BlockPadding,
		DragInterval:    cfg.DragInterval,
		MinEventSize:    cfg.MinEventSize,
	}
}

// ArrangerFromConfig maps the configured arranger name to an implementation.
func ArrangerFromConfig(cfg config.Layout) (arranger.Arranger, error) {
	switch cfg.Arranger {
	case "", "columns":
		return arranger.Default{}, nil
	case "none":
		return arranger.Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown arranger %q", cfg.Arranger)
	}
}

// Layout is one render of a window.
type Layout struct {
	Window view.Window
	Area   *event_area.EventArea
	Events []calendar.Event
	Blocks []event_area.Block
}

// Controller renders windows of the calendar and commits finished gestures
// back to it.
type Controller struct {
	calendar *calendar.Service
	arranger arranger.Arranger
	eventBus *event_bus.EventBus
	options  Options
}

func NewController(cal *calendar.Service, arr arranger.Arranger, eventBus *event_bus.EventBus, options Options) *Controller {
	return &Controller{
		calendar: cal,
		arranger: arr,
		eventBus: eventBus,
		options:  options,
	}
}

// Render lays out the events of window. A non-nil gesture is folded in as the
// sketch or update overlay.
func (c *Controller) Render(ctx context.Context, viewport Viewport, window view.Window, gesture *Gesture) (*Layout, error) {
	base, events, err := c.baseArea(ctx, viewport, window)
	if err != nil {
		return nil, err
	}
	if gesture == nil {
		return &Layout{Window: window, Area: base, Events: events, Blocks: base.Blocks()}, nil
	}

	start, end, err := c.candidate(base, events, *gesture)
	if err != nil {
		return nil, err
	}

	var overlay event_area.Overlay
	if gesture.Kind == Sketch {
		overlay = event_area.Sketching{Start: start, End: end}
	} else {
		overlay = event_area.Updating{EventID: gesture.EventID, Start: start, End: end}
	}

	area, err := event_area.New(c.init(viewport, window, events, overlay), c.arranger)
	if err != nil {
		return nil, err
	}
	return &Layout{Window: window, Area: area, Events: events, Blocks: area.Blocks()}, nil
}

// Commit applies a confirmed gesture. A sketch adds a new untitled event; a
// move or resize writes the whole event list back with the target's new times.
func (c *Controller) Commit(ctx context.Context, viewport Viewport, window view.Window, gesture Gesture) (calendar.Event, error) {
	base, events, err := c.baseArea(ctx, viewport, window)
	if err != nil {
		return calendar.Event{}, err
	}
	start, end, err := c.candidate(base, events, gesture)
	if err != nil {
		return calendar.Event{}, err
	}

	var committed calendar.Event
	if gesture.Kind == Sketch {
		committed, err = c.calendar.Add(ctx, calendar.Event{ID: uuid.NewString(), Start: start, End: end})
		if err != nil {
			return calendar.Event{}, fmt.Errorf("failed to add sketched event: %w", err)
		}
	} else {
		committed, err = c.replaceTimes(ctx, gesture.EventID, start, end)
		if err != nil {
			return calendar.Event{}, err
		}
	}

	log.Debugf("committed %s gesture for event %s: %s - %s", gesture.Kind, committed.ID, start.Format(time.RFC3339), end.Format(time.RFC3339))
	c.publish(ctx, event_bus.GestureConfirmedType, event_bus.GestureConfirmed{
		Kind:    string(gesture.Kind),
		EventID: committed.ID,
		Start:   committed.Start,
		End:     committed.End,
	})
	return committed, nil
}

// Cancel discards a gesture. Nothing is written to the calendar.
func (c *Controller) Cancel(ctx context.Context, gesture Gesture) {
	log.Debugf("cancelled %s gesture", gesture.Kind)
	c.publish(ctx, event_bus.GestureCancelledType, event_bus.GestureCancelled{
		Kind:    string(gesture.Kind),
		EventID: gesture.EventID,
	})
}

func (c *Controller) replaceTimes(ctx context.Context, id string, start, end time.Time) (calendar.Event, error) {
	all, err := c.calendar.List(ctx)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("failed to list events: %w", err)
	}

	var updated calendar.Event
	found := false
	for i := range all {
		if all[i].ID == id {
			all[i].Start = start
			all[i].End = end
			updated = all[i]
			found = true
		}
	}
	if !found {
		return calendar.Event{}, fmt.Errorf("%w: %s", calendar.ErrEventNotFound, id)
	}

	if err := c.calendar.ReplaceAll(ctx, all); err != nil {
		return calendar.Event{}, fmt.Errorf("failed to commit event update: %w", err)
	}
	return updated, nil
}

func (c *Controller) baseArea(ctx context.Context, viewport Viewport, window view.Window) (*event_area.EventArea, []calendar.Event, error) {
	events, err := c.calendar.ListBetween(ctx, window.Start, window.End())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get events: %w", err)
	}
	area, err := event_area.New(c.init(viewport, window, events, nil), c.arranger)
	if err != nil {
		return nil, nil, err
	}
	return area, events, nil
}

// candidate interprets the gesture against the area and returns the times the
// sketched or dragged event would get.
func (c *Controller) candidate(area *event_area.EventArea, events []calendar.Event, gesture Gesture) (time.Time, time.Time, error) {
	if err := gesture.validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if gesture.Kind == Sketch {
		sketch := dragging.NewSketch(gesture.Trail, area, dragging.SketchOptions{
			SizeInterval: c.options.DragInterval,
			MinEventSize: c.options.MinEventSize,
		})
		return sketch.Start(), sketch.End(), nil
	}

	target, ok := findEvent(events, gesture.EventID)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s is not in the visible window", calendar.ErrEventNotFound, gesture.EventID)
	}
	update := dragging.NewUpdate(dragging.UpdateState{
		Behavior:      dragging.Behavior(gesture.Kind),
		EventID:       target.ID,
		EventEnd:      target.End,
		EventDuration: target.Duration(),
		Trail:         gesture.Trail,
	}, area, dragging.UpdateOptions{
		DragInterval: c.options.DragInterval,
		MinEventSize: c.options.MinEventSize,
	})
	return update.Start(), update.End(), nil
}

func (c *Controller) init(viewport Viewport, window view.Window, events []calendar.Event, overlay event_area.Overlay) event_area.Init {
	return event_area.Init{
		Start:           window.Start,
		Days:            window.Days,
		Width:           viewport.Width,
		Height:          viewport.Height,
		Top:             viewport.Top,
		Left:            viewport.Left,
		DayPaddingRight: c.options.DayPaddingRight,
		BlockPadding:    c.options.BlockPadding,
		Events:          events,
		Overlay:         overlay,
	}
}

func (c *Controller) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if c.eventBus == nil {
		return
	}
	if err := c.eventBus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("failed to publish %s: %v", eventType, err)
	}
}

func findEvent(events []calendar.Event, id string) (calendar.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return calendar.Event{}, false
}
