package event_area

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/klokku/calendarui/pkg/arranger"
	"github.com/klokku/calendarui/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

// Day is the span of time a single day column covers, top to bottom.
const Day = 24 * time.Hour

var ErrInvalidArea = errors.New("invalid event area")

// Init describes a single render of the area. It is never mutated.
type Init struct {
	Start           time.Time
	Days            int
	Width           float64
	Height          float64
	Top             float64
	Left            float64
	DayPaddingRight float64
	BlockPadding    float64
	Events          []calendar.Event
	Overlay         Overlay
}

// Overlay is the in-progress gesture folded into a render: nil, Sketching or Updating.
type Overlay interface {
	overlay()
}

// Sketching is a new event being drawn.
type Sketching struct {
	Start time.Time
	End   time.Time
}

// Updating is an existing event being moved or resized to new candidate times.
type Updating struct {
	EventID string
	Start   time.Time
	End     time.Time
}

func (Sketching) overlay() {}
func (Updating) overlay()  {}

// Position is a pixel rectangle relative to the area.
type Position struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Block is a rectangle to draw for (part of) an event.
type Block struct {
	Position
	Event         calendar.Event
	Key           string
	IsFloating    bool
	IsTransparent bool
	IsSketch      bool
}

// EventArea projects a window of Days days starting at Start onto a
// Width x Height rectangle. Days are laid out as columns, each covering a
// full day from top to bottom.
type EventArea struct {
	init     Init
	arranger arranger.Arranger
	end      time.Time
	dayWidth float64
}

// New validates init and builds an area. A nil arranger puts every block in a
// single full-width column.
func New(init Init, arr arranger.Arranger) (*EventArea, error) {
	if init.Days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidArea, init.Days)
	}
	if init.Width <= 0 || init.Height <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %gx%g", ErrInvalidArea, init.Width, init.Height)
	}
	if arr == nil {
		arr = arranger.Noop{}
	}

	return &EventArea{
		init:     init,
		arranger: arr,
		end:      init.Start.Add(time.Duration(init.Days) * Day),
		dayWidth: init.Width / float64(init.Days),
	}, nil
}

func (a *EventArea) Start() time.Time { return a.init.Start }
func (a *EventArea) End() time.Time { return a.end }
func (a *EventArea) Days() int { return a.init.Days }
func (a *EventArea) Width() float64 { return a.init.Width }
func (a *EventArea) Height() float64 { return a.init.Height }

func (a *EventArea) DayWidth() float64 {
	return a.dayWidth
}

func (a *EventArea) usableDayWidth() float64 {
	return a.dayWidth - a.init.DayPaddingRight
}

// StartOfDay returns the first instant of the 1-based day; ok is false outside [1, Days].
func (a *EventArea) StartOfDay(day int) (time.Time, bool) {
	if day < 1 || day > a.init.Days {
		return time.Time{}, false
	}
	return a.init.Start.Add(time.Duration(day-1) * Day), true
}

// EndOfDay returns the exclusive end of the 1-based day; ok is false outside [1, Days].
func (a *EventArea) EndOfDay(day int) (time.Time, bool) {
	start, ok := a.StartOfDay(day)
	if !ok {
		return time.Time{}, false
	}
	return start.Add(Day), true
}

func (a *EventArea) DurationToPx(d time.Duration) float64 {
	return float64(d) / float64(Day) * a.init.Height
}

func (a *EventArea) PxToDuration(px float64) time.Duration {
	return time.Duration(math.Round(px / a.init.Height * float64(Day)))
}

// DateForPosition maps a point given in the same coordinate space as Top and
// Left to an instant. Points outside the rectangle are extrapolated.
func (a *EventArea) DateForPosition(x, y float64) time.Time {
	x -= a.init.Left
	y -= a.init.Top

	dayIndex := math.Floor(x / a.dayWidth)

	return a.init.Start.
		Add(time.Duration(dayIndex) * Day).
		Add(a.PxToDuration(y))
}

// PositionForDate is the inverse of DateForPosition: it returns the left edge
// of the day column containing t and the vertical offset of t within that day.
func (a *EventArea) PositionForDate(t time.Time) (x, y float64) {
	dayIndex := a.dayIndex(t)
	offset := t.Sub(a.init.Start) - time.Duration(dayIndex)*Day

	return a.init.Left + float64(dayIndex)*a.dayWidth, a.init.Top + a.DurationToPx(offset)
}

func (a *EventArea) dayIndex(t time.Time) int {
	return int(math.Floor(float64(t.Sub(a.init.Start)) / float64(Day)))
}

// Blocks lays out all events intersecting the area, followed by the floating
// blocks of the overlay, if any.
func (a *EventArea) Blocks() []Block {
	segments := a.splitByDay(a.init.Events)
	updatingID, updating := a.updatingEventID()

	blocks := make([]Block, 0, len(segments)+a.init.Days)
	for _, dayGroup := range groupByDay(segments) {
		timespans := make([]arranger.Timespan, 0, len(dayGroup))
		for _, s := range dayGroup {
			timespans = append(timespans, s)
		}

		for _, result := range a.arranger.Arrange(timespans) {
			s := result.Item.(*segment)
			blocks = append(blocks, Block{
				Position:      a.position(s.from, s.to, result.Column, result.Columns),
				Event:         s.event,
				Key:           fmt.Sprintf("%s_%d", s.event.ID, s.ordinal),
				IsTransparent: updating && s.event.ID == updatingID,
			})
		}
	}

	blocks = append(blocks, a.overlayBlocks()...)
	log.Tracef("event area %s+%dd: %d events, %d blocks", a.init.Start.Format(time.RFC3339), a.init.Days, len(a.init.Events), len(blocks))

	return blocks
}

func (a *EventArea) updatingEventID() (string, bool) {
	u, ok := a.init.Overlay.(Updating)
	if !ok {
		return "", false
	}
	return u.EventID, true
}

func (a *EventArea) overlayBlocks() []Block {
	switch o := a.init.Overlay.(type) {
	case Sketching:
		sketch := calendar.Event{Start: o.Start, End: o.End}
		return a.floatingBlocks(sketch, func(i int) string { return fmt.Sprintf("sketch_%d", i) }, true)
	case Updating:
		original, found := a.findEvent(o.EventID)
		if !found {
			log.Debugf("event area: overlay references unknown event %s", o.EventID)
			return nil
		}
		moved := original
		moved.Start = o.Start
		moved.End = o.End
		return a.floatingBlocks(moved, func(i int) string { return fmt.Sprintf("%s_%d_drag", moved.ID, i) }, false)
	default:
		return nil
	}
}

func (a *EventArea) floatingBlocks(event calendar.Event, key func(int) string, isSketch bool) []Block {
	segments := a.splitByDay([]calendar.Event{event})

	blocks := make([]Block, 0, len(segments))
	for i, s := range segments {
		blocks = append(blocks, Block{
			Position:   a.position(s.from, s.to, 1, 1),
			Event:      event,
			Key:        key(i),
			IsFloating: true,
			IsSketch:   isSketch,
		})
	}
	return blocks
}

func (a *EventArea) findEvent(id string) (calendar.Event, bool) {
	for _, e := range a.init.Events {
		if e.ID == id {
			return e, true
		}
	}
	return calendar.Event{}, false
}

func (a *EventArea) position(start, end time.Time, column, columns int) Position {
	if start.Before(a.init.Start) {
		start = a.init.Start
	}
	dayIndex := a.dayIndex(start)
	dayStart := a.init.Start.Add(time.Duration(dayIndex) * Day)
	if dayEnd := dayStart.Add(Day); end.After(dayEnd) {
		end = dayEnd
	}

	columnWidth := a.usableDayWidth() / float64(columns)

	return Position{
		Top:    a.DurationToPx(start.Sub(dayStart)),
		Left:   float64(dayIndex)*a.dayWidth + float64(column-1)*columnWidth,
		Width:  math.Max(0, columnWidth-a.init.BlockPadding),
		Height: math.Max(0, a.DurationToPx(end.Sub(start))-a.init.BlockPadding),
	}
}
