package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/klokku/calendarui/internal/utils"
)

type Kind string

const (
	Day  Kind = "day"
	Week Kind = "week"
)

var (
	ErrUnknownKind    = errors.New("unknown view kind")
	ErrUnknownWeekday = errors.New("unknown weekday")
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Day, Week:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ParseWeekday accepts English day names ("monday", "Mon") case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
}

// Days is the number of day columns the view shows.
func (k Kind) Days() int {
	if k == Day {
		return 1
	}
	return 7
}

// Window is the range of days currently on screen.
type Window struct {
	Kind         Kind
	ViewingDate  time.Time
	WeekStartsOn time.Weekday
	Start        time.Time
	Days         int
}

// WindowFor returns the week containing viewingDate (honoring weekStartsOn)
// or the day itself. An out of range weekStartsOn falls back to Monday.
func WindowFor(kind Kind, viewingDate time.Time, weekStartsOn time.Weekday) Window {
	if weekStartsOn < time.Sunday || weekStartsOn > time.Saturday {
		weekStartsOn = time.Monday
	}
	if kind != Day {
		kind = Week
	}

	start := StartOfDay(viewingDate)
	if kind == Week {
		delta := (int(start.Weekday()) - int(weekStartsOn) + 7) % 7
		start = start.AddDate(0, 0, -delta)
	}

	return Window{
		Kind:         kind,
		ViewingDate:  viewingDate,
		WeekStartsOn: weekStartsOn,
		Start:        start,
		Days:         kind.Days(),
	}
}

// Today is the window of kind around the clock's current time.
func Today(kind Kind, clock utils.Clock, weekStartsOn time.Weekday) Window {
	return WindowFor(kind, clock.Now(), weekStartsOn)
}

func (w Window) Previous() Window {
	return WindowFor(w.Kind, w.ViewingDate.AddDate(0, 0, -w.Days), w.WeekStartsOn)
}

func (w Window) Next() Window {
	return WindowFor(w.Kind, w.ViewingDate.AddDate(0, 0, w.Days), w.WeekStartsOn)
}

// WithKind switches between day and week keeping the viewing date.
func (w Window) WithKind(kind Kind) Window {
	return WindowFor(kind, w.ViewingDate, w.WeekStartsOn)
}

// End is the exclusive end of the last day column.
func (w Window) End() time.Time {
	return w.Start.Add(time.Duration(w.Days) * 24 * time.Hour)
}

// Dates lists the start of each day column.
func (w Window) Dates() []time.Time {
	dates := make([]time.Time, 0, w.Days)
	for i := 0; i < w.Days; i++ {
		dates = append(dates, w.Start.AddDate(0, 0, i))
	}
	return dates
}

// Title is the header text: "March 2024" for weeks, "Mon 4 March 2024" for days.
func (w Window) Title() string {
	if w.Kind == Day {
		return w.Start.Format("Mon 2 January 2006")
	}
	return w.Start.Format("January 2006")
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
