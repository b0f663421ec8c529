package calendar

import (
	"time"
)

// Event is a timed calendar entry. End is expected, but not guaranteed, to be
// after Start.
type Event struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
}

// Duration is End - Start; negative for malformed events.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Overlaps reports whether e intersects the half-open range [from, to).
func (e Event) Overlaps(from, to time.Time) bool {
	return e.Start.Before(to) && e.End.After(from)
}
