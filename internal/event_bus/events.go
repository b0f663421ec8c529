package event_bus

import "time"

const (
	CalendarEventsChangedType EventType = "calendar.events_changed"
	GestureConfirmedType      EventType = "gesture.confirmed"
	GestureCancelledType      EventType = "gesture.cancelled"
)

type CalendarEventsChanged struct {
	// Reason is the store operation, e.g. "add", "update", "delete", "replace", "import".
	Reason   string
	EventIDs []string
	// Count is the number of events in the store after the change.
	Count int
}

type GestureConfirmed struct {
	// Kind is "sketch" for a new event, otherwise the drag behavior.
	Kind    string
	EventID string
	Start   time.Time
	End     time.Time
}

type GestureCancelled struct {
	Kind    string
	EventID string
}
