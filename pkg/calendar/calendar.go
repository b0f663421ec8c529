package calendar

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event")
)

// Repository stores the event list. Implementations apply last-writer-wins.
type Repository interface {
	StoreEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	GetEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	GetAllEvents(ctx context.Context) ([]Event, error)
	UpdateEvent(ctx context.Context, event Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ReplaceEvents(ctx context.Context, events []Event) error
}
