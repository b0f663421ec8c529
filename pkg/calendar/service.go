package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/klokku/calendarui/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
	}
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.GetAllEvents(ctx)
}

func (s *Service) ListBetween(ctx context.Context, from time.Time, to time.Time) ([]Event, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: range end %s is not after start %s", ErrInvalidEvent, to, from)
	}
	return s.repo.GetEvents(ctx, from, to)
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	return s.repo.GetEvent(ctx, id)
}

func (s *Service) Add(ctx context.Context, event Event) (Event, error) {
	if err := validate(event); err != nil {
		return Event{}, err
	}

	stored, err := s.repo.StoreEvent(ctx, event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}

	s.publishChanged(ctx, "add", stored.ID)
	return stored, nil
}

func (s *Service) Update(ctx context.Context, event Event) (Event, error) {
	if event.ID == "" {
		return Event{}, fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	if err := validate(event); err != nil {
		return Event{}, err
	}

	updated, err := s.repo.UpdateEvent(ctx, event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}

	s.publishChanged(ctx, "update", updated.ID)
	return updated, nil
}

// SetTitle renames an event and leaves its times untouched.
func (s *Service) SetTitle(ctx context.Context, id string, title string) (Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get event: %w", err)
	}
	event.Title = title

	updated, err := s.repo.UpdateEvent(ctx, event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}

	s.publishChanged(ctx, "title", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.publishChanged(ctx, "delete", id)
	return nil
}

// ReplaceAll commits a whole replacement collection. The previous list is
// discarded, last writer wins.
func (s *Service) ReplaceAll(ctx context.Context, events []Event) error {
	return s.replace(ctx, "replace", events)
}

func (s *Service) replace(ctx context.Context, reason string, events []Event) error {
	if err := s.repo.ReplaceEvents(ctx, events); err != nil {
		return fmt.Errorf("failed to replace events: %w", err)
	}

	ids := make([]string, 0, len(events))
	for _, e := range events {
		if e.ID != "" {
			ids = append(ids, e.ID)
		}
	}
	s.publishChanged(ctx, reason, ids...)
	return nil
}

func (s *Service) publishChanged(ctx context.Context, reason string, ids ...string) {
	if s.eventBus == nil {
		return
	}

	count := 0
	if all, err := s.repo.GetAllEvents(ctx); err == nil {
		count = len(all)
	}

	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.CalendarEventsChangedType, event_bus.CalendarEventsChanged{
		Reason:   reason,
		EventIDs: ids,
		Count:    count,
	}))
	if err != nil {
		log.Warnf("failed to publish calendar change (%s): %v", reason, err)
	}
}

func validate(event Event) error {
	if event.Start.IsZero() || event.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidEvent)
	}
	if event.End.Before(event.Start) {
		return fmt.Errorf("%w: end %s is before start %s", ErrInvalidEvent, event.End, event.Start)
	}
	return nil
}
