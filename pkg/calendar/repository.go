package calendar

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MemoryRepository keeps events in memory. It is safe for concurrent use.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Event
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]Event)}
}

func (r *MemoryRepository) StoreEvent(ctx context.Context, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if _, exists := r.items[event.ID]; exists {
		return Event{}, fmt.Errorf("%w: id %s already taken", ErrInvalidEvent, event.ID)
	}

	r.items[event.ID] = event
	log.Tracef("stored event %s", event.ID)
	return event, nil
}

func (r *MemoryRepository) GetEvent(ctx context.Context, id string) (Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.items[id]
	if !ok {
		return Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	return event, nil
}

// GetEvents returns events intersecting [from, to), ordered by start.
func (r *MemoryRepository) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0, len(r.items))
	for _, event := range r.items {
		if event.Overlaps(from, to) {
			result = append(result, event)
		}
	}
	sortByStart(result)
	return result, nil
}

func (r *MemoryRepository) GetAllEvents(ctx context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0, len(r.items))
	for _, event := range r.items {
		result = append(result, event)
	}
	sortByStart(result)
	return result, nil
}

func (r *MemoryRepository) UpdateEvent(ctx context.Context, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[event.ID]; !ok {
		return Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, event.ID)
	}
	r.items[event.ID] = event
	return event, nil
}

func (r *MemoryRepository) DeleteEvent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	delete(r.items, id)
	return nil
}

// ReplaceEvents swaps the whole collection. Events without an id get one;
// duplicate ids are rejected and leave the store untouched.
func (r *MemoryRepository) ReplaceEvents(ctx context.Context, events []Event) error {
	items := make(map[string]Event, len(events))
	for _, event := range events {
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		if _, dup := items[event.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidEvent, event.ID)
		}
		items[event.ID] = event
	}

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return nil
}

func sortByStart(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].ID < events[j].ID
	})
}
