package event_bus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType names a topic on the bus.
type EventType string

// Event is the envelope delivered to subscribers.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		ctx:       ctx,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the publisher's context, or context.Background if none was given.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is the envelope seen by typed subscribers.
type EventT[T any] struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      T
}

func (e EventT[T]) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

type subscription struct {
	id uint64
	h  func(Event) error
}

// EventBus dispatches events synchronously, in subscription order.
// It is safe for concurrent use.
type EventBus struct {
	mu     sync.RWMutex
	topics map[EventType][]subscription
	nextID uint64
}

func NewEventBus() *EventBus {
	return &EventBus{topics: make(map[EventType][]subscription)}
}

// Subscribe registers h for eventType and returns a function removing it.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eb.nextID
	eb.topics[eventType] = append(eb.topics[eventType], subscription{id: id, h: h})

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()

		eb.topics[eventType] = slices.DeleteFunc(eb.topics[eventType], func(s subscription) bool {
			return s.id == id
		})
		if len(eb.topics[eventType]) == 0 {
			delete(eb.topics, eventType)
		}
	}
}

// SubscribeTyped registers a handler for payloads of type T. Events carrying
// any other payload type are skipped.
//
//	event_bus.SubscribeTyped(bus, event_bus.CalendarEventsChangedType,
//	    func(e event_bus.EventT[event_bus.CalendarEventsChanged]) error {
//	        log.Infof("%s: %d events", e.Data.Reason, e.Data.Count)
//	        return nil
//	    })
func SubscribeTyped[T any](eb *EventBus, eventType EventType, h func(EventT[T]) error) (unsubscribe func()) {
	return eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("event bus: %s carries %T, typed handler expects %T", eventType, e.Data, *new(T))
			return nil
		}
		return h(EventT[T]{ctx: e.ctx, Type: e.Type, Timestamp: e.Timestamp, Data: payload})
	})
}

// Publish runs every handler subscribed to e.Type. Handler errors and panics
// are collected and returned together; a cancelled context stops dispatch.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	subscribers := slices.Clone(eb.topics[e.Type])
	eb.mu.RUnlock()

	var errs []error
	for _, s := range subscribers {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during event processing: %w", err))
			break
		}

		if err := eb.dispatch(s, e); err != nil {
			log.Errorf("event bus: handler %d for %s failed: %v", s.id, e.Type, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %w", e.Type, len(errs), errors.Join(errs...))
	}
	return nil
}

func (eb *EventBus) dispatch(s subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %d panicked on %s: %v", s.id, e.Type, r)
		}
	}()
	return s.h(e)
}
