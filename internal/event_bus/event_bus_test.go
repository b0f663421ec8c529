package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_RunsHandlersInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int
	for i := 1; i <= 5; i++ {
		i := i
		bus.Subscribe("topic", func(e Event) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, bus.Publish(NewEvent(context.Background(), "topic", nil)))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, order)
}

func TestPublish_CollectsErrorsAndPanics(t *testing.T) {
	bus := NewEventBus()
	failure := errors.New("boom")
	called := 0
	bus.Subscribe("topic", func(e Event) error { return failure })
	bus.Subscribe("topic", func(e Event) error { panic("oops") })
	bus.Subscribe("topic", func(e Event) error { called++; return nil })

	err := bus.Publish(NewEvent(context.Background(), "topic", nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "2 handler(s) failed")
	assert.Contains(t, err.Error(), "oops")
	assert.Equal(t, 1, called)
}

func TestPublish_CancelledContext(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.Subscribe("topic", func(e Event) error { called = true; return nil })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, "topic", nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	unsubscribe := bus.Subscribe("topic", func(e Event) error { calls++; return nil })

	require.NoError(t, bus.Publish(NewEvent(context.Background(), "topic", nil)))
	unsubscribe()
	require.NoError(t, bus.Publish(NewEvent(context.Background(), "topic", nil)))

	assert.Equal(t, 1, calls)
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var received []CalendarEventsChanged
	SubscribeTyped(bus, CalendarEventsChangedType, func(e EventT[CalendarEventsChanged]) error {
		received = append(received, e.Data)
		assert.NotNil(t, e.Context())
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), CalendarEventsChangedType, CalendarEventsChanged{Reason: "add", Count: 1})))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), CalendarEventsChangedType, "not a payload")))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), CalendarEventsChangedType, nil)))

	require.Len(t, received, 1)
	assert.Equal(t, "add", received[0].Reason)
}
