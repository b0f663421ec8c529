package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/klokku/calendarui/internal/event_bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func at(day int, hour int) time.Time {
	return monday.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
}

// Test setup helper
func setupServiceTest(t *testing.T) (*Service, *[]event_bus.CalendarEventsChanged) {
	t.Helper()
	bus := event_bus.NewEventBus()
	changes := &[]event_bus.CalendarEventsChanged{}
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventsChangedType, func(e event_bus.EventT[event_bus.CalendarEventsChanged]) error {
		*changes = append(*changes, e.Data)
		return nil
	})
	return NewService(NewMemoryRepository(), bus), changes
}

func TestService_Add(t *testing.T) {
	service, changes := setupServiceTest(t)
	ctx := context.Background()

	added, err := service.Add(ctx, Event{Title: "Standup", Start: at(0, 9), End: at(0, 10)})
	require.NoError(t, err)

	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Standup", added.Title)
	stored, err := service.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, stored)

	require.Len(t, *changes, 1)
	assert.Equal(t, "add", (*changes)[0].Reason)
	assert.Equal(t, []string{added.ID}, (*changes)[0].EventIDs)
	assert.Equal(t, 1, (*changes)[0].Count)
}

func TestService_Add_KeepsGivenId(t *testing.T) {
	service, _ := setupServiceTest(t)
	ctx := context.Background()

	added, err := service.Add(ctx, Event{ID: "a", Start: at(0, 9), End: at(0, 10)})
	require.NoError(t, err)
	assert.Equal(t, "a", added.ID)

	_, err = service.Add(ctx, Event{ID: "a", Start: at(1, 9), End: at(1, 10)})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestService_Add_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		event Event
	}{
		{"end before start", Event{Start: at(0, 10), End: at(0, 9)}},
		{"missing start", Event{End: at(0, 9)}},
		{"missing end", Event{Start: at(0, 9)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, changes := setupServiceTest(t)

			_, err := service.Add(context.Background(), tc.event)

			assert.ErrorIs(t, err, ErrInvalidEvent)
			assert.Empty(t, *changes)
		})
	}
}

func TestService_Add_ZeroDurationAllowed(t *testing.T) {
	service, _ := setupServiceTest(t)

	_, err := service.Add(context.Background(), Event{Start: at(0, 9), End: at(0, 9)})

	assert.NoError(t, err)
}

func TestService_ListBetween(t *testing.T) {
	service, _ := setupServiceTest(t)
	ctx := context.Background()
	require.NoError(t, service.ReplaceAll(ctx, []Event{
		{ID: "before", Start: at(-1, 9), End: at(-1, 10)},
		{ID: "touching-start", Start: at(-1, 20), End: at(0, 0)},
		{ID: "crossing", Start: at(-1, 22), End: at(0, 2)},
		{ID: "inside-late", Start: at(3, 9), End: at(3, 10)},
		{ID: "inside-early", Start: at(1, 9), End: at(1, 10)},
		{ID: "touching-end", Start: at(7, 0), End: at(7, 1)},
	}))

	events, err := service.ListBetween(ctx, at(0, 0), at(7, 0))
	require.NoError(t, err)

	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"crossing", "inside-early", "inside-late"}, ids)
}

func TestService_ListBetween_EmptyRange(t *testing.T) {
	service, _ := setupServiceTest(t)

	_, err := service.ListBetween(context.Background(), at(1, 0), at(0, 0))

	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestService_List_SortedByStartThenId(t *testing.T) {
	service, _ := setupServiceTest(t)
	ctx := context.Background()
	require.NoError(t, service.ReplaceAll(ctx, []Event{
		{ID: "c", Start: at(1, 9), End: at(1, 10)},
		{ID: "b", Start: at(0, 9), End: at(0, 10)},
		{ID: "a", Start: at(1, 9), End: at(1, 11)},
	}))

	events, err := service.List(ctx)
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, "b", events[0].ID)
	assert.Equal(t, "a", events[1].ID)
	assert.Equal(t, "c", events[2].ID)
}

func TestService_Update(t *testing.T) {
	service, changes := setupServiceTest(t)
	ctx := context.Background()
	added, err := service.Add(ctx, Event{Title: "Review", Start: at(0, 9), End: at(0, 10)})
	require.NoError(t, err)

	added.Start = at(0, 11)
	added.End = at(0, 12)
	updated, err := service.Update(ctx, added)
	require.NoError(t, err)

	assert.Equal(t, at(0, 11), updated.Start)
	stored, err := service.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, at(0, 12), stored.End)
	assert.Equal(t, "update", (*changes)[len(*changes)-1].Reason)
}

func TestService_Update_Errors(t *testing.T) {
	service, _ := setupServiceTest(t)
	ctx := context.Background()

	_, err := service.Update(ctx, Event{Start: at(0, 9), End: at(0, 10)})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = service.Update(ctx, Event{ID: "missing", Start: at(0, 9), End: at(0, 10)})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_SetTitle(t *testing.T) {
	service, changes := setupServiceTest(t)
	ctx := context.Background()
	added, err := service.Add(ctx, Event{Start: at(0, 9), End: at(0, 10)})
	require.NoError(t, err)

	updated, err := service.SetTitle(ctx, added.ID, "Planning")
	require.NoError(t, err)

	assert.Equal(t, "Planning", updated.Title)
	assert.Equal(t, added.Start, updated.Start)
	assert.Equal(t, added.End, updated.End)
	assert.Equal(t, "title", (*changes)[len(*changes)-1].Reason)

	_, err = service.SetTitle(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_Delete(t *testing.T) {
	service, changes := setupServiceTest(t)
	ctx := context.Background()
	added, err := service.Add(ctx, Event{Start: at(0, 9), End: at(0, 10)})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, added.ID))

	_, err = service.Get(ctx, added.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
	last := (*changes)[len(*changes)-1]
	assert.Equal(t, "delete", last.Reason)
	assert.Equal(t, 0, last.Count)

	assert.ErrorIs(t, service.Delete(ctx, added.ID), ErrEventNotFound)
}

func TestService_ReplaceAll_LastWriterWins(t *testing.T) {
	service, changes := setupServiceTest(t)
	ctx := context.Background()
	require.NoError(t, service.ReplaceAll(ctx, []Event{
		{ID: "a", Start: at(0, 9), End: at(0, 10)},
		{ID: "b", Start: at(0, 11), End: at(0, 12)},
	}))

	require.NoError(t, service.ReplaceAll(ctx, []Event{
		{ID: "b", Start: at(1, 11), End: at(1, 12)},
		{Title: "no id", Start: at(2, 11), End: at(2, 12)},
	}))

	events, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].ID)
	assert.Equal(t, at(1, 11), events[0].Start)
	assert.NotEmpty(t, events[1].ID)
	assert.Equal(t, "no id", events[1].Title)

	last := (*changes)[len(*changes)-1]
	assert.Equal(t, "replace", last.Reason)
	assert.Equal(t, 2, last.Count)
}

func TestService_ReplaceAll_DuplicateIdsRejected(t *testing.T) {
	service, _ := setupServiceTest(t)
	ctx := context.Background()
	require.NoError(t, service.ReplaceAll(ctx, []Event{{ID: "keep", Start: at(0, 9), End: at(0, 10)}}))

	err := service.ReplaceAll(ctx, []Event{
		{ID: "x", Start: at(0, 9), End: at(0, 10)},
		{ID: "x", Start: at(1, 9), End: at(1, 10)},
	})

	assert.ErrorIs(t, err, ErrInvalidEvent)
	events, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "keep", events[0].ID)
}

func TestService_WithoutEventBus(t *testing.T) {
	service := NewService(NewMemoryRepository(), nil)

	_, err := service.Add(context.Background(), Event{Start: at(0, 9), End: at(0, 10)})

	assert.NoError(t, err)
}
