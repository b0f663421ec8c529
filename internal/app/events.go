package app

import (
	"github.com/klokku/calendarui/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

func subscribeLogging(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventsChangedType, func(e event_bus.EventT[event_bus.CalendarEventsChanged]) error {
		log.WithFields(log.Fields{
			"request_id": RequestID(e.Context()),
			"reason":     e.Data.Reason,
			"events":     len(e.Data.EventIDs),
			"total":      e.Data.Count,
		}).Info("calendar changed")
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.GestureConfirmedType, func(e event_bus.EventT[event_bus.GestureConfirmed]) error {
		log.WithFields(log.Fields{
			"request_id": RequestID(e.Context()),
			"kind":       e.Data.Kind,
			"event_id":   e.Data.EventID,
		}).Debug("gesture confirmed")
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.GestureCancelledType, func(e event_bus.EventT[event_bus.GestureCancelled]) error {
		log.WithFields(log.Fields{
			"request_id": RequestID(e.Context()),
			"kind":       e.Data.Kind,
			"event_id":   e.Data.EventID,
		}).Debug("gesture cancelled")
		return nil
	})
}
