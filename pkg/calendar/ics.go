package calendar

import (
	"context"
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const productID = "-//klokku//calendarui//EN"

// ImportICS replaces the store with the VEVENTs found in r. Recurrence rules
// are not expanded; only the first occurrence of a recurring event is kept.
func (s *Service) ImportICS(ctx context.Context, r io.Reader) ([]Event, error) {
	events, err := ParseICS(r)
	if err != nil {
		return nil, err
	}
	if err := s.replace(ctx, "import", events); err != nil {
		return nil, err
	}
	log.Infof("imported %d events from ICS", len(events))
	return events, nil
}

// ExportICS writes every stored event as a VEVENT.
func (s *Service) ExportICS(ctx context.Context, w io.Writer) error {
	events, err := s.repo.GetAllEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	return WriteICS(w, events, time.Now())
}

func ParseICS(r io.Reader) ([]Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	events := make([]Event, 0, len(cal.Events()))
	seen := make(map[string]bool)
	for _, ve := range cal.Events() {
		event, err := fromVEvent(ve)
		if err != nil {
			log.Warnf("skipping VEVENT: %v", err)
			continue
		}
		if seen[event.ID] {
			log.Debugf("skipping repeated VEVENT %s", event.ID)
			continue
		}
		seen[event.ID] = true
		events = append(events, event)
	}
	return events, nil
}

func fromVEvent(ve *ical.VEvent) (Event, error) {
	var event Event

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil && p.Value != "" {
		event.ID = p.Value
	} else {
		event.ID = uuid.NewString()
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		event.Title = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return Event{}, fmt.Errorf("event %s: invalid DTSTART: %w", event.ID, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return Event{}, fmt.Errorf("event %s: invalid DTEND: %w", event.ID, err)
	}
	event.Start = start
	event.End = end
	return event, nil
}

func WriteICS(w io.Writer, events []Event, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(e.Start)
		ve.SetEndAt(e.End)
		if e.Title != "" {
			ve.SetSummary(e.Title)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
