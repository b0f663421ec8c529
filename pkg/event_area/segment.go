package event_area

import (
	"slices"
	"time"

	"github.com/klokku/calendarui/pkg/calendar"
)

// segment is the part of an event that falls within one day of the area.
type segment struct {
	event   calendar.Event
	from    time.Time
	to      time.Time
	day     int
	ordinal int
}

func (s *segment) StartTime() time.Time { return s.from }
func (s *segment) EndTime() time.Time   { return s.to }

// splitByDay clips every event intersecting the area to each day it touches.
// Segments of one event are numbered in start order.
func (a *EventArea) splitByDay(events []calendar.Event) []*segment {
	var segments []*segment

	for _, event := range events {
		if !event.Overlaps(a.init.Start, a.end) {
			continue
		}

		ordinal := 0
		for day := 1; day <= a.init.Days; day++ {
			dayStart, _ := a.StartOfDay(day)
			dayEnd, _ := a.EndOfDay(day)
			if !event.Overlaps(dayStart, dayEnd) {
				continue
			}

			s := &segment{event: event, from: event.Start, to: event.End, day: day, ordinal: ordinal}
			if s.from.Before(dayStart) {
				s.from = dayStart
			}
			if s.to.After(dayEnd) {
				s.to = dayEnd
			}
			segments = append(segments, s)
			ordinal++
		}
	}

	return segments
}

// groupByDay buckets segments by the day they start in, in day order.
func groupByDay(segments []*segment) [][]*segment {
	byDay := make(map[int][]*segment)
	var days []int
	for _, s := range segments {
		if _, ok := byDay[s.day]; !ok {
			days = append(days, s.day)
		}
		byDay[s.day] = append(byDay[s.day], s)
	}

	slices.Sort(days)
	groups := make([][]*segment, 0, len(days))
	for _, day := range days {
		groups = append(groups, byDay[day])
	}
	return groups
}
