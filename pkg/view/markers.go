package view

import (
	"time"

	"github.com/klokku/calendarui/internal/utils"
)

type DayMarker struct {
	Date    time.Time
	Label   string
	IsToday bool
}

func DayMarkers(w Window, clock utils.Clock) []DayMarker {
	now := clock.Now()
	markers := make([]DayMarker, 0, w.Days)
	for _, date := range w.Dates() {
		markers = append(markers, DayMarker{
			Date:    date,
			Label:   date.Format("Mon 2"),
			IsToday: sameDay(date, now),
		})
	}
	return markers
}

// HourMarker is a labelled horizontal line. Fraction is its distance from
// the top of a day column, as a share of the column height.
type HourMarker struct {
	Time     time.Time
	Label    string
	Fraction float64
}

// HourMarkers returns the lines for 01:00 to 23:00 of date. Midnight has no
// marker since it coincides with the top edge.
func HourMarkers(date time.Time) []HourMarker {
	start := StartOfDay(date)
	markers := make([]HourMarker, 0, 23)
	for hour := 1; hour < 24; hour++ {
		t := start.Add(time.Duration(hour) * time.Hour)
		markers = append(markers, HourMarker{
			Time:     t,
			Label:    t.Format("15:04"),
			Fraction: float64(hour) / 24,
		})
	}
	return markers
}

// CurrentTimeOffset is the Y position of the current-time line within a day
// column of the given height, at minute precision.
func CurrentTimeOffset(now time.Time, height float64) float64 {
	minutes := now.Hour()*60 + now.Minute()
	return float64(minutes) / 1440 * height
}
