package dragging

import (
	"time"
)

// Canvas resolves a pointer position to an instant.
type Canvas interface {
	DateForPosition(x, y float64) time.Time
}

// CanvasFunc adapts a plain function to a Canvas.
type CanvasFunc func(x, y float64) time.Time

func (f CanvasFunc) DateForPosition(x, y float64) time.Time {
	return f(x, y)
}

// IsSentinel reports whether a pointer position is the zeroed position some
// drag sources emit as their last event. It carries no location and must not
// be fed into a trail.
func IsSentinel(x, y float64) bool {
	return x <= 0 && y <= 0
}

// offset returns how far t lies past the previous multiple of interval,
// counted from the Unix epoch. It is always in [0, interval).
func offset(t time.Time, interval time.Duration) time.Duration {
	rem := time.Duration(t.UnixNano() % int64(interval))
	if rem < 0 {
		rem += interval
	}
	return rem
}

func floorTo(t time.Time, interval time.Duration) time.Time {
	if interval <= 0 {
		return t
	}
	return t.Add(-offset(t, interval))
}

func ceilTo(t time.Time, interval time.Duration) time.Time {
	if interval <= 0 {
		return t
	}
	rem := offset(t, interval)
	if rem == 0 {
		return t
	}
	return t.Add(interval - rem)
}

// roundTo snaps to the nearest multiple, halves rounding up.
func roundTo(t time.Time, interval time.Duration) time.Time {
	if interval <= 0 {
		return t
	}
	if offset(t, interval)*2 >= interval {
		return ceilTo(t, interval)
	}
	return floorTo(t, interval)
}
