package scheduler

import "time"

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window from a start time and a duration in minutes.
func NewWindow(start time.Time, durationMinutes int) Window {
	return Window{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}
}

// IsValid reports whether the window has a positive extent.
func (w Window) IsValid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && w.Start.Before(w.End)
}

// Overlaps reports whether two half-open ranges intersect. Ranges that merely
// touch at a boundary (aEnd == bStart) do not overlap. Callers must ensure
// start < end for both ranges.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Overlaps reports whether the window intersects another window.
func (w Window) Overlaps(other Window) bool {
	return Overlaps(w.Start, w.End, other.Start, other.End)
}

// Excludes reports whether the range [start, end) lies entirely before or
// entirely after the window, with no partial intersection.
func (w Window) Excludes(start, end time.Time) bool {
	return !end.After(w.Start) || !start.Before(w.End)
}
