package scheduler

import (
	"sort"
	"time"
)

// Slot is a time range on one employee's calendar.
type Slot struct {
	ID         string
	EmployeeID string
	Start      time.Time
	End        time.Time
	Available  bool
}

// AvailableSlots filters an employee's calendar slots against a candidate
// window. A slot is returned only when the employee has no meeting that
// overlaps the window and the slot's own range lies entirely outside the
// window. The two checks are independent: a single overlapping meeting
// excludes every slot owned by that employee. Results are ordered ascending
// by start time.
func AvailableSlots(slots []Slot, meetings []Booking, window Window) []Slot {
	if len(slots) == 0 {
		return nil
	}

	for _, meeting := range meetings {
		if window.Overlaps(Window{Start: meeting.Start, End: meeting.End}) {
			return nil
		}
	}

	var out []Slot
	for _, slot := range slots {
		if window.Excludes(slot.Start, slot.End) {
			out = append(out, slot)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].ID < out[j].ID
		}
		return out[i].Start.Before(out[j].Start)
	})

	return out
}
