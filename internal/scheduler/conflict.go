package scheduler

import "time"

// Booking represents a committed meeting in the scheduling domain.
type Booking struct {
	ID           string
	Participants []string
	Start        time.Time
	End          time.Time
}

// Conflict details an overlapping booking relation that callers can present to users.
type Conflict struct {
	WithBookingID string
	Participant   string
}

// DetectConflicts identifies conflicts for the candidate booking against
// existing ones. A conflict is reported for every existing booking whose time
// range overlaps the candidate's and which shares at least one participant,
// once per shared participant. Candidate participant order is preserved.
func DetectConflicts(existing []Booking, candidate Booking) []Conflict {
	if len(existing) == 0 || len(candidate.Participants) == 0 {
		return nil
	}

	var conflicts []Conflict
	for _, booking := range existing {
		if booking.ID != "" && booking.ID == candidate.ID {
			continue
		}
		if !Overlaps(candidate.Start, candidate.End, booking.Start, booking.End) {
			continue
		}
		members := make(map[string]struct{}, len(booking.Participants))
		for _, id := range booking.Participants {
			members[id] = struct{}{}
		}
		for _, id := range candidate.Participants {
			if _, ok := members[id]; ok {
				conflicts = append(conflicts, Conflict{WithBookingID: booking.ID, Participant: id})
			}
		}
	}
	return conflicts
}

// ConflictedParticipants returns the distinct participants across every
// booking that overlaps the window, in first-seen order.
func ConflictedParticipants(bookings []Booking, window Window) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, booking := range bookings {
		if !window.Overlaps(Window{Start: booking.Start, End: booking.End}) {
			continue
		}
		for _, id := range booking.Participants {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
