package scheduler

import "testing"

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	t.Run("participant overlap produces conflict", func(t *testing.T) {
		t.Parallel()
		existing := []Booking{{
			ID:           "booking-1",
			Participants: []string{"emp-1", "emp-2"},
			Start:        at(t, 10, 0),
			End:          at(t, 11, 0),
		}}
		candidate := Booking{
			ID:           "booking-2",
			Participants: []string{"emp-2", "emp-3"},
			Start:        at(t, 10, 30),
			End:          at(t, 11, 30),
		}

		conflicts := DetectConflicts(existing, candidate)
		if len(conflicts) != 1 {
			t.Fatalf("expected 1 conflict, got %d", len(conflicts))
		}
		if conflicts[0].WithBookingID != "booking-1" || conflicts[0].Participant != "emp-2" {
			t.Fatalf("unexpected conflict %+v", conflicts[0])
		}
	})

	t.Run("non-overlapping bookings yield no conflicts", func(t *testing.T) {
		t.Parallel()
		existing := []Booking{{
			ID:           "booking-1",
			Participants: []string{"emp-1"},
			Start:        at(t, 10, 0),
			End:          at(t, 11, 0),
		}}
		candidate := Booking{
			ID:           "booking-2",
			Participants: []string{"emp-1"},
			Start:        at(t, 11, 0),
			End:          at(t, 12, 0),
		}

		if conflicts := DetectConflicts(existing, candidate); conflicts != nil {
			t.Fatalf("touching bookings should not conflict, got %+v", conflicts)
		}
	})

	t.Run("overlap without shared participants yields no conflicts", func(t *testing.T) {
		t.Parallel()
		existing := []Booking{{
			ID:           "booking-1",
			Participants: []string{"emp-1"},
			Start:        at(t, 10, 0),
			End:          at(t, 11, 0),
		}}
		candidate := Booking{
			ID:           "booking-2",
			Participants: []string{"emp-2"},
			Start:        at(t, 10, 0),
			End:          at(t, 11, 0),
		}

		if conflicts := DetectConflicts(existing, candidate); conflicts != nil {
			t.Fatalf("disjoint participants should not conflict, got %+v", conflicts)
		}
	})

	t.Run("candidate is skipped when compared against itself", func(t *testing.T) {
		t.Parallel()
		booking := Booking{
			ID:           "booking-1",
			Participants: []string{"emp-1"},
			Start:        at(t, 10, 0),
			End:          at(t, 11, 0),
		}

		if conflicts := DetectConflicts([]Booking{booking}, booking); conflicts != nil {
			t.Fatalf("booking should not conflict with itself, got %+v", conflicts)
		}
	})
}

func TestConflictedParticipants(t *testing.T) {
	t.Parallel()

	bookings := []Booking{
		{ID: "booking-1", Participants: []string{"emp-1", "emp-2"}, Start: at(t, 10, 0), End: at(t, 11, 0)},
		{ID: "booking-2", Participants: []string{"emp-2", "emp-3"}, Start: at(t, 10, 30), End: at(t, 11, 30)},
		{ID: "booking-3", Participants: []string{"emp-4"}, Start: at(t, 12, 0), End: at(t, 13, 0)},
	}

	got := ConflictedParticipants(bookings, Window{Start: at(t, 10, 45), End: at(t, 11, 15)})

	want := []string{"emp-1", "emp-2", "emp-3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
