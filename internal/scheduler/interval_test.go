package scheduler

import (
	"testing"
	"time"
)

func at(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2024, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		aStart int
		aEnd   int
		bStart int
		bEnd   int
		want   bool
	}{
		{"disjoint ranges", 9, 10, 11, 12, false},
		{"contained range", 9, 12, 10, 11, true},
		{"partial overlap", 9, 11, 10, 12, true},
		{"identical ranges", 9, 10, 9, 10, true},
		{"touching at boundary", 9, 10, 10, 11, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a1, a2 := at(t, tc.aStart, 0), at(t, tc.aEnd, 0)
			b1, b2 := at(t, tc.bStart, 0), at(t, tc.bEnd, 0)

			if got := Overlaps(a1, a2, b1, b2); got != tc.want {
				t.Fatalf("Overlaps(%v, %v, %v, %v) = %v, want %v", a1, a2, b1, b2, got, tc.want)
			}
			// Overlap is symmetric in its two ranges.
			if got := Overlaps(b1, b2, a1, a2); got != tc.want {
				t.Fatalf("Overlaps is not symmetric for %s", tc.name)
			}
		})
	}
}

func TestWindowIsValid(t *testing.T) {
	t.Parallel()

	if (Window{}).IsValid() {
		t.Fatal("zero window should not be valid")
	}
	if (Window{Start: at(t, 10, 0), End: at(t, 10, 0)}).IsValid() {
		t.Fatal("empty window should not be valid")
	}
	if !(Window{Start: at(t, 10, 0), End: at(t, 11, 0)}).IsValid() {
		t.Fatal("positive window should be valid")
	}
}

func TestNewWindow(t *testing.T) {
	t.Parallel()

	w := NewWindow(at(t, 10, 0), 30)
	if !w.End.Equal(at(t, 10, 30)) {
		t.Fatalf("expected end 10:30, got %v", w.End)
	}
}

func TestWindowExcludes(t *testing.T) {
	t.Parallel()

	w := Window{Start: at(t, 10, 0), End: at(t, 10, 30)}

	if !w.Excludes(at(t, 9, 0), at(t, 10, 0)) {
		t.Fatal("range ending at window start should be excluded")
	}
	if !w.Excludes(at(t, 10, 30), at(t, 11, 0)) {
		t.Fatal("range starting at window end should be excluded")
	}
	if w.Excludes(at(t, 9, 0), at(t, 17, 0)) {
		t.Fatal("range spanning the window should not be excluded")
	}
	if w.Excludes(at(t, 10, 15), at(t, 10, 45)) {
		t.Fatal("partially overlapping range should not be excluded")
	}
}
