package schedule

import (
	"testing"

	"wakeday/pkg/task"
)

func projectTask(total, remaining, preferred int) *task.Task {
	t := task.New("project", task.DomainWork, task.TypeFlexible, preferred)
	t.IsProject = true
	t.TotalEstimateMins = total
	t.RemainingMins = remaining
	t.PreferredSliceSize = preferred
	return t
}

func TestNextSliceFreshProject(t *testing.T) {
	s, ok := NextSlice(projectTask(480, 480, 120))
	if !ok {
		t.Fatalf("expected a slice")
	}
	if s.Minutes != 120 {
		t.Fatalf("expected 120-minute slice, got %d", s.Minutes)
	}
	if s.Number != 1 {
		t.Fatalf("expected slice index 1, got %d", s.Number)
	}
}

func TestNextSliceIndexAdvancesWithProgress(t *testing.T) {
	s, ok := NextSlice(projectTask(480, 240, 120))
	if !ok {
		t.Fatalf("expected a slice")
	}
	if s.Number != 3 {
		t.Fatalf("expected slice index 3 after 240 completed minutes, got %d", s.Number)
	}
}

func TestNextSliceMergesSmallTail(t *testing.T) {
	// One full slice remains plus a 10-minute tail: the tail rides along.
	s, ok := NextSlice(projectTask(250, 130, 120))
	if !ok {
		t.Fatalf("expected a slice")
	}
	if s.Minutes != 130 {
		t.Fatalf("expected merged 130-minute slice, got %d", s.Minutes)
	}
}

func TestNextSliceTailNotMergedWhileFullSlicesRemain(t *testing.T) {
	s, ok := NextSlice(projectTask(250, 250, 120))
	if !ok {
		t.Fatalf("expected a slice")
	}
	if s.Minutes != 120 {
		t.Fatalf("expected a plain preferred slice, got %d", s.Minutes)
	}
}

func TestNextSliceRoundsRemainder(t *testing.T) {
	cases := []struct {
		remaining int
		want      int
	}{
		{10, 15},
		{20, 30},
		{31, 45},
		{50, 50},
	}
	for _, tc := range cases {
		s, ok := NextSlice(projectTask(480, tc.remaining, 120))
		if !ok {
			t.Fatalf("remaining %d: expected a slice", tc.remaining)
		}
		if s.Minutes != tc.want {
			t.Fatalf("remaining %d: expected %d-minute slice, got %d", tc.remaining, tc.want, s.Minutes)
		}
	}
}

func TestNextSliceExhausted(t *testing.T) {
	if _, ok := NextSlice(projectTask(480, 0, 120)); ok {
		t.Fatalf("expected no slice when nothing remains")
	}
}

func TestNextSliceIndexIgnoresRemainderRounding(t *testing.T) {
	// 450 of 480 done at preferred 120: the rounded session is 30 minutes but
	// the index still counts whole preferred slices of completed work.
	s, ok := NextSlice(projectTask(480, 30, 120))
	if !ok {
		t.Fatalf("expected a slice")
	}
	if s.Minutes != 30 {
		t.Fatalf("expected 30-minute tail session, got %d", s.Minutes)
	}
	if s.Number != 4 {
		t.Fatalf("expected index 4 from completed-minute bookkeeping, got %d", s.Number)
	}
}
