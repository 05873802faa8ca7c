package schedule

import (
	"wakeday/pkg/task"
)

// Slice is one session of a multi-session project.
type Slice struct {
	// Minutes is the duration of today's session.
	Minutes int
	// Number is the 1-based session index shown to the user. It is derived
	// from completed minutes over the preferred slice size, independently of
	// the remainder rounding below, so the displayed "slice N" can disagree
	// with the rounded session lengths near the tail of a project.
	Number int
}

// NextSlice computes today's session for a project task from its remaining
// minutes. The sequence takes full preferred-size slices greedily; a
// remainder under 15 minutes is merged into the last full slice, any other
// remainder becomes its own session rounded up to 15, 30, or 45 minutes, or
// kept as-is beyond 45. Returns ok=false when nothing remains.
func NextSlice(t *task.Task) (Slice, bool) {
	if !t.IsProject || t.RemainingMins <= 0 {
		return Slice{}, false
	}

	preferred := t.PreferredSliceSize
	if preferred <= 0 {
		// No preferred size recorded; take the whole remainder in one go.
		return Slice{Minutes: roundSlice(t.RemainingMins), Number: 1}, true
	}

	full := t.RemainingMins / preferred
	rem := t.RemainingMins % preferred

	var minutes int
	switch {
	case full == 0:
		minutes = roundSlice(rem)
	case full == 1 && rem > 0 && rem < 15:
		// The tail remainder is too small to stand alone; fold it into this
		// final full slice.
		minutes = preferred + rem
	default:
		minutes = preferred
	}

	completed := t.TotalEstimateMins - t.RemainingMins
	if completed < 0 {
		completed = 0
	}
	number := completed/preferred + 1

	return Slice{Minutes: minutes, Number: number}, true
}

// roundSlice rounds a remainder up to the 15/30/45 ladder; anything larger
// stands as its own size.
func roundSlice(mins int) int {
	switch {
	case mins <= 15:
		return 15
	case mins <= 30:
		return 30
	case mins <= 45:
		return 45
	default:
		return mins
	}
}
