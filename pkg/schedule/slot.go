package schedule

import (
	"sort"
	"time"

	"wakeday/pkg/plan"
)

// Window optionally bounds a slot search to a time-of-day range.
type Window struct {
	EligibleStart *time.Time
	MustFinishBy  *time.Time
}

// FindSlot locates the earliest gap between occupied blocks that holds the
// requested duration inside [earliest, dayEnd). First-fit: candidate gaps are
// scanned chronologically and the first one that satisfies every constraint
// wins. Within a gap the candidate start is the latest of the gap start, the
// earliest bound, and the window's eligible start. Returns ok=false when no
// gap fits.
func FindSlot(duration time.Duration, earliest, dayEnd time.Time, occupied []*plan.Block, w Window) (time.Time, time.Time, bool) {
	if duration <= 0 || !earliest.Before(dayEnd) {
		return time.Time{}, time.Time{}, false
	}

	blocks := make([]*plan.Block, len(occupied))
	copy(blocks, occupied)
	sort.Slice(blocks, plan.ByStart(blocks))

	cursor := earliest
	for _, b := range blocks {
		if !b.End.After(cursor) {
			continue
		}
		if b.Start.After(cursor) {
			if start, end, ok := tryGap(cursor, b.Start, duration, dayEnd, w); ok {
				return start, end, true
			}
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}

	return tryGap(cursor, dayEnd, duration, dayEnd, w)
}

// tryGap fits the duration into [gapStart, gapEnd), honoring the day end and
// the optional window.
func tryGap(gapStart, gapEnd time.Time, duration time.Duration, dayEnd time.Time, w Window) (time.Time, time.Time, bool) {
	start := gapStart
	if w.EligibleStart != nil && w.EligibleStart.After(start) {
		start = *w.EligibleStart
	}

	end := start.Add(duration)
	if end.After(gapEnd) || end.After(dayEnd) {
		return time.Time{}, time.Time{}, false
	}
	if w.MustFinishBy != nil && end.After(*w.MustFinishBy) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
