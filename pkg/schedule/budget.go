package schedule

import (
	"time"

	"wakeday/pkg/prefs"
	"wakeday/pkg/task"
)

// Budget tracks the remaining per-domain minutes for one target day. Work and
// side-hustle run on the configured daily hour caps; errands get time only on
// in-town days; everything else is unbounded.
type Budget struct {
	used    map[task.Domain]int
	max     map[task.Domain]int
	bounded map[task.Domain]bool
}

// NewBudget derives the day's domain caps from preferences.
func NewBudget(p *prefs.Preferences, day time.Time) *Budget {
	b := &Budget{
		used:    make(map[task.Domain]int),
		max:     make(map[task.Domain]int),
		bounded: make(map[task.Domain]bool),
	}

	if p.WorkHoursPerDay > 0 {
		b.cap(task.DomainWork, p.WorkHoursPerDay*60)
	}
	if p.SideHustleHoursPerDay > 0 {
		b.cap(task.DomainSideHustle, p.SideHustleHoursPerDay*60)
	}
	if !p.InTown(day.Weekday()) {
		b.cap(task.DomainErrand, 0)
	}

	return b
}

func (b *Budget) cap(d task.Domain, mins int) {
	b.bounded[d] = true
	b.max[d] = mins
}

// Fits reports whether spending mins in the domain stays within its cap.
// A task already committed to the target day is exempt: rejecting it would
// break the no-task-lost reflow guarantee, so the caller passes mustSchedule.
func (b *Budget) Fits(d task.Domain, mins int, mustSchedule bool) bool {
	if mustSchedule || !b.bounded[d] {
		return true
	}
	return b.used[d]+mins <= b.max[d]
}

// Spend records minutes against the domain.
func (b *Budget) Spend(d task.Domain, mins int) {
	b.used[d] += mins
}

// Remaining returns the unspent minutes for a bounded domain, or ok=false for
// an unbounded one.
func (b *Budget) Remaining(d task.Domain) (int, bool) {
	if !b.bounded[d] {
		return 0, false
	}
	left := b.max[d] - b.used[d]
	if left < 0 {
		left = 0
	}
	return left, true
}
