package schedule

import (
	"time"

	"wakeday/pkg/task"
)

// Score produces the ordering key for recurring tasks; higher is more urgent.
// Additive terms: a deadline-urgency tier, a priority tier, a progress bonus
// for near-complete projects, minus a dread penalty for repeatedly skipped
// work.
func Score(t *task.Task, ref time.Time) float64 {
	score := urgency(t, ref)

	switch t.Priority {
	case task.PriorityHigh:
		score += 30
	case task.PriorityMedium:
		score += 20
	case task.PriorityLow:
		score += 10
	}

	score += t.Progress() * 10
	score -= float64(t.Dread) * 2

	return score
}

// urgency tiers the deadline by days until due.
func urgency(t *task.Task, ref time.Time) float64 {
	if t.Due == nil {
		return 0
	}
	until := int(t.Due.Sub(task.NewDate(ref).Time).Hours() / 24)
	switch {
	case until < 0:
		return 100
	case until < 1:
		return 80
	case until < 3:
		return 60
	case until < 7:
		return 40
	default:
		return 20
	}
}

// LessFlexible is the exact comparator for flexible tasks. Additive scores
// can order mixed criteria intransitively, so flexible placement compares the
// criteria in strict priority order instead: earlier due date first (a due
// date always outranks none), then higher energy requirement, then longer
// estimate.
func LessFlexible(a, b *task.Task) bool {
	switch {
	case a.Due != nil && b.Due == nil:
		return true
	case a.Due == nil && b.Due != nil:
		return false
	case a.Due != nil && b.Due != nil && !a.Due.SameDay(b.Due.Time):
		return a.Due.Before(b.Due.Time)
	}

	if a.Energy != b.Energy {
		return a.Energy.MoreIntense(b.Energy)
	}

	return a.EstimateMins > b.EstimateMins
}
