// Package schedule derives a fully-packed wake-day timetable from the task
// pool and re-derives it mid-day without losing committed work.
package schedule

import (
	"wakeday/pkg/task"
)

// IsEligible reports whether the task may occupy the given calendar day.
// Start dates and snoozes are checked first, then the recurrence rule.
// Evaluating the same (task, day) twice yields the same result absent task
// mutation.
func IsEligible(t *task.Task, on task.Date) bool {
	if t.StartDate != nil && on.Before(t.StartDate.Time) {
		return false
	}
	if t.SnoozedUntil != nil && on.Before(t.SnoozedUntil.Time) {
		return false
	}

	switch t.Recurrence {
	case task.RecurOnce:
		if t.Due == nil {
			return true
		}
		return t.Due.SameDay(on.Time)
	case task.RecurDaily:
		return true
	case task.RecurWeekly:
		return on.Weekday() == t.Weekday
	case task.RecurMonthly:
		// Either anchor's day-of-month selects the day; no anchor, no day.
		if t.StartDate != nil && on.Day() == t.StartDate.Day() {
			return true
		}
		if t.Due != nil && on.Day() == t.Due.Day() {
			return true
		}
		return false
	case task.RecurCustomDays:
		return t.HasCustomDay(on.Weekday())
	default:
		// Unrecognized recurrence values fall through to eligible so a bad
		// record surfaces on the timetable instead of vanishing.
		return true
	}
}
