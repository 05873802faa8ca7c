// Package task defines the planner's unit of work and its categorical types.
package task

import (
	"fmt"
	"strings"
)

// Domain is the categorical bucket a task belongs to. Each domain is budgeted
// independently when a day is packed.
type Domain string

const (
	DomainWork       Domain = "work"
	DomainSideHustle Domain = "side-hustle"
	DomainChore      Domain = "chore"
	DomainErrand     Domain = "errand"
	DomainPersonal   Domain = "personal"
	DomainCreative   Domain = "creative"
	DomainUnplanned  Domain = "unplanned"
)

// AllDomains returns the list of supported domains.
func AllDomains() []Domain {
	return []Domain{
		DomainWork,
		DomainSideHustle,
		DomainChore,
		DomainErrand,
		DomainPersonal,
		DomainCreative,
		DomainUnplanned,
	}
}

// ParseDomain converts a string to a Domain or returns an error for unknown values.
func ParseDomain(raw string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(raw)))
	if d == "" {
		return DomainUnplanned, nil
	}
	for _, candidate := range AllDomains() {
		if candidate == d {
			return candidate, nil
		}
	}
	return DomainUnplanned, fmt.Errorf("task: unknown domain %q", raw)
}

// Energy is an exertion level, used both as a task requirement and as the
// user's current state.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// AllEnergies returns energies in ascending order of exertion.
func AllEnergies() []Energy {
	return []Energy{EnergyLow, EnergyMedium, EnergyHigh}
}

// ParseEnergy converts a string to an Energy or returns an error for unknown values.
func ParseEnergy(raw string) (Energy, error) {
	e := Energy(strings.ToLower(strings.TrimSpace(raw)))
	if e == "" {
		return EnergyMedium, nil
	}
	for _, candidate := range AllEnergies() {
		if candidate == e {
			return candidate, nil
		}
	}
	return EnergyMedium, fmt.Errorf("task: unknown energy %q", raw)
}

// rank maps an energy to its position in the Low < Medium < High order.
func (e Energy) rank() int {
	switch e {
	case EnergyHigh:
		return 2
	case EnergyMedium:
		return 1
	default:
		return 0
	}
}

// Satisfiable reports whether a task requiring e can run at the given current
// energy. Low runs at any level, Medium needs Medium or High, High needs High.
func (e Energy) Satisfiable(current Energy) bool {
	return e.rank() <= current.rank()
}

// MoreIntense reports whether e requires strictly more exertion than other.
func (e Energy) MoreIntense(other Energy) bool {
	return e.rank() > other.rank()
}

// Priority is the user-declared importance of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority converts a string to a Priority or returns an error for unknown values.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PriorityMedium, nil
	}
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	}
	return PriorityMedium, fmt.Errorf("task: unknown priority %q", raw)
}

// Recurrence describes how often a task repeats.
type Recurrence string

const (
	RecurOnce       Recurrence = "once"
	RecurDaily      Recurrence = "daily"
	RecurWeekly     Recurrence = "weekly"
	RecurMonthly    Recurrence = "monthly"
	RecurCustomDays Recurrence = "custom-days"
)

// ParseRecurrence converts a string to a Recurrence or returns an error for
// unknown values.
func ParseRecurrence(raw string) (Recurrence, error) {
	r := Recurrence(strings.ToLower(strings.TrimSpace(raw)))
	if r == "" {
		return RecurOnce, nil
	}
	switch r {
	case RecurOnce, RecurDaily, RecurWeekly, RecurMonthly, RecurCustomDays:
		return r, nil
	}
	return RecurOnce, fmt.Errorf("task: unknown recurrence %q", raw)
}

// Type describes how a task is placed on the timetable.
type Type string

const (
	// TypeFixed runs at an exact datetime.
	TypeFixed Type = "fixed"
	// TypeFlexible is placed anywhere, optionally inside an eligible-start /
	// must-finish time-of-day window.
	TypeFlexible Type = "flexible"
	// TypeRecurring repeats per its recurrence rule with flexible placement.
	TypeRecurring Type = "recurring"
)

// ParseType converts a string to a Type or returns an error for unknown values.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return TypeFlexible, nil
	}
	switch t {
	case TypeFixed, TypeFlexible, TypeRecurring:
		return t, nil
	}
	return TypeFlexible, fmt.Errorf("task: unknown task type %q", raw)
}
