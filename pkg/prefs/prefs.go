// Package prefs holds the singleton user preference record the scheduler
// reads its day bounds, budgets, and energy state from.
package prefs

import (
	"time"

	"wakeday/pkg/plan"
	"wakeday/pkg/task"
)

// Preferences is created once at first run and mutated by settings and by the
// start-day command, which stamps the actual wake time.
type Preferences struct {
	DefaultWake  task.Clock `json:"defaultWake"`
	DefaultSleep task.Clock `json:"defaultSleep"`

	// ActualWake is the instant the user started today; only honored when it
	// falls on the day being built.
	ActualWake *time.Time `json:"actualWake,omitempty"`

	// Daily and weekly hour caps for the budgeted domains. Zero disables a
	// daily cap entirely rather than capping the domain at zero; there is no
	// way to configure a zero-minute day. Default() sets both daily caps and
	// relies on this sentinel only for records written before the caps
	// existed.
	WorkHoursPerDay        int `json:"workHoursPerDay"`
	WorkHoursPerWeek       int `json:"workHoursPerWeek"`
	SideHustleHoursPerDay  int `json:"sideHustleHoursPerDay"`
	SideHustleHoursPerWeek int `json:"sideHustleHoursPerWeek"`

	CurrentEnergy task.Energy `json:"currentEnergy"`

	// FreeFill selects what unclaimed time becomes: free or rest blocks.
	FreeFill plan.BlockType `json:"freeFill"`

	// InTownDays gates errand-domain eligibility: errands get time only on
	// these weekdays.
	InTownDays []time.Weekday `json:"inTownDays,omitempty"`

	// SnoozeDays is the default push-out applied when a task is snoozed.
	SnoozeDays int `json:"snoozeDays"`

	Created time.Time `json:"created"`
}

// Default returns the first-run preference record.
func Default() *Preferences {
	wake, _ := task.ParseClock("07:00")
	sleep, _ := task.ParseClock("22:00")
	return &Preferences{
		DefaultWake:            wake,
		DefaultSleep:           sleep,
		WorkHoursPerDay:        8,
		WorkHoursPerWeek:       40,
		SideHustleHoursPerDay:  2,
		SideHustleHoursPerWeek: 10,
		CurrentEnergy:          task.EnergyMedium,
		FreeFill:               plan.BlockFree,
		InTownDays:             []time.Weekday{time.Saturday},
		SnoozeDays:             1,
		Created:                time.Now(),
	}
}

// InTown reports whether the given weekday is an in-town day.
func (p *Preferences) InTown(w time.Weekday) bool {
	for _, d := range p.InTownDays {
		if d == w {
			return true
		}
	}
	return false
}

// WakeOn resolves the wake instant for the given day: the stamped actual wake
// time when it falls on that day, otherwise the configured default.
func (p *Preferences) WakeOn(day time.Time) time.Time {
	if p.ActualWake != nil && task.NewDate(*p.ActualWake).SameDay(day) {
		return *p.ActualWake
	}
	return p.DefaultWake.On(day)
}

// SleepOn resolves the sleep instant for the given day.
func (p *Preferences) SleepOn(day time.Time) time.Time {
	return p.DefaultSleep.On(day)
}
