package task

import (
	"time"

	"github.com/google/uuid"
)

// Task is one unit of work in the pool the scheduler draws from.
type Task struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Domain     Domain     `json:"domain"`
	Energy     Energy     `json:"energy"`
	Priority   Priority   `json:"priority"`
	Recurrence Recurrence `json:"recurrence"`
	Type       Type       `json:"type"`

	// EstimateMins is the expected duration of a single session.
	EstimateMins int `json:"estimateMins"`

	// FixedAt is the exact start for fixed tasks.
	FixedAt *time.Time `json:"fixedAt,omitempty"`

	// EligibleStart and MustFinishBy bound flexible placement to a
	// time-of-day window when set.
	EligibleStart *Clock `json:"eligibleStart,omitempty"`
	MustFinishBy  *Clock `json:"mustFinishBy,omitempty"`

	Due          *Date `json:"due,omitempty"`
	StartDate    *Date `json:"startDate,omitempty"`
	SnoozedUntil *Date `json:"snoozedUntil,omitempty"`

	// Weekday applies to weekly recurrence; CustomDays to custom-days.
	Weekday    time.Weekday   `json:"weekday"`
	CustomDays []time.Weekday `json:"customDays,omitempty"`

	// Dread counts how often the task has been skipped; it penalizes the
	// recurring-task score so avoided work eventually surfaces anyway.
	Dread int `json:"dread"`

	IsProject          bool `json:"isProject"`
	TotalEstimateMins  int  `json:"totalEstimateMins"`
	RemainingMins      int  `json:"remainingMins"`
	PreferredSliceSize int  `json:"preferredSliceSize"`

	// AssignedDate is the day this task is committed to, if any. A task has
	// at most one assignment at a time.
	AssignedDate *Date `json:"assignedDate,omitempty"`

	Completed bool      `json:"completed"`
	Created   time.Time `json:"created"`
}

// New returns a task with a fresh identity and the given shape.
func New(title string, domain Domain, typ Type, estimateMins int) *Task {
	return &Task{
		ID:           uuid.NewString(),
		Title:        title,
		Domain:       domain,
		Energy:       EnergyMedium,
		Priority:     PriorityMedium,
		Recurrence:   RecurOnce,
		Type:         typ,
		EstimateMins: estimateMins,
		Created:      time.Now(),
	}
}

// AssignedOn reports whether the task is committed to the given day.
func (t *Task) AssignedOn(on Date) bool {
	return t.AssignedDate != nil && t.AssignedDate.SameDay(on.Time)
}

// Progress is the completed fraction of a project, in [0, 1].
func (t *Task) Progress() float64 {
	if !t.IsProject || t.TotalEstimateMins <= 0 {
		return 0
	}
	done := t.TotalEstimateMins - t.RemainingMins
	if done <= 0 {
		return 0
	}
	if done >= t.TotalEstimateMins {
		return 1
	}
	return float64(done) / float64(t.TotalEstimateMins)
}

// HasCustomDay reports whether w is in the task's custom-days set.
func (t *Task) HasCustomDay(w time.Weekday) bool {
	for _, d := range t.CustomDays {
		if d == w {
			return true
		}
	}
	return false
}
