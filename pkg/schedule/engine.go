package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wakeday/pkg/plan"
	"wakeday/pkg/store"
	"wakeday/pkg/task"
)

// ErrReflowIntegrity is returned when a reflow would lose a task that was
// committed to the day. The command is aborted with no state applied rather
// than accepting silent data loss.
var ErrReflowIntegrity = errors.New("schedule: reflow would lose committed tasks")

// Engine derives wake-day timetables. It holds no state of its own: every
// command reads a snapshot through the repository, packs it in memory, and
// writes the outcome back only after its post-conditions hold.
type Engine struct {
	Repo store.Repository

	// Now is the clock; replaceable in tests.
	Now func() time.Time
}

// New returns an engine over the given repository.
func New(repo store.Repository) *Engine {
	return &Engine{Repo: repo, Now: time.Now}
}

// Result is the outcome of one build or reflow.
type Result struct {
	Day task.Date

	// Blocks is the full ordered timetable for the day, kept blocks included.
	Blocks []*plan.Block

	// Placed are the tasks newly scheduled by this build.
	Placed []*task.Task

	// Deferred are tasks pushed to the next day because the remaining window
	// could not hold them.
	Deferred []*task.Task

	// Message aggregates why tasks were left off the timetable.
	Message string
}

// unplacedCounts aggregates not-placed reasons across one build.
type unplacedCounts struct {
	energy   int
	budget   int
	noSlot   int
	offDate  int
	noWindow bool
}

func (c unplacedCounts) message() string {
	parts := make([]string, 0, 4)
	if c.noWindow {
		parts = append(parts, "no waking time left in the day")
	}
	if c.energy > 0 {
		parts = append(parts, fmt.Sprintf("%d %s need higher energy", c.energy, plural(c.energy, "task", "tasks")))
	}
	if c.budget > 0 {
		parts = append(parts, fmt.Sprintf("%d %s blocked by domain caps", c.budget, plural(c.budget, "task", "tasks")))
	}
	if c.noSlot > 0 {
		parts = append(parts, fmt.Sprintf("%d %s had no open slot", c.noSlot, plural(c.noSlot, "task", "tasks")))
	}
	if c.offDate > 0 {
		parts = append(parts, fmt.Sprintf("%d fixed %s dated outside this day", c.offDate, plural(c.offDate, "task", "tasks")))
	}
	return strings.Join(parts, "; ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// roundUp5 rounds an instant up to the next 5-minute boundary; instants
// already on a boundary are unchanged.
func roundUp5(t time.Time) time.Time {
	r := t.Truncate(5 * time.Minute)
	if r.Equal(t) {
		return t
	}
	return r.Add(5 * time.Minute)
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
