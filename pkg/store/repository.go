// Package store persists the task pool, the daily plan, and the user
// preferences, and exposes them to the scheduler behind a Repository.
package store

import (
	"context"
	"errors"

	"wakeday/pkg/plan"
	"wakeday/pkg/prefs"
	"wakeday/pkg/task"
)

// ErrNoPreferences is returned when no preference record has been created
// yet. The scheduler treats it as a fatal configuration error.
var ErrNoPreferences = errors.New("store: no preferences recorded")

// TaskFilter narrows a ListTasks call.
type TaskFilter struct {
	// AssignedOn restricts to tasks committed to the given day.
	AssignedOn *task.Date
	// IncludeCompleted keeps completed tasks in the result.
	IncludeCompleted bool
}

// Match reports whether t passes the filter.
func (f TaskFilter) Match(t *task.Task) bool {
	if !f.IncludeCompleted && t.Completed {
		return false
	}
	if f.AssignedOn != nil && !t.AssignedOn(*f.AssignedOn) {
		return false
	}
	return true
}

// Repository owns all persisted planner state. The scheduling engine reads a
// snapshot through it and writes back blocks and task assignments; it never
// holds a handle to the underlying storage.
type Repository interface {
	ListTasks(ctx context.Context, f TaskFilter) []*task.Task
	GetTask(ctx context.Context, id string) (*task.Task, error)
	SaveTask(t *task.Task) error

	// Reassign commits the task to the given day, clearing any stale
	// assignment first; a nil date clears the assignment.
	Reassign(ctx context.Context, id string, on *task.Date) error

	ListBlocks(ctx context.Context, on task.Date, draft bool) []*plan.Block
	InsertBlocks(blocks []*plan.Block) error

	// DeleteBlocks removes every block on the given day the predicate
	// selects.
	DeleteBlocks(ctx context.Context, on task.Date, selected func(*plan.Block) bool) error

	Preferences(ctx context.Context) (*prefs.Preferences, error)
	SavePreferences(p *prefs.Preferences) error

	Watch(ctx context.Context) (<-chan Event, error)
}
