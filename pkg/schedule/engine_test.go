package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wakeday/pkg/plan"
	"wakeday/pkg/prefs"
	"wakeday/pkg/store"
	"wakeday/pkg/task"
)

// memRepo is an in-memory store.Repository for engine tests.
type memRepo struct {
	mu      sync.Mutex
	counter int
	tasks   map[string]*task.Task
	blocks  map[string]*plan.Block
	prefs   *prefs.Preferences
}

func newMemRepo(p *prefs.Preferences, tasks ...*task.Task) *memRepo {
	m := &memRepo{
		tasks:  make(map[string]*task.Task),
		blocks: make(map[string]*plan.Block),
		prefs:  p,
	}
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = m.newID()
		}
		m.tasks[t.ID] = cloneTask(t)
	}
	return m
}

func (m *memRepo) newID() string {
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

func (m *memRepo) ListTasks(_ context.Context, f store.TaskFilter) []*task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*task.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if f.Match(t) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

func (m *memRepo) GetTask(_ context.Context, id string) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, fmt.Errorf("memRepo: task %s not found", id)
	}
	return cloneTask(t), nil
}

func (m *memRepo) SaveTask(t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = m.newID()
	}
	m.tasks[t.ID] = cloneTask(t)
	return nil
}

func (m *memRepo) Reassign(_ context.Context, id string, on *task.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return fmt.Errorf("memRepo: task %s not found", id)
	}
	t.AssignedDate = on
	return nil
}

func (m *memRepo) ListBlocks(_ context.Context, on task.Date, draft bool) []*plan.Block {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*plan.Block, 0)
	for _, b := range m.blocks {
		if b.PlanDate.SameDay(on.Time) && b.IsDraft == draft {
			out = append(out, cloneBlock(b))
		}
	}
	return out
}

func (m *memRepo) InsertBlocks(blocks []*plan.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range blocks {
		if b.ID == "" {
			b.ID = m.newID()
		}
		m.blocks[b.ID] = cloneBlock(b)
	}
	return nil
}

func (m *memRepo) DeleteBlocks(_ context.Context, on task.Date, selected func(*plan.Block) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, b := range m.blocks {
		if b.PlanDate.SameDay(on.Time) && selected(b) {
			delete(m.blocks, id)
		}
	}
	return nil
}

func (m *memRepo) Preferences(_ context.Context) (*prefs.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prefs == nil {
		return nil, store.ErrNoPreferences
	}
	cp := *m.prefs
	return &cp, nil
}

func (m *memRepo) SavePreferences(p *prefs.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.prefs = &cp
	return nil
}

func (m *memRepo) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (m *memRepo) assignedOn(day task.Date) map[string]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]bool)
	for id, t := range m.tasks {
		if t.AssignedOn(day) {
			out[id] = true
		}
	}
	return out
}

func cloneTask(t *task.Task) *task.Task {
	cp := *t
	if t.CustomDays != nil {
		cp.CustomDays = append([]time.Weekday{}, t.CustomDays...)
	}
	return &cp
}

func cloneBlock(b *plan.Block) *plan.Block {
	cp := *b
	return &cp
}

// testPrefs returns an 08:00–22:00 day with unbounded domains and high energy.
func testPrefs() *prefs.Preferences {
	wake, _ := task.ParseClock("08:00")
	sleep, _ := task.ParseClock("22:00")
	return &prefs.Preferences{
		DefaultWake:   wake,
		DefaultSleep:  sleep,
		CurrentEnergy: task.EnergyHigh,
		FreeFill:      plan.BlockFree,
		InTownDays:    []time.Weekday{time.Saturday},
	}
}

// testDay is a Tuesday.
func testDay() time.Time {
	return time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local)
}

func at(hour, min int) time.Time {
	d := testDay()
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.Local)
}

func newEngine(repo store.Repository, now time.Time) *Engine {
	e := New(repo)
	e.Now = func() time.Time { return now }
	return e
}

func flexibleTask(title string, mins int) *task.Task {
	t := task.New(title, task.DomainPersonal, task.TypeFlexible, mins)
	t.Energy = task.EnergyLow
	return t
}
