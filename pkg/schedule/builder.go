package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"wakeday/pkg/plan"
	"wakeday/pkg/prefs"
	"wakeday/pkg/store"
	"wakeday/pkg/task"
)

// buildInput is the in-memory snapshot one pack run works on. The pack never
// touches the repository; the caller commits the outcome afterwards.
type buildInput struct {
	prefs *prefs.Preferences
	tasks []*task.Task
	// kept are blocks that stay committed through a rebuild (completed work,
	// interruptions) and must be packed around.
	kept  []*plan.Block
	day   task.Date
	now   time.Time
	draft bool
	// startOverride forces the packing start, e.g. the instant right after a
	// logged interruption.
	startOverride *time.Time
}

// buildOutcome is a pure packing result.
type buildOutcome struct {
	newBlocks []*plan.Block
	// placed maps task ID to the task for everything newly scheduled.
	placed map[string]*task.Task
	// mustLost are tasks committed to the day that ended up with neither a
	// new placement nor a surviving kept block.
	mustLost []*task.Task
	start    time.Time
	sleep    time.Time
	counts   unplacedCounts
}

// resolveStart computes the packing start instant per the wake rules: today
// uses the later of the recorded actual wake time and now, rounded up to the
// next 5-minute boundary; future days use the configured default wake.
func (in *buildInput) resolveStart() time.Time {
	if in.startOverride != nil {
		return roundUp5(*in.startOverride)
	}
	wake := in.prefs.WakeOn(in.day.Time)
	if in.day.SameDay(in.now) {
		return roundUp5(later(wake, in.now))
	}
	return wake
}

// pack runs the full packing pass: fixed tasks first, then a worklist sweep
// over flexible and recurring tasks, then free fill so the day has no
// unaccounted gap.
func pack(in buildInput) *buildOutcome {
	out := &buildOutcome{placed: make(map[string]*task.Task)}

	out.start = in.resolveStart()
	out.sleep = in.prefs.SleepOn(in.day.Time)
	if !out.start.Before(out.sleep) {
		out.counts.noWindow = true
		out.mustLost = lostTasks(in.tasks, in.day, in.kept, out.placed)
		return out
	}

	keptTask := make(map[string]bool, len(in.kept))
	for _, b := range in.kept {
		if b.TaskID != "" {
			keptTask[b.TaskID] = true
		}
	}

	// Partition the pool. Tasks committed to the day must be scheduled
	// regardless of caps; other tasks must pass eligibility and the energy
	// gate to become candidates.
	must := make(map[string]bool)
	var fixed, flexible, recurring []*task.Task
	for _, t := range in.tasks {
		if t.Completed || keptTask[t.ID] {
			continue
		}
		if t.AssignedOn(in.day) {
			must[t.ID] = true
		} else {
			if t.AssignedDate != nil {
				// Committed to another day; not ours to take.
				continue
			}
			if !IsEligible(t, in.day) {
				continue
			}
			if !t.Energy.Satisfiable(in.prefs.CurrentEnergy) {
				out.counts.energy++
				continue
			}
		}
		switch t.Type {
		case task.TypeFixed:
			fixed = append(fixed, t)
		case task.TypeRecurring:
			recurring = append(recurring, t)
		default:
			flexible = append(flexible, t)
		}
	}

	sort.SliceStable(fixed, func(i, j int) bool {
		a, b := fixed[i].FixedAt, fixed[j].FixedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	sort.SliceStable(flexible, func(i, j int) bool {
		return LessFlexible(flexible[i], flexible[j])
	})
	sort.SliceStable(recurring, func(i, j int) bool {
		return Score(recurring[i], in.now) > Score(recurring[j], in.now)
	})

	budget := NewBudget(in.prefs, in.day.Time)
	occupied := make([]*plan.Block, 0, len(in.kept)+len(fixed))
	occupied = append(occupied, in.kept...)
	for _, b := range in.kept {
		if b.Type == plan.BlockTask && b.Domain != "" {
			budget.Spend(b.Domain, b.Minutes())
		}
	}

	// Fixed tasks take their exact instant or are skipped for this build; a
	// fixed task dated off the target day is dropped, never rescheduled.
	for _, t := range fixed {
		if t.FixedAt == nil || !task.NewDate(*t.FixedAt).SameDay(in.day.Time) {
			out.counts.offDate++
			continue
		}
		mins, slice := sessionFor(t)
		if mins <= 0 {
			continue
		}
		s := *t.FixedAt
		e := s.Add(time.Duration(mins) * time.Minute)
		if s.Before(out.start) || e.After(out.sleep) {
			out.counts.noSlot++
			continue
		}
		if conflicts(occupied, s, e) {
			out.counts.noSlot++
			continue
		}
		if !budget.Fits(t.Domain, mins, must[t.ID]) {
			out.counts.budget++
			continue
		}
		b := taskBlock(t, s, e, slice)
		occupied = append(occupied, b)
		out.newBlocks = append(out.newBlocks, b)
		out.placed[t.ID] = t
		budget.Spend(t.Domain, mins)
	}

	// Worklist sweep over the combined flexible and recurring lists: attempt
	// each unplaced item once per pass, stop when a full pass places nothing.
	worklist := append(append([]*task.Task{}, flexible...), recurring...)
	for {
		progress := false
		remaining := make([]*task.Task, 0, len(worklist))
		for _, t := range worklist {
			mins, slice := sessionFor(t)
			if mins <= 0 {
				continue
			}
			if !budget.Fits(t.Domain, mins, must[t.ID]) {
				remaining = append(remaining, t)
				continue
			}
			s, e, ok := FindSlot(time.Duration(mins)*time.Minute, out.start, out.sleep, occupied, windowFor(t, in.day.Time))
			if !ok {
				remaining = append(remaining, t)
				continue
			}
			b := taskBlock(t, s, e, slice)
			occupied = append(occupied, b)
			out.newBlocks = append(out.newBlocks, b)
			out.placed[t.ID] = t
			budget.Spend(t.Domain, mins)
			progress = true
		}
		worklist = remaining
		if !progress {
			break
		}
	}

	// Classify what is left over, once, after the fixed point.
	for _, t := range worklist {
		mins, _ := sessionFor(t)
		if !budget.Fits(t.Domain, mins, must[t.ID]) {
			out.counts.budget++
		} else {
			out.counts.noSlot++
		}
	}

	fillFree(in, out, occupied, budget)

	finalize(in, out)
	out.mustLost = lostTasks(in.tasks, in.day, in.kept, out.placed)
	return out
}

// fillFree covers every remaining gap with a free block so the union of the
// day's blocks has no unaccounted time. The fill range starts at the packing
// start, or at the earliest kept block when a rebuild preserved morning work.
func fillFree(in buildInput, out *buildOutcome, occupied []*plan.Block, budget *Budget) {
	fillStart := out.start
	for _, b := range in.kept {
		if b.Start.Before(fillStart) {
			fillStart = b.Start
		}
	}

	typ := in.prefs.FreeFill
	if typ != plan.BlockRest {
		typ = plan.BlockFree
	}
	label := "Free time"
	if typ == plan.BlockRest {
		label = "Rest"
	}
	// Unused work capacity upgrades the fill to buffer time.
	if left, ok := budget.Remaining(task.DomainWork); ok && left > 0 {
		label = "Buffer"
	} else if left, ok := budget.Remaining(task.DomainSideHustle); ok && left > 0 {
		label = "Buffer"
	}

	blocks := make([]*plan.Block, len(occupied))
	copy(blocks, occupied)
	sort.Slice(blocks, plan.ByStart(blocks))

	cursor := fillStart
	emit := func(s, e time.Time) {
		if !s.Before(e) {
			return
		}
		b := plan.New(typ, label, s, e)
		// A gap entirely behind the clock is already spent.
		if !in.draft && !e.After(in.now) {
			b.Completed = true
		}
		out.newBlocks = append(out.newBlocks, b)
	}
	for _, b := range blocks {
		if !b.End.After(cursor) {
			continue
		}
		if b.Start.After(cursor) {
			emit(cursor, b.Start)
		}
		cursor = b.End
	}
	emit(cursor, out.sleep)
}

// finalize stamps day, draft flag, and packing order onto the result and
// assembles the combined timetable.
func finalize(in buildInput, out *buildOutcome) {
	for _, b := range out.newBlocks {
		b.PlanDate = in.day
		b.IsDraft = in.draft
	}
	all := make([]*plan.Block, 0, len(in.kept)+len(out.newBlocks))
	all = append(all, in.kept...)
	all = append(all, out.newBlocks...)
	sort.Slice(all, plan.ByStart(all))
	for i, b := range all {
		b.Order = i
	}
}

// lostTasks returns tasks committed to the day that ended up with neither a
// placement nor a kept block.
func lostTasks(tasks []*task.Task, day task.Date, kept []*plan.Block, placed map[string]*task.Task) []*task.Task {
	keptTask := make(map[string]bool, len(kept))
	for _, b := range kept {
		if b.TaskID != "" {
			keptTask[b.TaskID] = true
		}
	}
	var lost []*task.Task
	for _, t := range tasks {
		if t.Completed || !t.AssignedOn(day) {
			continue
		}
		if placed[t.ID] == nil && !keptTask[t.ID] {
			lost = append(lost, t)
		}
	}
	return lost
}

// sessionFor resolves the minutes a task occupies today: the next project
// slice for projects, the plain estimate otherwise.
func sessionFor(t *task.Task) (int, *Slice) {
	if t.IsProject {
		s, ok := NextSlice(t)
		if !ok {
			return 0, nil
		}
		return s.Minutes, &s
	}
	return t.EstimateMins, nil
}

// windowFor anchors a flexible task's time-of-day window to the target day.
func windowFor(t *task.Task, day time.Time) Window {
	var w Window
	if t.Type != task.TypeFlexible {
		return w
	}
	if t.EligibleStart != nil {
		es := t.EligibleStart.On(day)
		w.EligibleStart = &es
	}
	if t.MustFinishBy != nil {
		mf := t.MustFinishBy.On(day)
		w.MustFinishBy = &mf
	}
	return w
}

// taskBlock wraps a placement into a plan block.
func taskBlock(t *task.Task, s, e time.Time, slice *Slice) *plan.Block {
	b := plan.New(plan.BlockTask, t.Title, s, e)
	b.TaskID = t.ID
	b.Domain = t.Domain
	if slice != nil {
		b.SliceNumber = slice.Number
		b.SliceDuration = slice.Minutes
	}
	return b
}

func conflicts(occupied []*plan.Block, s, e time.Time) bool {
	probe := &plan.Block{Start: s, End: e}
	for _, b := range occupied {
		if b.Overlaps(probe) {
			return true
		}
	}
	return false
}

// timetable reads the committed day back out of the repository in order.
func (e *Engine) timetable(ctx context.Context, day task.Date, draft bool) []*plan.Block {
	blocks := e.Repo.ListBlocks(ctx, day, draft)
	sort.Slice(blocks, plan.ByStart(blocks))
	return blocks
}

// snapshot reads preferences and the live task pool.
func (e *Engine) snapshot(ctx context.Context) (*prefs.Preferences, []*task.Task, error) {
	p, err := e.Repo.Preferences(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("schedule: %w", err)
	}
	tasks := e.Repo.ListTasks(ctx, store.TaskFilter{})
	return p, tasks, nil
}
