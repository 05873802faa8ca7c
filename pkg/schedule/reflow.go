package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wakeday/pkg/plan"
	"wakeday/pkg/task"
)

// StartDay stamps the actual wake time, clears today's committed plan, and
// builds a fresh timetable from now.
func (e *Engine) StartDay(ctx context.Context) (*Result, error) {
	p, tasks, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := e.Now()
	today := task.NewDate(now)

	wake := now
	p.ActualWake = &wake
	if err := e.Repo.SavePreferences(p); err != nil {
		return nil, fmt.Errorf("schedule: stamp wake time: %w", err)
	}

	if err := e.Repo.DeleteBlocks(ctx, today, func(b *plan.Block) bool {
		return !b.IsDraft
	}); err != nil {
		return nil, fmt.Errorf("schedule: clear day: %w", err)
	}

	out := pack(buildInput{prefs: p, tasks: tasks, day: today, now: now})
	if err := e.commit(ctx, today, out); err != nil {
		return nil, err
	}
	return e.result(ctx, today, out, nil), nil
}

// UpdateNow re-derives the rest of today from the current instant. Completed
// and interruption blocks stay; everything else is rebuilt. The command is
// applied only if every task committed to today survives — otherwise nothing
// is written and ErrReflowIntegrity is returned, leaving all assignments as
// they were.
func (e *Engine) UpdateNow(ctx context.Context) (*Result, error) {
	p, tasks, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := e.Now()
	today := task.NewDate(now)

	kept := keepThrough(e.Repo.ListBlocks(ctx, today, false))
	out := pack(buildInput{prefs: p, tasks: tasks, kept: kept, day: today, now: now})

	if len(out.mustLost) > 0 {
		return nil, integrityErr(out.mustLost)
	}

	if err := e.Repo.DeleteBlocks(ctx, today, rebuildable); err != nil {
		return nil, fmt.Errorf("schedule: clear day: %w", err)
	}
	if err := e.commit(ctx, today, out); err != nil {
		return nil, err
	}
	return e.result(ctx, today, out, nil), nil
}

// LogInterruption records a completed interruption block starting at the
// rounded current instant and rebuilds the rest of the day from the moment it
// ends. A committed task that no longer fits in the shrunken window is
// explicitly deferred to tomorrow; a task lost while room for it remained is
// an integrity violation and aborts the command with nothing applied.
func (e *Engine) LogInterruption(ctx context.Context, minutes int, domain task.Domain, description string) (*Result, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("schedule: interruption duration must be positive, got %d", minutes)
	}
	p, tasks, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := e.Now()
	today := task.NewDate(now)

	s := roundUp5(now)
	f := s.Add(time.Duration(minutes) * time.Minute)
	if description == "" {
		description = "Interruption"
	}
	interruption := plan.New(plan.BlockInterruption, description, s, f)
	interruption.Domain = domain
	interruption.Completed = true

	kept := append(keepThrough(e.Repo.ListBlocks(ctx, today, false)), interruption)
	out := pack(buildInput{prefs: p, tasks: tasks, kept: kept, day: today, now: now, startOverride: &f})

	deferred, stillLost := e.triage(out)
	if len(stillLost) > 0 {
		return nil, integrityErr(stillLost)
	}

	if err := e.Repo.DeleteBlocks(ctx, today, rebuildable); err != nil {
		return nil, fmt.Errorf("schedule: clear day: %w", err)
	}
	if err := e.Repo.InsertBlocks([]*plan.Block{interruption}); err != nil {
		return nil, fmt.Errorf("schedule: record interruption: %w", err)
	}
	tomorrow := today.Next()
	for _, t := range deferred {
		if err := e.Repo.Reassign(ctx, t.ID, &tomorrow); err != nil {
			return nil, fmt.Errorf("schedule: defer %s: %w", t.Title, err)
		}
	}
	if err := e.commit(ctx, today, out); err != nil {
		return nil, err
	}
	return e.result(ctx, today, out, deferred), nil
}

// PreviewDraft packs a future day without committing anything: the produced
// blocks are drafts and task assignments are untouched.
func (e *Engine) PreviewDraft(ctx context.Context, day task.Date) (*Result, error) {
	p, tasks, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := e.Now()

	out := pack(buildInput{prefs: p, tasks: tasks, day: day, now: now, draft: true})

	if err := e.Repo.DeleteBlocks(ctx, day, func(b *plan.Block) bool {
		return b.IsDraft
	}); err != nil {
		return nil, fmt.Errorf("schedule: clear draft: %w", err)
	}
	if err := e.Repo.InsertBlocks(out.newBlocks); err != nil {
		return nil, fmt.Errorf("schedule: save draft: %w", err)
	}

	res := &Result{Day: day, Message: out.counts.message()}
	res.Blocks = e.timetable(ctx, day, true)
	for _, t := range out.placed {
		res.Placed = append(res.Placed, t)
	}
	return res, nil
}

// triage splits the lost set of an interruption rebuild: a task the remaining
// window genuinely cannot hold is deferred; a task that would still fit is a
// packing bug and stays lost.
func (e *Engine) triage(out *buildOutcome) (deferred, stillLost []*task.Task) {
	occupied := append([]*plan.Block{}, out.newBlocks...)
	freeLeft := 0
	if out.start.Before(out.sleep) {
		freeLeft = int(out.sleep.Sub(out.start) / time.Minute)
		for _, b := range occupied {
			if b.Type != plan.BlockFree && b.Type != plan.BlockRest {
				freeLeft -= b.Minutes()
			}
		}
	}

	for _, t := range out.mustLost {
		if freeLeft <= 5 {
			deferred = append(deferred, t)
			continue
		}
		mins, _ := sessionFor(t)
		solid := make([]*plan.Block, 0, len(occupied))
		for _, b := range occupied {
			if b.Type != plan.BlockFree && b.Type != plan.BlockRest {
				solid = append(solid, b)
			}
		}
		if _, _, ok := FindSlot(time.Duration(mins)*time.Minute, out.start, out.sleep, solid, windowFor(t, out.start)); ok {
			// Room existed and the pack still dropped it: that is a bug, not
			// a deferral.
			stillLost = append(stillLost, t)
			continue
		}
		deferred = append(deferred, t)
	}
	return deferred, stillLost
}

// rebuildable selects the blocks a reflow may discard: anything not yet
// completed, not an interruption, and not a draft.
func rebuildable(b *plan.Block) bool {
	return !b.Completed && b.Type != plan.BlockInterruption && !b.IsDraft
}

// keepThrough filters a day's committed blocks down to the set a rebuild
// packs around.
func keepThrough(blocks []*plan.Block) []*plan.Block {
	kept := make([]*plan.Block, 0, len(blocks))
	for _, b := range blocks {
		if !rebuildable(b) && !b.IsDraft {
			kept = append(kept, b)
		}
	}
	return kept
}

// commit writes a non-draft outcome: new blocks inserted, every newly placed
// task committed to the day.
func (e *Engine) commit(ctx context.Context, day task.Date, out *buildOutcome) error {
	if err := e.Repo.InsertBlocks(out.newBlocks); err != nil {
		return fmt.Errorf("schedule: save blocks: %w", err)
	}
	for id, t := range out.placed {
		if t.AssignedOn(day) {
			continue
		}
		d := day
		if err := e.Repo.Reassign(ctx, id, &d); err != nil {
			return fmt.Errorf("schedule: assign %s: %w", t.Title, err)
		}
	}
	return nil
}

func (e *Engine) result(ctx context.Context, day task.Date, out *buildOutcome, deferred []*task.Task) *Result {
	res := &Result{Day: day, Deferred: deferred, Message: out.counts.message()}
	res.Blocks = e.timetable(ctx, day, false)
	for _, t := range out.placed {
		res.Placed = append(res.Placed, t)
	}
	if len(deferred) > 0 {
		names := make([]string, len(deferred))
		for i, t := range deferred {
			names[i] = t.Title
		}
		msg := fmt.Sprintf("deferred to tomorrow: %s", strings.Join(names, ", "))
		if res.Message != "" {
			res.Message += "; " + msg
		} else {
			res.Message = msg
		}
	}
	return res
}

func integrityErr(lost []*task.Task) error {
	names := make([]string, len(lost))
	for i, t := range lost {
		names[i] = t.Title
	}
	return fmt.Errorf("%w: %s", ErrReflowIntegrity, strings.Join(names, ", "))
}
