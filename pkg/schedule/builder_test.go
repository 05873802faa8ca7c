package schedule

import (
	"testing"
	"time"

	"wakeday/pkg/plan"
	"wakeday/pkg/task"
)

func freshInput(tasks ...*task.Task) buildInput {
	return buildInput{
		prefs: testPrefs(),
		tasks: tasks,
		day:   task.NewDate(testDay()),
		now:   at(7, 0),
	}
}

// assertPacked checks the two timetable invariants: no overlap and exact
// coverage of [start, sleep).
func assertPacked(t *testing.T, out *buildOutcome, kept []*plan.Block) {
	t.Helper()
	all := make([]*plan.Block, 0, len(kept)+len(out.newBlocks))
	all = append(all, kept...)
	all = append(all, out.newBlocks...)
	if len(all) == 0 {
		t.Fatalf("expected blocks")
	}
	byOrder := make([]*plan.Block, len(all))
	copy(byOrder, all)
	for _, b := range byOrder {
		for _, other := range byOrder {
			if b != other && b.Overlaps(other) {
				t.Fatalf("blocks overlap: %s–%s and %s–%s",
					b.Start.Format("15:04"), b.End.Format("15:04"),
					other.Start.Format("15:04"), other.End.Format("15:04"))
			}
		}
	}

	// Walk in packing order; coverage must be contiguous to sleep.
	var prev *plan.Block
	for i := 0; i < len(all); i++ {
		var next *plan.Block
		for _, b := range all {
			if b.Order == i {
				next = b
			}
		}
		if next == nil {
			t.Fatalf("missing packing order %d", i)
		}
		if prev == nil {
			if !next.Start.Equal(out.start) && !next.Start.Before(out.start) {
				t.Fatalf("first block starts at %v, want %v or earlier kept work", next.Start, out.start)
			}
		} else if !next.Start.Equal(prev.End) {
			t.Fatalf("gap between %v and %v", prev.End, next.Start)
		}
		prev = next
	}
	if !prev.End.Equal(out.sleep) {
		t.Fatalf("day ends at %v, want %v", prev.End, out.sleep)
	}
}

func TestBuildSingleFixedTaskPacksDay(t *testing.T) {
	fixedAt := at(10, 0)
	tk := task.New("standup", task.DomainWork, task.TypeFixed, 30)
	tk.FixedAt = &fixedAt

	out := pack(freshInput(tk))

	assertPacked(t, out, nil)
	if len(out.newBlocks) != 3 {
		t.Fatalf("expected exactly 3 blocks, got %d", len(out.newBlocks))
	}

	free1, taskBlk, free2 := out.newBlocks[1], out.newBlocks[0], out.newBlocks[2]
	// newBlocks appends the placed task first, then fill.
	if taskBlk.Type != plan.BlockTask {
		t.Fatalf("expected the placed block first, got %s", taskBlk.Type)
	}
	if !taskBlk.Start.Equal(at(10, 0)) || !taskBlk.End.Equal(at(10, 30)) {
		t.Fatalf("task block at %v–%v, want 10:00–10:30", taskBlk.Start, taskBlk.End)
	}
	if free1.Type != plan.BlockFree || !free1.Start.Equal(at(8, 0)) || !free1.End.Equal(at(10, 0)) {
		t.Fatalf("leading free block wrong: %s %v–%v", free1.Type, free1.Start, free1.End)
	}
	if free2.Type != plan.BlockFree || !free2.Start.Equal(at(10, 30)) || !free2.End.Equal(at(22, 0)) {
		t.Fatalf("trailing free block wrong: %s %v–%v", free2.Type, free2.Start, free2.End)
	}
}

func TestBuildEnergyGate(t *testing.T) {
	in := freshInput(
		func() *task.Task {
			tk := task.New("deep work", task.DomainWork, task.TypeFlexible, 60)
			tk.Energy = task.EnergyHigh
			return tk
		}(),
		flexibleTask("fold laundry", 30),
	)
	in.prefs.CurrentEnergy = task.EnergyLow

	out := pack(in)

	if len(out.placed) != 1 {
		t.Fatalf("expected only the low-energy task placed, got %d", len(out.placed))
	}
	for _, placed := range out.placed {
		if placed.Title != "fold laundry" {
			t.Fatalf("wrong task placed: %s", placed.Title)
		}
	}
	if out.counts.energy != 1 {
		t.Fatalf("expected 1 energy-blocked task, got %d", out.counts.energy)
	}
	assertPacked(t, out, nil)
}

func TestBuildDomainCapHolds(t *testing.T) {
	in := freshInput(
		func() *task.Task {
			tk := task.New("report", task.DomainWork, task.TypeFlexible, 60)
			tk.Energy = task.EnergyLow
			return tk
		}(),
		func() *task.Task {
			tk := task.New("refactor", task.DomainWork, task.TypeFlexible, 60)
			tk.Energy = task.EnergyLow
			return tk
		}(),
	)
	in.prefs.WorkHoursPerDay = 1

	out := pack(in)

	workMins := 0
	for _, b := range out.newBlocks {
		if b.Type == plan.BlockTask && b.Domain == task.DomainWork {
			workMins += b.Minutes()
		}
	}
	if workMins > 60 {
		t.Fatalf("work minutes %d exceed the 60-minute cap", workMins)
	}
	if out.counts.budget != 1 {
		t.Fatalf("expected 1 budget-blocked task, got %d", out.counts.budget)
	}
}

func TestBuildClosedWindow(t *testing.T) {
	in := freshInput(flexibleTask("anything", 30))
	in.now = at(23, 0)

	out := pack(in)
	if len(out.newBlocks) != 0 {
		t.Fatalf("expected no blocks past sleep, got %d", len(out.newBlocks))
	}
	if !out.counts.noWindow {
		t.Fatalf("expected the no-window flag")
	}
	if out.counts.message() == "" {
		t.Fatalf("expected an explanatory message")
	}
}

func TestBuildFixedOffDateSkipped(t *testing.T) {
	wrongDay := at(10, 0).AddDate(0, 0, 3)
	tk := task.New("dentist", task.DomainPersonal, task.TypeFixed, 45)
	tk.FixedAt = &wrongDay

	out := pack(freshInput(tk))
	if len(out.placed) != 0 {
		t.Fatalf("expected off-date fixed task skipped")
	}
	if out.counts.offDate != 1 {
		t.Fatalf("expected 1 off-date fixed task, got %d", out.counts.offDate)
	}
}

func TestBuildFixedConflictSkipsLater(t *testing.T) {
	first := at(10, 0)
	second := at(10, 15)
	a := task.New("call A", task.DomainWork, task.TypeFixed, 30)
	a.FixedAt = &first
	b := task.New("call B", task.DomainWork, task.TypeFixed, 30)
	b.FixedAt = &second

	out := pack(freshInput(a, b))
	if len(out.placed) != 1 {
		t.Fatalf("expected one of the conflicting fixed tasks placed, got %d", len(out.placed))
	}
	if out.placed[a.ID] == nil {
		t.Fatalf("expected the earlier fixed task to win")
	}
	if out.counts.noSlot != 1 {
		t.Fatalf("expected the later task counted as slotless, got %d", out.counts.noSlot)
	}
}

func TestBuildFlexibleWindowRespected(t *testing.T) {
	es, _ := task.ParseClock("14:00")
	mf, _ := task.ParseClock("16:00")
	tk := flexibleTask("afternoon walk", 60)
	tk.EligibleStart = &es
	tk.MustFinishBy = &mf

	out := pack(freshInput(tk))
	blk := findTaskBlock(out, tk.ID)
	if blk == nil {
		t.Fatalf("expected the windowed task placed")
	}
	if blk.Start.Before(at(14, 0)) || blk.End.After(at(16, 0)) {
		t.Fatalf("placement %v–%v violates the 14:00–16:00 window", blk.Start, blk.End)
	}
	assertPacked(t, out, nil)
}

func TestBuildProjectSliceBlock(t *testing.T) {
	tk := projectTask(480, 480, 120)
	tk.Energy = task.EnergyLow
	in := freshInput(tk)
	in.prefs.WorkHoursPerDay = 4

	out := pack(in)
	blk := findTaskBlock(out, tk.ID)
	if blk == nil {
		t.Fatalf("expected the project slice placed")
	}
	if blk.Minutes() != 120 {
		t.Fatalf("expected a 120-minute slice, got %d", blk.Minutes())
	}
	if blk.SliceNumber != 1 || blk.SliceDuration != 120 {
		t.Fatalf("expected slice 1 of 120 minutes, got %d of %d", blk.SliceNumber, blk.SliceDuration)
	}
}

func TestBuildBufferLabelWhenWorkCapacityRemains(t *testing.T) {
	in := freshInput()
	in.prefs.WorkHoursPerDay = 4

	out := pack(in)
	if len(out.newBlocks) != 1 {
		t.Fatalf("expected a single fill block, got %d", len(out.newBlocks))
	}
	if out.newBlocks[0].Label != "Buffer" {
		t.Fatalf("expected unused work capacity to produce a buffer block, got %q", out.newBlocks[0].Label)
	}
}

func TestBuildRestFillPreference(t *testing.T) {
	in := freshInput()
	in.prefs.FreeFill = plan.BlockRest

	out := pack(in)
	if len(out.newBlocks) != 1 || out.newBlocks[0].Type != plan.BlockRest {
		t.Fatalf("expected rest fill, got %+v", out.newBlocks)
	}
}

func TestBuildWakeRoundsUpToFiveMinutes(t *testing.T) {
	in := freshInput(flexibleTask("stretch", 30))
	in.now = at(9, 32)
	wake := at(9, 32)
	in.prefs.ActualWake = &wake

	out := pack(in)
	if !out.start.Equal(at(9, 35)) {
		t.Fatalf("expected start rounded up to 09:35, got %v", out.start)
	}
}

func TestBuildDraftNeverCompletesBlocks(t *testing.T) {
	in := freshInput(flexibleTask("stretch", 30))
	in.draft = true
	in.day = task.NewDate(testDay().AddDate(0, 0, 1))

	out := pack(in)
	for _, b := range out.newBlocks {
		if !b.IsDraft {
			t.Fatalf("expected all draft blocks marked as drafts")
		}
		if b.Completed {
			t.Fatalf("expected no draft block marked completed")
		}
	}
}

func TestBuildWorklistTerminates(t *testing.T) {
	tasks := make([]*task.Task, 0, 40)
	for i := 0; i < 40; i++ {
		tasks = append(tasks, flexibleTask("bulk", 60))
	}
	done := make(chan *buildOutcome, 1)
	go func() { done <- pack(freshInput(tasks...)) }()
	select {
	case out := <-done:
		assertPacked(t, out, nil)
	case <-time.After(5 * time.Second):
		t.Fatalf("pack did not reach a fixed point")
	}
}

func findTaskBlock(out *buildOutcome, taskID string) *plan.Block {
	for _, b := range out.newBlocks {
		if b.TaskID == taskID {
			return b
		}
	}
	return nil
}
