package schedule

import (
	"testing"
	"time"

	"wakeday/pkg/task"
)

func TestBudgetWorkCap(t *testing.T) {
	p := testPrefs()
	p.WorkHoursPerDay = 2

	b := NewBudget(p, testDay())
	if !b.Fits(task.DomainWork, 120, false) {
		t.Fatalf("expected 120 minutes to fit a 2-hour cap")
	}
	b.Spend(task.DomainWork, 120)
	if b.Fits(task.DomainWork, 1, false) {
		t.Fatalf("expected the cap to be exhausted")
	}
}

func TestBudgetUnboundedDomains(t *testing.T) {
	b := NewBudget(testPrefs(), testDay())
	if !b.Fits(task.DomainPersonal, 10000, false) {
		t.Fatalf("expected personal domain to be unbounded")
	}
	if !b.Fits(task.DomainWork, 10000, false) {
		t.Fatalf("expected work to be unbounded when no daily cap is set")
	}
}

func TestBudgetZeroDisablesCap(t *testing.T) {
	p := testPrefs()
	p.WorkHoursPerDay = 0
	p.SideHustleHoursPerDay = 0

	b := NewBudget(p, testDay())
	if _, bounded := b.Remaining(task.DomainWork); bounded {
		t.Fatalf("expected a zero daily cap to disable the work budget")
	}
	if _, bounded := b.Remaining(task.DomainSideHustle); bounded {
		t.Fatalf("expected a zero daily cap to disable the side-hustle budget")
	}
}

func TestBudgetErrandsNeedInTownDay(t *testing.T) {
	p := testPrefs()
	p.InTownDays = []time.Weekday{time.Saturday}

	tuesday := testDay() // 2026-09-01 is a Tuesday
	b := NewBudget(p, tuesday)
	if b.Fits(task.DomainErrand, 5, false) {
		t.Fatalf("expected errands blocked off in-town days")
	}

	saturday := tuesday.AddDate(0, 0, 4)
	b = NewBudget(p, saturday)
	if !b.Fits(task.DomainErrand, 10000, false) {
		t.Fatalf("expected errands unbounded on an in-town day")
	}
}

func TestBudgetMustScheduleExemption(t *testing.T) {
	p := testPrefs()
	p.WorkHoursPerDay = 1

	b := NewBudget(p, testDay())
	b.Spend(task.DomainWork, 60)

	if b.Fits(task.DomainWork, 30, false) {
		t.Fatalf("expected new work rejected over the cap")
	}
	if !b.Fits(task.DomainWork, 30, true) {
		t.Fatalf("expected a task already committed to the day to be exempt")
	}
}

func TestBudgetRemaining(t *testing.T) {
	p := testPrefs()
	p.WorkHoursPerDay = 2

	b := NewBudget(p, testDay())
	b.Spend(task.DomainWork, 90)

	left, ok := b.Remaining(task.DomainWork)
	if !ok || left != 30 {
		t.Fatalf("expected 30 minutes remaining, got %d (bounded=%v)", left, ok)
	}
	if _, ok := b.Remaining(task.DomainCreative); ok {
		t.Fatalf("expected creative to report unbounded")
	}
}
