package show

import (
	"context"
	"errors"
	"sort"
	"time"

	"wakeday/pkg/plan"
	"wakeday/pkg/printers"
	"wakeday/pkg/store"
	"wakeday/pkg/task"
)

type Show struct {
	// On is the day to display; today when nil.
	On    *time.Time
	Draft bool

	// Watch keeps the command running and re-renders the timetable whenever
	// the underlying store changes.
	Watch bool

	Repository store.Repository
}

func (n *Show) Do(ctx context.Context) error {
	if n.Repository == nil {
		return errors.New("can not show, no repository")
	}

	day := task.NewDate(time.Now())
	if n.On != nil {
		day = task.NewDate(*n.On)
	}

	n.render(ctx, day)
	if !n.Watch {
		return nil
	}

	events, err := n.Repository.Watch(ctx)
	if err != nil {
		return err
	}
	for ev := range events {
		switch ev.Type {
		case store.EventPlanChanged, store.EventPrefsChanged, store.EventInvalidated:
			n.render(ctx, day)
		}
	}
	return nil
}

func (n *Show) render(ctx context.Context, day task.Date) {
	blocks := n.Repository.ListBlocks(ctx, day, n.Draft)
	sort.Slice(blocks, plan.ByStart(blocks))

	pp := printers.PrettyPrint{}
	title := day.String()
	if n.Draft {
		title += " (draft)"
	}
	pp.Title(title)
	pp.Timetable(blocks...)
}
