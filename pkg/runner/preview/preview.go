package preview

import (
	"context"
	"errors"
	"time"

	"wakeday/pkg/printers"
	"wakeday/pkg/schedule"
	"wakeday/pkg/store"
	"wakeday/pkg/task"
)

type Preview struct {
	// On is the previewed day; tomorrow when nil.
	On *time.Time

	Repository store.Repository
}

func (n *Preview) Do(ctx context.Context) error {
	if n.Repository == nil {
		return errors.New("can not preview, no repository")
	}

	day := task.NewDate(time.Now()).Next()
	if n.On != nil {
		day = task.NewDate(*n.On)
	}

	engine := schedule.New(n.Repository)
	res, err := engine.PreviewDraft(ctx, day)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title(res.Day.String() + " (draft)")
	pp.Timetable(res.Blocks...)
	pp.Message(res.Message)

	return nil
}
