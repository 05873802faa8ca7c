package interrupt

import (
	"context"
	"errors"

	"wakeday/pkg/printers"
	"wakeday/pkg/schedule"
	"wakeday/pkg/store"
	"wakeday/pkg/task"
)

type Interrupt struct {
	Minutes     int
	Domain      task.Domain
	Description string

	Repository store.Repository
}

func (n *Interrupt) Do(ctx context.Context) error {
	if n.Repository == nil {
		return errors.New("can not log an interruption, no repository")
	}

	engine := schedule.New(n.Repository)
	res, err := engine.LogInterruption(ctx, n.Minutes, n.Domain, n.Description)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title(res.Day.String())
	pp.Timetable(res.Blocks...)
	pp.Message(res.Message)

	return nil
}
