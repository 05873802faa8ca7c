package updatenow

import (
	"context"
	"errors"

	"wakeday/pkg/printers"
	"wakeday/pkg/schedule"
	"wakeday/pkg/store"
)

type UpdateNow struct {
	Repository store.Repository
}

func (n *UpdateNow) Do(ctx context.Context) error {
	if n.Repository == nil {
		return errors.New("can not update, no repository")
	}

	engine := schedule.New(n.Repository)
	res, err := engine.UpdateNow(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title(res.Day.String())
	pp.Timetable(res.Blocks...)
	pp.Message(res.Message)

	return nil
}
