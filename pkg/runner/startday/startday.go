package startday

import (
	"context"
	"errors"

	"wakeday/pkg/prefs"
	"wakeday/pkg/printers"
	"wakeday/pkg/schedule"
	"wakeday/pkg/store"
)

type StartDay struct {
	Repository store.Repository
}

func (n *StartDay) Do(ctx context.Context) error {
	if n.Repository == nil {
		return errors.New("can not start the day, no repository")
	}

	// First run: seed the preference record so the engine has day bounds.
	if _, err := n.Repository.Preferences(ctx); errors.Is(err, store.ErrNoPreferences) {
		if err := n.Repository.SavePreferences(prefs.Default()); err != nil {
			return err
		}
	}

	engine := schedule.New(n.Repository)
	res, err := engine.StartDay(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title(res.Day.String())
	pp.Timetable(res.Blocks...)
	pp.Message(res.Message)

	return nil
}
