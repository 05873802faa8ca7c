package tasks

import (
	"context"
	"errors"
	"sort"

	"wakeday/pkg/printers"
	"wakeday/pkg/store"
)

type Tasks struct {
	All bool

	Repository store.Repository
}

func (n *Tasks) Do(ctx context.Context) error {
	if n.Repository == nil {
		return errors.New("can not list tasks, no repository")
	}

	all := n.Repository.ListTasks(ctx, store.TaskFilter{IncludeCompleted: n.All})
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Created.Before(all[j].Created)
	})

	pp := printers.PrettyPrint{}
	pp.Title("Task pool")
	pp.Tasks(all...)

	return nil
}
