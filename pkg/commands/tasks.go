package commands

import (
	"context"

	"github.com/spf13/cobra"

	runnertasks "wakeday/pkg/runner/tasks"
	"wakeday/pkg/store"
)

func addTasks(topLevel *cobra.Command) {
	all := false

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the task pool the scheduler draws from.",
		Example: `
wakeday tasks
wakeday tasks --all
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnertasks.Tasks{
				All:        all,
				Repository: repo,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks.")

	topLevel.AddCommand(cmd)
}
