package commands

import (
	"context"

	"github.com/spf13/cobra"

	"wakeday/pkg/runner/startday"
	"wakeday/pkg/store"
)

func addStart(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the day: stamp the wake time and build today's timetable.",
		Example: `
wakeday start
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := startday.StartDay{
				Repository: repo,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
