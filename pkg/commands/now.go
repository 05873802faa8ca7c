package commands

import (
	"context"

	"github.com/spf13/cobra"

	"wakeday/pkg/runner/updatenow"
	"wakeday/pkg/store"
)

func addNow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Replan the rest of today from the current moment.",
		Example: `
wakeday now
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := updatenow.UpdateNow{
				Repository: repo,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
