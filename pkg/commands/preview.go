package commands

import (
	"context"

	"github.com/spf13/cobra"

	"wakeday/pkg/commands/options"
	"wakeday/pkg/runner/preview"
	"wakeday/pkg/store"
)

func addPreview(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draft tomorrow's timetable without committing it.",
		Example: `
wakeday preview
wakeday preview --on="2026-09-03"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			repo, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := preview.Preview{
				On:         on,
				Repository: repo,
			}
			return s.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
