package commands

import (
	"context"

	"github.com/spf13/cobra"

	"wakeday/pkg/commands/options"
	"wakeday/pkg/runner/show"
	"wakeday/pkg/store"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	draft := false
	watch := false

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display a day's committed timetable.",
		Example: `
wakeday show
wakeday show --on="2026-09-02" --draft
wakeday show --watch
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
			s := show.Show{
				On:         on,
				Draft:      draft,
				Watch:      watch,
				Repository: repo,
			}
			return s.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().BoolVar(&draft, "draft", false, "Show the draft preview instead of the committed plan.")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and re-render when the plan changes.")

	topLevel.AddCommand(cmd)
}
