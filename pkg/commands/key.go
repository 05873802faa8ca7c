package commands

import (
	"context"

	"github.com/spf13/cobra"

	"wakeday/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Display the timetable legend.",
		Example: `
wakeday key
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := key.Key{}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
