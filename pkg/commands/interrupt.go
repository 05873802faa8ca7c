package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"wakeday/pkg/commands/options"
	"wakeday/pkg/runner/interrupt"
	"wakeday/pkg/store"
)

func addInterrupt(topLevel *cobra.Command) {
	io := &options.InterruptOptions{}

	cmd := &cobra.Command{
		Use:   "interrupt [description]",
		Short: "Log an interruption and replan what remains of today.",
		Example: `
wakeday interrupt --minutes 60 --domain unplanned plumber visit
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := io.GetDomain()
			if err != nil {
				return err
			}
			repo, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := interrupt.Interrupt{
				Minutes:     io.Minutes,
				Domain:      domain,
				Description: strings.Join(args, " "),
				Repository:  repo,
			}
			return s.Do(context.Background())
		},
	}

	options.AddInterruptArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
