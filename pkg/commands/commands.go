package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "wakeday",
		Short: base.Wrap80("Plan the waking hours of your day, and replan them when life interrupts."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addStart(topLevel)
	addNow(topLevel)
	addInterrupt(topLevel)
	addPreview(topLevel)
	addShow(topLevel)
	addTasks(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
}
