package options

import (
	"github.com/spf13/cobra"

	"wakeday/pkg/task"
)

// InterruptOptions captures the shape of a logged interruption.
type InterruptOptions struct {
	Minutes      int
	DomainString string
}

func AddInterruptArgs(cmd *cobra.Command, o *InterruptOptions) {
	cmd.Flags().IntVarP(&o.Minutes, "minutes", "m", 30,
		"How long the interruption lasted or will last.")
	cmd.Flags().StringVarP(&o.DomainString, "domain", "d", string(task.DomainUnplanned),
		"Which domain the interruption belongs to.")
}

func (o *InterruptOptions) GetDomain() (task.Domain, error) {
	return task.ParseDomain(o.DomainString)
}
