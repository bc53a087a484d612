// Package commands assembles the stockroom CLI.
package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stockroom/pkg/activity"
	"tableflip.dev/stockroom/pkg/commands/options"
	"tableflip.dev/stockroom/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "stockroom",
		Short: options.Wrap80("Inventory management on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addProducts(topLevel)
	addItems(topLevel)
	addSeed(topLevel)
	addActivity(topLevel)
	addVersion(topLevel)
}

// loadBackend resolves config once and opens both persistence and the
// activity log. Callers own closing the log.
func loadBackend() (store.Persistence, *activity.Log, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	al, err := activity.Open(cfg.ActivityPath())
	if err != nil {
		return nil, nil, err
	}
	return p, al, nil
}
