package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/stockroom/pkg/commands/options"
	"tableflip.dev/stockroom/pkg/runner/activitylog"
	"tableflip.dev/stockroom/pkg/store"
)

func addActivity(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var count int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "show recent activity",
		Example: `
stockroom activity
stockroom activity -n 50
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s := activitylog.Show{
				Path:  cfg.ActivityPath(),
				Count: count,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of entries to show.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
