package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/stockroom/pkg/commands/options"
	"tableflip.dev/stockroom/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	ro := &options.OrderOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
stockroom ui
stockroom ui --order 1001
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			i := ui.UI{OrderID: ro.OrderID}
			return i.Do(context.Background())
		},
	}

	options.AddOrderArg(cmd, ro)

	topLevel.AddCommand(cmd)
}
