package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/stockroom/pkg/commands/options"
	"tableflip.dev/stockroom/pkg/runner/seed"
	"tableflip.dev/stockroom/pkg/service"
	"tableflip.dev/stockroom/pkg/store"
)

func addSeed(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "load demo data",
		Example: `
stockroom seed
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := seed.Seed{
				Products: &service.Products{Persistence: p},
				Items:    &service.OrderItems{Persistence: p},
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
