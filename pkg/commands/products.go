package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/stockroom/pkg/commands/options"
	"tableflip.dev/stockroom/pkg/runner/products"
	"tableflip.dev/stockroom/pkg/service"
	"tableflip.dev/stockroom/pkg/store"
)

func addProducts(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "manage the product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addProductsList(cmd)
	addProductsShow(cmd)
	addProductsAdd(cmd)
	addProductsRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addProductsList(topLevel *cobra.Command) {
	so := &options.SearchOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list products",
		Example: `
stockroom products list
stockroom products list -q speaker --order-by price --desc
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := products.List{
				Search:     so.Search,
				OrderBy:    so.OrderBy,
				Descending: so.Descending,
				ShowID:     io.ShowID,
				Service:    &service.Products{Persistence: p},
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddSearchArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addProductsShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "show one product",
		Args:  cobra.ExactArgs(1),
		Example: `
stockroom products show 4f7c2d
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := products.Show{
				ID:      args[0],
				Service: &service.Products{Persistence: p},
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addProductsAdd(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var (
		category    string
		description string
		listPrice   float64
		dealerPrice float64
		stock       int
		safety      int
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "add a product",
		Args:  cobra.MinimumNArgs(1),
		Example: `
stockroom products add Bookshelf Speaker --category Audio --price 249
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, al, err := loadBackend()
			if err != nil {
				return err
			}
			defer func() { _ = al.Close() }()
			s := products.Add{
				Name:        strings.Join(args, " "),
				Category:    category,
				Description: description,
				ListPrice:   listPrice,
				DealerPrice: dealerPrice,
				Stock:       stock,
				Safety:      safety,
				Service:     &service.Products{Persistence: p},
				Log:         al,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Product category.")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Product description.")
	cmd.Flags().Float64Var(&listPrice, "price", 0, "List price.")
	cmd.Flags().Float64Var(&dealerPrice, "dealer-price", 0, "Dealer price.")
	cmd.Flags().IntVar(&stock, "stock", 0, "Units on hand.")
	cmd.Flags().IntVar(&safety, "safety", 0, "Safety stock level.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addProductsRemove(topLevel *cobra.Command) {
	fo := &options.ForceOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "remove a product",
		Args:    cobra.ExactArgs(1),
		Example: `
stockroom products remove 4f7c2d --force
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, al, err := loadBackend()
			if err != nil {
				return err
			}
			defer func() { _ = al.Close() }()
			s := products.Remove{
				ID:      args[0],
				Force:   fo.Force,
				Service: &service.Products{Persistence: p},
				Log:     al,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddForceArg(cmd, fo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
