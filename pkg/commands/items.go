package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/stockroom/pkg/commands/options"
	"tableflip.dev/stockroom/pkg/runner/items"
	"tableflip.dev/stockroom/pkg/service"
	"tableflip.dev/stockroom/pkg/store"
)

func addItems(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item", "lines", "i"},
		Short:   "manage order lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addItemsList(cmd)
	addItemsAdd(cmd)
	addItemsRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addItemsList(topLevel *cobra.Command) {
	so := &options.SearchOptions{}
	ro := &options.OrderOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list order lines",
		Example: `
stockroom items list --order 1001
stockroom items list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := items.List{
				OrderID:    ro.OrderID,
				Search:     so.Search,
				OrderBy:    so.OrderBy,
				Descending: so.Descending,
				Service:    &service.OrderItems{Persistence: p},
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOrderArg(cmd, ro)
	options.AddSearchArgs(cmd, so)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addItemsAdd(topLevel *cobra.Command) {
	ro := &options.OrderOptions{}
	oo := &options.OutputOptions{}
	var (
		productID   string
		productName string
		quantity    int
		unitPrice   float64
		discount    float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "add a line to an order",
		Example: `
stockroom items add --order 1001 --product 4f7c2d --qty 2
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, al, err := loadBackend()
			if err != nil {
				return err
			}
			defer func() { _ = al.Close() }()
			s := items.Add{
				OrderID:     ro.OrderID,
				ProductID:   productID,
				ProductName: productName,
				Quantity:    quantity,
				UnitPrice:   unitPrice,
				Discount:    discount,
				Service:     &service.OrderItems{Persistence: p},
				Products:    &service.Products{Persistence: p},
				Log:         al,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOrderArg(cmd, ro)
	cmd.Flags().StringVarP(&productID, "product", "p", "", "Product id.")
	cmd.Flags().StringVar(&productName, "name", "", "Product name override.")
	cmd.Flags().IntVar(&quantity, "qty", 1, "Quantity.")
	cmd.Flags().Float64Var(&unitPrice, "price", 0, "Unit price override.")
	cmd.Flags().Float64Var(&discount, "discount", 0, "Line discount.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addItemsRemove(topLevel *cobra.Command) {
	ro := &options.OrderOptions{}
	fo := &options.ForceOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "remove <line>",
		Aliases: []string{"rm", "delete"},
		Short:   "remove a line from an order",
		Args:    cobra.ExactArgs(1),
		Example: `
stockroom items remove 3 --order 1001
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			p, al, err := loadBackend()
			if err != nil {
				return err
			}
			defer func() { _ = al.Close() }()
			s := items.Remove{
				OrderID: ro.OrderID,
				Line:    line,
				Force:   fo.Force,
				Service: &service.OrderItems{Persistence: p},
				Log:     al,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOrderArg(cmd, ro)
	options.AddForceArg(cmd, fo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
