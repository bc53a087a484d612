// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// SearchOptions captures common filter and sort flags for list commands.
type SearchOptions struct {
	Search     string
	OrderBy    string
	Descending bool
}

// AddSearchArgs wires filter and sort flags on the provided command.
func AddSearchArgs(cmd *cobra.Command, o *SearchOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "q", "",
		"Filter by free text.")
	cmd.Flags().StringVar(&o.OrderBy, "order-by", "",
		"Sort field (name, price, stock).")
	cmd.Flags().BoolVar(&o.Descending, "desc", false,
		"Sort descending.")
}
