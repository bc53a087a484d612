package options

import (
	"github.com/spf13/cobra"
)

// IDOptions controls identifier display.
type IDOptions struct {
	ShowID bool
}

// AddShowIDArgs registers the id visibility flag.
func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVar(&o.ShowID, "id", false,
		"Show record ids.")
}

// ForceOptions skips interactive confirmation prompts.
type ForceOptions struct {
	Force bool
}

// AddForceArg registers the confirmation bypass flag.
func AddForceArg(cmd *cobra.Command, o *ForceOptions) {
	cmd.Flags().BoolVarP(&o.Force, "force", "f", false,
		"Do not ask for confirmation.")
}

// OrderOptions scopes a command to one order.
type OrderOptions struct {
	OrderID int64
}

// AddOrderArg registers the order scope flag.
func AddOrderArg(cmd *cobra.Command, o *OrderOptions) {
	cmd.Flags().Int64VarP(&o.OrderID, "order", "O", 0,
		"Specify the order.")
}
