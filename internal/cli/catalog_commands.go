package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sweetshop/storefront/internal/core/domain"
)

func (r *root) listCmd() *cobra.Command {
	var (
		name     string
		category string
		minPrice float64
		maxPrice float64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.Filter{Name: name, Category: category}
			if cmd.Flags().Changed("min-price") {
				filter.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				filter.MaxPrice = &maxPrice
			}

			sweets, err := r.app.Catalog.Fetch(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(sweets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sweets found matching your criteria.")
				return nil
			}
			renderSweets(cmd.OutOrStdout(), sweets)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by name")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price")
	return cmd
}

func (r *root) buyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <id>",
		Short: "Purchase one unit of a sweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// make sure the stock precondition sees a current view
			if _, err := r.app.Catalog.Fetch(cmd.Context(), domain.Filter{}); err != nil {
				return err
			}
			if err := r.app.Inventory.Purchase(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sweet purchased. Enjoy!")
			return nil
		},
	}
}
