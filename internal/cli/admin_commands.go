package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sweetshop/storefront/internal/core/ports"
)

func (r *root) restockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restock <id>",
		Short: "Add one unit of stock (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.Inventory.Restock(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sweet restocked (+1).")
			return nil
		},
	}
}

func (r *root) createCmd() *cobra.Command {
	var input ports.SweetInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a new sweet to the catalog (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.Inventory.Create(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q.\n", input.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "sweet name")
	cmd.Flags().StringVar(&input.Category, "category", "", "sweet category")
	cmd.Flags().StringVar(&input.Price, "price", "", "unit price, non-negative")
	cmd.Flags().StringVar(&input.Quantity, "quantity", "", "stock quantity, non-negative integer")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func (r *root) updateCmd() *cobra.Command {
	var input ports.SweetInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a sweet's fields (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.Inventory.Update(cmd.Context(), args[0], input); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "sweet name")
	cmd.Flags().StringVar(&input.Category, "category", "", "sweet category")
	cmd.Flags().StringVar(&input.Price, "price", "", "unit price, non-negative")
	cmd.Flags().StringVar(&input.Quantity, "quantity", "", "stock quantity, non-negative integer")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func (r *root) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a sweet from the catalog (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !r.confirm(cmd, fmt.Sprintf("Delete sweet %s? [y/N] ", args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			if err := r.app.Inventory.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sweet deleted.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (r *root) confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
