package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/sweetshop/storefront/internal/core/domain"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	lowStockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	inStockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	soldOutStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	adminStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

// renderSweets prints the catalog as a table, flagging low stock the way
// the shop's admin panel does.
func renderSweets(w io.Writer, sweets []domain.Sweet) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("ID"),
		headerStyle.Render("NAME"),
		headerStyle.Render("CATEGORY"),
		headerStyle.Render("PRICE"),
		headerStyle.Render("QTY"),
	)
	for _, s := range sweets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", s.ID, s.Name, s.Category, s.Price, renderQuantity(s))
	}
	_ = tw.Flush()
}

func renderQuantity(s domain.Sweet) string {
	qty := strconv.Itoa(s.Quantity)
	switch {
	case s.Quantity == 0:
		return soldOutStyle.Render("sold out")
	case s.LowStock():
		return lowStockStyle.Render(qty)
	default:
		return inStockStyle.Render(qty)
	}
}

func renderRole(role string) string {
	if role == domain.RoleAdmin {
		return adminStyle.Render(role)
	}
	return role
}
