// Package printers renders catalog records for the terminal commands.
package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/stockroom/pkg/model"
)

// PrettyPrint writes colored tables to the color-aware stdout.
type PrettyPrint struct {
	ShowID bool
}

// NewLine prints a blank spacer line.
func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(color.Output, "")
}

// Title prints a bold underlined heading.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = fmt.Fprintln(color.Output, t.Sprint(title))
}

// TitleWithCount prints a heading with a faint record count.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	noun := "records"
	if count == 1 {
		noun = "record"
	}
	_, _ = fmt.Fprintf(color.Output, "%s%s\n", t.Sprint(title), c.Sprintf(" - %d %s", count, noun))
}

// Products renders a product table.
func (pp *PrettyPrint) Products(products ...*model.Product) {
	if len(products) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Category"),
			bold.Sprint("List Price"), bold.Sprint("Stock"))
	} else {
		tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Category"),
			bold.Sprint("List Price"), bold.Sprint("Stock"))
	}
	for _, p := range products {
		price := fmt.Sprintf("%.2f", p.ListPrice)
		if pp.ShowID {
			tbl.AddRow(faint.Sprint(p.ProductID), p.Title(), p.Category, price, p.StockUnits)
		} else {
			tbl.AddRow(p.Title(), p.Category, price, p.StockUnits)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()
}

// Product renders one product as a field table.
func (pp *PrettyPrint) Product(p *model.Product) {
	if p == nil || p.IsEmpty {
		pp.none()
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("ID"), p.ProductID)
	tbl.AddRow(bold.Sprint("Name"), p.Name)
	tbl.AddRow(bold.Sprint("Category"), p.Category)
	tbl.AddRow(bold.Sprint("Description"), p.Description)
	tbl.AddRow(bold.Sprint("List Price"), fmt.Sprintf("%.2f", p.ListPrice))
	tbl.AddRow(bold.Sprint("Dealer Price"), fmt.Sprintf("%.2f", p.DealerPrice))
	tbl.AddRow(bold.Sprint("Stock Units"), p.StockUnits)
	tbl.AddRow(bold.Sprint("Safety Stock"), p.SafetyStockLevel)
	if !p.LastModifiedOn.IsZero() {
		tbl.AddRow(bold.Sprint("Modified"), p.LastModifiedOn.Format("2006-01-02 15:04"))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()
}

// OrderItems renders an order-line table.
func (pp *PrettyPrint) OrderItems(items ...*model.OrderItem) {
	if len(items) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("Line"), bold.Sprint("Product"), bold.Sprint("Qty"),
		bold.Sprint("Unit Price"), bold.Sprint("Total"))
	for _, o := range items {
		tbl.AddRow(o.OrderLine, o.Title(), o.Quantity,
			fmt.Sprintf("%.2f", o.UnitPrice), fmt.Sprintf("%.2f", o.Total()))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()
}

// Activity renders activity log entries oldest first.
func (pp *PrettyPrint) Activity(entries ...ActivityEntry) {
	if len(entries) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("When"), bold.Sprint("Source"), bold.Sprint("Action"), bold.Sprint("Summary"))
	for _, e := range entries {
		summary := e.Summary
		if e.IsError {
			summary = red.Sprint(summary)
		}
		tbl.AddRow(e.When, e.Source, e.Action, summary)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()
}

// ActivityEntry is a pre-formatted activity row.
type ActivityEntry struct {
	When    string
	Source  string
	Action  string
	Summary string
	IsError bool
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = fmt.Fprint(color.Output, f.Sprint(" none\n\n"))
}
