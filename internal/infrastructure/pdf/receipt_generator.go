// Package pdf renders printable sale receipts.
//
// A5 page layout:
//
//	┌──────────────────────────────────┐
//	│  HEADER: business name + contact │
//	│  Receipt number + date           │
//	│  ──────────────────────────────  │
//	│  TABLE: Qty | Item | Price | Tot │
//	│  ──────────────────────────────  │
//	│  Subtotal / Discount / Tax       │
//	│  Service charge / GRAND TOTAL    │
//	│  Payment method                  │
//	│  FOOTER: thank-you line          │
//	└──────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/stratera/pos-api/internal/application/sales"
	"github.com/stratera/pos-api/internal/domain/entity"
)

var (
	colorDark = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray = &props.Color{Red: 110, Green: 110, Blue: 110}
)

var _ sales.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implements sales.ReceiptPDFGenerator using Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator builds the generator.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF renders the sale and returns the PDF bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.Sale, settings *entity.BusinessSettings) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "courier", Size: 9}).
		WithTitle("Receipt "+sale.ReceiptNumber, true).
		WithAuthor(settings.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(sale, settings)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorDark, Thickness: 0.4}))

	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(sale, settings.CurrencySymbol) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorDark, Thickness: 0.3}))
	m.AddRows(totalsRows(sale, settings.CurrencySymbol)...)

	m.AddRows(line.NewRow(2))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(sale *entity.Sale, settings *entity.BusinessSettings) []core.Row {
	rows := []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New(settings.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Center, Color: colorDark, Top: 1,
			}),
			text.New(contactLine(settings), props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 9,
			}),
		)),
		row.New(10).Add(
			col.New(6).Add(
				text.New(sale.ReceiptNumber, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
			),
			col.New(6).Add(
				text.New(sale.Date.Format("02/01/2006 15:04"), props.Text{
					Size: 9, Align: align.Right, Color: colorGray, Top: 2,
				}),
			),
		),
	}
	if sale.CustomerContact != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Customer: "+sale.CustomerContact, props.Text{Size: 8, Color: colorGray}),
		)))
	}
	return rows
}

func contactLine(settings *entity.BusinessSettings) string {
	switch {
	case settings.Address != "" && settings.Contact != "":
		return settings.Address + "  |  " + settings.Contact
	case settings.Address != "":
		return settings.Address
	default:
		return settings.Contact
	}
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Qty", 2, align.Center),
		h("Item", 5, align.Left),
		h("Price", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func itemRows(sale *entity.Sale, symbol string) []core.Row {
	result := make([]core.Row, 0, len(sale.Items))
	for _, item := range sale.Items {
		result = append(result, row.New(5).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", item.Quantity),
				props.Text{Size: 8, Align: align.Center},
			)),
			col.New(5).Add(text.New(
				item.ProductName,
				props.Text{Size: 8, Align: align.Left},
			)),
			col.New(2).Add(text.New(
				symbol+item.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right},
			)),
			col.New(3).Add(text.New(
				symbol+item.Total().StringFixed(2),
				props.Text{Size: 8, Align: align.Right},
			)),
		))
	}
	return result
}

func totalsRows(sale *entity.Sale, symbol string) []core.Row {
	pair := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 9.0
		if bold {
			style = fontstyle.Bold
			size = 11
		}
		return row.New(5).Add(
			col.New(7).Add(text.New(label, props.Text{
				Style: style, Size: size, Align: align.Right, Right: 2,
			})),
			col.New(5).Add(text.New(value, props.Text{
				Style: style, Size: size, Align: align.Right,
			})),
		)
	}

	rows := []core.Row{
		pair("Subtotal:", symbol+sale.SubTotal.StringFixed(2), false),
	}
	if sale.Discount.IsPositive() {
		rows = append(rows, pair("Discount:", "-"+symbol+sale.Discount.StringFixed(2), false))
	}
	if sale.Tax.IsPositive() {
		rows = append(rows, pair("Tax:", symbol+sale.Tax.StringFixed(2), false))
	}
	if sale.ServiceCharge.IsPositive() {
		rows = append(rows, pair("Service charge:", symbol+sale.ServiceCharge.StringFixed(2), false))
	}
	rows = append(rows,
		pair("TOTAL:", symbol+sale.GrandTotal.StringFixed(2), true),
		pair("Paid via:", sale.PaymentMethod, false),
	)
	return rows
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Thank you for your purchase!", props.Text{
			Size: 9, Align: align.Center, Color: colorGray, Top: 2,
		}),
	))
}
