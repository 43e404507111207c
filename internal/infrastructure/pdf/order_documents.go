// Package pdf genera los documentos imprimibles de un pedido con Maroto v2.
//
// Etiqueta de envío (A5):
//
//	┌──────────────────────────────────────┐
//	│  N° pedido + fecha       │   QR (id) │
//	│  ─────────────────────────────────── │
//	│  DESTINATARIO: nombre / tel / dir.   │
//	│  NOTA                                │
//	│  ─────────────────────────────────── │
//	│  Artículos + estado                  │
//	└──────────────────────────────────────┘
//
// Resumen del pedido (A4): cabecera, cliente, tabla de líneas y totales.
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/subastas-admin/internal/application/ports"
	"github.com/jhoicas/subastas-admin/internal/domain/entity"
)

var _ ports.OrderDocumentRenderer = (*MarotoRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoRenderer implementa ports.OrderDocumentRenderer usando Maroto v2.
type MarotoRenderer struct {
	shopName string
}

// NewMarotoRenderer construye el generador; shopName aparece como remitente.
func NewMarotoRenderer(shopName string) *MarotoRenderer {
	return &MarotoRenderer{shopName: shopName}
}

// ShippingLabel genera la etiqueta de envío.
func (g *MarotoRenderer) ShippingLabel(_ context.Context, o entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Etiqueta de envío "+orderRef(o), true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(labelHeaderRow(o, g.shopName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipientRow(o.Customer))
	if o.Customer.Note != "" {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("NOTA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(o.Customer.Note, props.Text{Size: 9, Top: 6}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Artículos: %d", o.Totals.ItemsCount), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 2,
		})),
		col.New(6).Add(text.New("Estado: "+o.Status.Label(), props.Text{
			Size: 9, Align: align.Right, Top: 2, Color: colorGray,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// OrderSummary genera el resumen del pedido con sus líneas y totales.
func (g *MarotoRenderer) OrderSummary(_ context.Context, o entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Pedido "+orderRef(o), true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(summaryHeaderRow(o, g.shopName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipientRow(o.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(o.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(o.Totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar resumen: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// labelHeaderRow: remitente + número de pedido (izq) y QR con el id (der).
func labelHeaderRow(o entity.Order, shop string) core.Row {
	return row.New(30).Add(
		col.New(8).Add(
			text.New(nonEmpty(shop, "Subastas"), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Pedido "+orderRef(o), props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 9,
			}),
			text.New("Fecha: "+orderDate(o), props.Text{
				Size: 8, Top: 19, Color: colorGray,
			}),
		),
		col.New(4).Add(code.NewQr(nonEmpty(o.ID, orderRef(o)), props.Rect{Percent: 95, Center: true})),
	)
}

func summaryHeaderRow(o entity.Order, shop string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(shop, "Subastas"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("RESUMEN DE PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(orderRef(o), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+orderDate(o)+"  |  "+o.Status.Label(), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// recipientRow: datos del destinatario.
func recipientRow(c entity.Customer) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("DESTINATARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(c.Name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Dirección: %s",
				nonEmpty(c.Phone, "—"),
				nonEmpty(c.Address, "—"),
			), props.Text{Size: 9, Top: 13, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por línea del pedido.
func tableItemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		desc := it.Title
		if it.Brand != "" {
			desc += " · " + it.Brand
		}
		if it.Refid != "" {
			desc += " (" + it.Refid + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(nonEmpty(desc, "—"), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(t entity.Totals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Artículos:"),
			label("Subtotal:"),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2}),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", t.ItemsCount)),
			value(money(t.Subtotal)),
			text.New(money(t.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func orderRef(o entity.Order) string {
	if o.OrderNumber != "" {
		return "#" + o.OrderNumber
	}
	return "#" + o.ID
}

func orderDate(o entity.Order) string {
	if o.CreatedAt.IsZero() {
		return "—"
	}
	return o.CreatedAt.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	return "$" + formatMoney(d.StringFixed(0))
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
