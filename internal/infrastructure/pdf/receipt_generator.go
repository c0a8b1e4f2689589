// Package pdf genera el comprobante (ticket) de un pedido del restaurante.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante            │  N° Pedido + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Email / Dirección + Teléfono              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Plato | P.Unit | Subtotal                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Servicio 10% / TOTAL                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Estado + pago + QR con el id del pedido             │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/jhoicas/restaurante-api/internal/application/ordering"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

var _ ordering.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 150, Green: 40, Blue: 27}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa ordering.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	restaurant string
}

// NewMarotoReceiptGenerator construye el generador con el nombre que encabeza el ticket.
func NewMarotoReceiptGenerator(restaurant string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{restaurant: nonEmpty(restaurant, "Restaurante")}
}

// GenerateOrderReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateOrderReceipt(_ context.Context, order *entity.OrderDetail) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pedido "+order.ID, true).
		WithAuthor(g.restaurant, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del restaurante (izq) y N° de pedido + fecha (der).
func (g *MarotoReceiptGenerator) headerRow(order *entity.OrderDetail) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.restaurant, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de pedido", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+order.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del comprador y de entrega.
func customerRow(order *entity.OrderDetail) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(order.Customer.Name, "-"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Dirección: %s   |   Tel: %s",
				nonEmpty(order.Customer.Email, "-"),
				nonEmpty(order.Address, "-"),
				nonEmpty(order.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 1, align.Center),
		h("Plato", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableLineRows: una fila por línea del pedido.
func tableLineRows(lines []entity.OrderLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name, currency := l.MenuItemID, ""
		unit := decimal.Zero
		if l.MenuItem != nil {
			name, currency = l.MenuItem.Name, l.MenuItem.Currency
			unit = l.MenuItem.Price
		} else if l.Quantity > 0 {
			unit = l.Subtotal.Div(decimal.NewFromInt(int64(l.Quantity)))
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money(unit, currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money(l.Subtotal, currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: subtotal, cargo de servicio y total, alineados a la derecha.
func totalsRow(order *entity.OrderDetail) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	subtotal := decimal.Zero
	currency := ""
	for _, l := range order.Items {
		subtotal = subtotal.Add(l.Subtotal)
		if currency == "" && l.MenuItem != nil {
			currency = l.MenuItem.Currency
		}
	}
	service := order.Total.Sub(subtotal)

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Servicio (10%):"),
			grand("TOTAL:"),
		),
		col.New(3).Add(
			value(money(subtotal, currency)),
			value(money(service, currency)),
			grand(money(order.Total, currency)),
		),
		col.New(3),
	)
}

// footerRow: estado del pedido, medio de pago y QR con el id para la cocina.
func footerRow(order *entity.OrderDetail) core.Row {
	payment := "Pago: -"
	if order.Payment != nil {
		payment = fmt.Sprintf("Pago: %s (%s)", paymentLabel(order.Payment.Method), order.Payment.Status)
	}
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(order.ID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Estado: "+string(order.Status), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 4, Left: 3, Color: colorPrimary,
			}),
			text.New(payment, props.Text{
				Size: 9, Top: 12, Left: 3,
			}),
			text.New("Escanea el código QR para consultar el pedido en cocina.", props.Text{
				Size: 7, Top: 20, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func paymentLabel(m entity.PaymentMethod) string {
	switch m {
	case entity.PaymentMethodCreditCard:
		return "Tarjeta de crédito"
	case entity.PaymentMethodCash:
		return "Efectivo"
	}
	return string(m)
}

// shortID primeros 8 caracteres del id, suficiente para identificar el pedido en sala.
func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// money formatea un importe con dos decimales y el código de moneda.
// Ej: 25000.5 COP → "25.000,50 COP".
func money(d decimal.Decimal, currency string) string {
	s := formatMoney(d.StringFixed(2))
	if currency == "" {
		return "$" + s
	}
	return s + " " + currency
}

// formatMoney inserta puntos de miles y usa coma decimal en un string "1234.56".
// Ej: "25000.50" → "25.000,50", "-1000.00" → "-1.000,00"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+1)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if hasFrac {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return sign + string(buf)
}
