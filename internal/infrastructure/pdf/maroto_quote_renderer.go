// Package pdf genera el PDF de una cotización con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT          │  N° Cotización + Fecha    │
//	│  EMISOR: Dirección / Tel / Email / Contacto                 │
//	│  CLIENTE: Nombre + correo + teléfono + dirección            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Código | Producto | Unidad | P.Unit | Valor   │
//	│  TOTALES: Subtotal / Descuento / IVA / TOTAL                │
//	│  CONDICIONES: validez, forma de pago, entrega, notas        │
//	│  FOOTER: QR con el código + firma                           │
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

	"github.com/jhoicas/Cotizador-api/internal/application/quoting"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/pkg/nit"
)

var _ quoting.QuoteRenderer = (*MarotoQuoteRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoQuoteRenderer implementa quoting.QuoteRenderer usando Maroto v2.
type MarotoQuoteRenderer struct {
	money *MoneyFormatter
}

// NewMarotoQuoteRenderer construye el renderer con montos en formato colombiano.
func NewMarotoQuoteRenderer() *MarotoQuoteRenderer {
	return &MarotoQuoteRenderer{money: NewMoneyFormatter("es-CO")}
}

// RenderQuote genera el PDF y devuelve sus bytes.
func (g *MarotoQuoteRenderer) RenderQuote(
	ctx context.Context,
	quote *entity.Quote,
	company *entity.Company,
	filename string,
) (*quoting.RenderedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if quote == nil || company == nil {
		return nil, fmt.Errorf("pdf: cotización o empresa vacía")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+quote.Code, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(quote, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(issuerRow(company))
	m.AddRows(clientRow(quote))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.lineRows(quote.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(quote))

	m.AddRows(termsRows(quote)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(quote))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	b := doc.GetBytes()
	return &quoting.RenderedDocument{Bytes: b, Filename: filename, Size: len(b)}, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(q *entity.Quote, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nit.Format(company.NIT), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(q.Code, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7}),
			text.New("Fecha: "+nonEmpty(q.Date, q.CreatedAt.Format("02/01/2006")), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func issuerRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "-"),
				nonEmpty(company.Phone, "-"),
				nonEmpty(company.Email, "-"),
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New("Contacto: "+nonEmpty(company.Contact, "-"), props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func clientRow(q *entity.Quote) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(q.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Correo: %s   |   Tel: %s   |   Dirección: %s",
				q.ClientEmail,
				nonEmpty(q.ClientPhone, "-"),
				nonEmpty(q.ClientAddress, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New("Vendedor: "+nonEmpty(q.Salesperson, "-"), props.Text{Size: 8, Top: 16, Color: colorGray}),
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
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Unidad", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

func (g *MarotoQuoteRenderer) lineRows(lines []entity.QuoteLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.Name
		if l.Description != "" {
			name += " - " + l.Description
		}
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(l.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(l.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.money.Format(l.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money.Format(l.Amount()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *MarotoQuoteRenderer) totalsRow(q *entity.Quote) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top})
	}

	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Descuento:", 6),
			label("IVA ("+q.TaxRate.String()+"%):", 11),
			label("TOTAL:", 17),
		),
		col.New(3).Add(
			value(g.money.Format(q.Subtotal), 1),
			value(g.money.Format(q.Discount), 6),
			value(g.money.Format(taxAmount(q)), 11),
			grand(g.money.Format(q.Total), 17),
		),
	)
}

func termsRows(q *entity.Quote) []core.Row {
	items := []struct{ label, value string }{
		{"Validez", q.Validity},
		{"Forma de pago", q.PaymentTerms},
		{"Tiempo de entrega", q.DeliveryTime},
		{"Estado", q.Status},
		{"Condiciones", q.Conditions},
		{"Observaciones", q.Observations},
		{"Notas legales", q.LegalNotes},
	}
	var rows []core.Row
	for _, it := range items {
		if strings.TrimSpace(it.value) == "" {
			continue
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(it.label+": "+it.value, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	return rows
}

func footerRow(q *entity.Quote) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(q.Code, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Código de cotización: "+q.Code, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New(nonEmpty(q.Signature, ""), props.Text{Style: fontstyle.Bold, Size: 10, Top: 20, Left: 3, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// taxAmount valor del IVA: total − (subtotal − descuento).
func taxAmount(q *entity.Quote) decimal.Decimal {
	return q.Total.Sub(q.Subtotal.Sub(q.Discount))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
