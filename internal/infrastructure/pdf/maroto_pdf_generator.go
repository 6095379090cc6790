// Package pdf implementa el documento imprimible de la factura con Maroto v2.
//
// Layout de la página A4 (mismo orden que la vista previa del formulario):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        INVOICE                               │
//	│              Factura #<id>  ·  Fecha                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FROM (emisor)              │  TO (cliente)                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant. | P. Unit | Importe              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / Descuento / Envío / TOTAL    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAGO: métodos / datos bancarios / condiciones               │
//	└─────────────────────────────────────────────────────────────┘
//
// Impuesto, descuento y envío solo se imprimen cuando son mayores que cero;
// en el cálculo participan siempre.
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factura-express/internal/domain/entity"
)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorDark  = &props.Color{Red: 31, Green: 41, Blue: 55}
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen = &props.Color{Red: 22, Green: 163, Blue: 74}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa session.RecordPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	currency string // símbolo de moneda, ej. "$"
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(currency string) *MarotoPDFGenerator {
	if currency == "" {
		currency = "$"
	}
	return &MarotoPDFGenerator{currency: currency}
}

// GenerateRecordPDF genera el PDF de una factura enviada y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateRecordPDF(_ context.Context, record *entity.InvoiceRecord) ([]byte, error) {
	d := record.Draft

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+d.InvoiceID, true).
		WithAuthor(d.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(d)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorDark, Thickness: 0.6}))
	m.AddRows(partiesRow(d))
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(d.Items, g.currency) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range g.totalsRows(record) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(paymentRows(d)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: título INVOICE centrado + número y fecha.
func headerRows(d entity.InvoiceDraft) []core.Row {
	return []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 22, Align: align.Center,
				Color: colorDark, Top: 2,
			}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New("Factura #"+d.InvoiceID, props.Text{
				Size: 10, Align: align.Center, Color: colorGray, Top: 1,
			}),
			text.New("Fecha: "+d.InvoiceDate, props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 6,
			}),
		)),
	}
}

// partiesRow: bloque emisor (izq) y cliente (der). Teléfono y NIT/Tax ID solo
// cuando existen.
func partiesRow(d entity.InvoiceDraft) core.Row {
	left := []core.Component{
		text.New("FROM (EMISOR)", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorDark, Top: 1,
		}),
		text.New(d.CompanyName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(d.CompanyAddress, props.Text{Size: 8, Top: 11, Color: colorGray}),
	}
	right := []core.Component{
		text.New("TO (CLIENTE)", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorDark, Top: 1,
		}),
		text.New(d.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(d.ClientAddress, props.Text{Size: 8, Top: 11, Color: colorGray}),
	}
	left = appendContactLine(left, d.CompanyPhone, d.CompanyTaxID)
	right = appendContactLine(right, d.ClientPhone, d.ClientTaxID)

	return row.New(24).Add(col.New(6).Add(left...), col.New(6).Add(right...))
}

// appendContactLine agrega "Tel: ... | Tax ID: ..." omitiendo lo vacío.
func appendContactLine(comps []core.Component, phone, taxID string) []core.Component {
	parts := make([]string, 0, 2)
	if phone != "" {
		parts = append(parts, "Tel: "+phone)
	}
	if taxID != "" {
		parts = append(parts, "Tax ID: "+taxID)
	}
	if len(parts) == 0 {
		return comps
	}
	return append(comps, text.New(strings.Join(parts, "   |   "), props.Text{
		Size: 8, Top: 16, Color: colorGray,
	}))
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorDark, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Descripción", 6, align.Left),
		h("Cant.", 2, align.Center),
		h("P. Unitario", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

// tableItemRows: una fila por línea, en orden de inserción.
func tableItemRows(items []entity.LineItem, currency string) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				currency+it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				currency+it.Amount().StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRows: bloque de totales alineado a la derecha. Las filas de impuesto,
// descuento y envío aparecen solo cuando el valor es mayor que cero.
func (g *MarotoPDFGenerator) totalsRows(record *entity.InvoiceRecord) []core.Row {
	d := record.Draft

	type totalLine struct {
		label string
		value string
		color *props.Color
	}
	lines := []totalLine{
		{"Subtotal:", g.currency + record.Subtotal.StringFixed(2), colorDark},
	}
	if d.TaxRate.GreaterThan(decimal.Zero) {
		lines = append(lines, totalLine{
			fmt.Sprintf("Impuesto (%s%%):", d.TaxRate.String()),
			g.currency + record.TaxAmount.StringFixed(2),
			colorDark,
		})
	}
	if d.DiscountAmount.GreaterThan(decimal.Zero) {
		lines = append(lines, totalLine{
			"Descuento:",
			"-" + g.currency + d.DiscountAmount.StringFixed(2),
			colorGreen,
		})
	}
	if d.ShippingCharges.GreaterThan(decimal.Zero) {
		lines = append(lines, totalLine{
			"Envío / cargos extra:",
			g.currency + d.ShippingCharges.StringFixed(2),
			colorDark,
		})
	}

	rows := make([]core.Row, 0, len(lines)+1)
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(l.label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Color: l.color,
			})),
			col.New(3).Add(text.New(l.value, props.Text{
				Size: 9, Align: align.Right, Right: 1, Color: l.color,
			})),
		))
	}
	rows = append(rows, row.New(9).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 2, Color: colorDark, Top: 2,
		})),
		col.New(3).Add(text.New(g.currency+record.GrandTotal.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 1, Color: colorDark, Top: 2,
		})),
	))
	return rows
}

// paymentRows: información de pago (métodos, datos bancarios opcionales,
// condiciones).
func paymentRows(d entity.InvoiceDraft) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("INFORMACIÓN DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorDark, Top: 1,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New("Métodos de pago: "+d.PaymentMethods, props.Text{Size: 8, Top: 1}),
		)),
	}
	if d.BankDetails != "" {
		for _, bankLine := range strings.Split(d.BankDetails, "\n") {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(bankLine, props.Text{Size: 7.5, Color: colorGray, Top: 0.5, Left: 3}),
			)))
		}
	}
	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New("Condiciones: "+d.PaymentTerms, props.Text{Size: 8, Top: 1}),
	)))
	return rows
}
