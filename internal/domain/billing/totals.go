// Package billing contiene los servicios de dominio de la factura: el motor
// de totales y la validación de campos obligatorios. Todo es puro y
// determinista; la capa de presentación puede recalcular en cada pulsación.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/factura-express/internal/domain/entity"
)

// Totals agrupa los montos derivados de un borrador. Los valores son exactos
// (sin redondear); el redondeo a dos decimales ocurre solo al formatear, de
// modo que recalcular nunca acumula error de redondeo.
type Totals struct {
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals deriva los totales de una lista de líneas y los tres ajustes:
//
//	Subtotal   = Σ (Quantity * UnitPrice)
//	TaxAmount  = Subtotal * TaxRate / 100
//	GrandTotal = Subtotal + TaxAmount - DiscountAmount + ShippingCharges
//
// No valida signos: confía en que la superficie de entrada rechazó ajustes
// negativos. TaxRate = 0 produce TaxAmount = 0; descuento y envío en 0
// participan igualmente en la suma.
func ComputeTotals(items []entity.LineItem, taxRate, discountAmount, shippingCharges decimal.Decimal) Totals {
	var subtotal decimal.Decimal
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}
	taxAmount := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100))
	grandTotal := subtotal.Add(taxAmount).Sub(discountAmount).Add(shippingCharges)
	return Totals{Subtotal: subtotal, TaxAmount: taxAmount, GrandTotal: grandTotal}
}

// ComputeDraftTotals es el atajo sobre un borrador completo.
func ComputeDraftTotals(d entity.InvoiceDraft) Totals {
	return ComputeTotals(d.Items, d.TaxRate, d.DiscountAmount, d.ShippingCharges)
}

// CoerceNumber convierte la entrada libre del formulario en un decimal.
// Entrada vacía o no numérica vale 0: una fila a medio escribir nunca debe
// tumbar la vista previa en vivo.
func CoerceNumber(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
