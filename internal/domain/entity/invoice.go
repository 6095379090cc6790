package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionMode indica si la sesión está editando el borrador o mostrando la
// vista previa del documento.
type SessionMode string

const (
	ModeEditing    SessionMode = "EDITING"
	ModePreviewing SessionMode = "PREVIEWING"
)

// LineItem es una línea de la factura (descripción, cantidad, precio unitario).
// El importe de línea (Quantity * UnitPrice) es derivado y nunca se almacena.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Amount devuelve el importe de la línea.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// NewLineItem crea una línea con los valores por defecto del formulario:
// descripción vacía, cantidad 1, precio 0.
func NewLineItem() LineItem {
	return LineItem{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.Zero}
}

// InvoiceDraft es el borrador en edición. Mutable, sin totales: los totales
// se derivan bajo demanda para que nunca queden desactualizados.
type InvoiceDraft struct {
	InvoiceID   string
	InvoiceDate string

	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyTaxID   string

	ClientName    string
	ClientAddress string
	ClientPhone   string
	ClientTaxID   string

	TaxRate         decimal.Decimal // porcentaje, ej. 19 = 19%
	DiscountAmount  decimal.Decimal // monto absoluto
	ShippingCharges decimal.Decimal // monto absoluto

	PaymentMethods string
	BankDetails    string
	PaymentTerms   string

	Items []LineItem // orden de inserción = orden de impresión; mínimo 1
}

// NewDraft crea un borrador vacío con una línea por defecto.
func NewDraft() InvoiceDraft {
	return InvoiceDraft{Items: []LineItem{NewLineItem()}}
}

// Clone devuelve una copia profunda del borrador (las líneas se copian,
// no se comparte el slice).
func (d InvoiceDraft) Clone() InvoiceDraft {
	c := d
	c.Items = make([]LineItem, len(d.Items))
	copy(c.Items, d.Items)
	return c
}

// InvoiceRecord es la instantánea inmutable de un borrador enviado, con los
// totales congelados al momento del envío.
type InvoiceRecord struct {
	ID         string
	Draft      InvoiceDraft
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
	CreatedAt  time.Time
}
