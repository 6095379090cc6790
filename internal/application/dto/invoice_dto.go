package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/factura-express/internal/domain/billing"
	"github.com/jhoicas/factura-express/internal/domain/entity"
)

// ErrorResponse envoltura estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldUpdateRequest body para PATCH /api/session/draft/field y
// PATCH /api/session/items/:index. Value siempre viaja como texto: es la
// entrada cruda del input; la coerción numérica la hace el dominio.
type FieldUpdateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// LineItemPayload línea dentro del borrador completo. Las cantidades viajan
// como números JSON ya parseados; aquí el validador exige que no sean
// negativas (la leniencia de coerción aplica solo a la entrada por teclazo).
type LineItemPayload struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

// DraftPayload body para PUT /api/session/draft: el estado completo del
// formulario. Los ajustes no pueden ser negativos y debe haber al menos una
// línea (tags de go-playground/validator).
type DraftPayload struct {
	InvoiceID   string `json:"invoiceId"`
	InvoiceDate string `json:"invoiceDate"`

	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyTaxID   string `json:"companyTaxId"`

	ClientName    string `json:"clientName"`
	ClientAddress string `json:"clientAddress"`
	ClientPhone   string `json:"clientPhone"`
	ClientTaxID   string `json:"clientTaxId"`

	TaxRate         float64 `json:"taxRate" validate:"gte=0"`
	DiscountAmount  float64 `json:"discountAmount" validate:"gte=0"`
	ShippingCharges float64 `json:"shippingCharges" validate:"gte=0"`

	PaymentMethods string `json:"paymentMethods"`
	BankDetails    string `json:"bankDetails"`
	PaymentTerms   string `json:"paymentTerms"`

	Items []LineItemPayload `json:"items" validate:"min=1,dive"`
}

// ToEntity convierte el payload en el borrador de dominio.
func (p DraftPayload) ToEntity() entity.InvoiceDraft {
	d := entity.InvoiceDraft{
		InvoiceID:       p.InvoiceID,
		InvoiceDate:     p.InvoiceDate,
		CompanyName:     p.CompanyName,
		CompanyAddress:  p.CompanyAddress,
		CompanyPhone:    p.CompanyPhone,
		CompanyTaxID:    p.CompanyTaxID,
		ClientName:      p.ClientName,
		ClientAddress:   p.ClientAddress,
		ClientPhone:     p.ClientPhone,
		ClientTaxID:     p.ClientTaxID,
		TaxRate:         decimal.NewFromFloat(p.TaxRate),
		DiscountAmount:  decimal.NewFromFloat(p.DiscountAmount),
		ShippingCharges: decimal.NewFromFloat(p.ShippingCharges),
		PaymentMethods:  p.PaymentMethods,
		BankDetails:     p.BankDetails,
		PaymentTerms:    p.PaymentTerms,
		Items:           make([]entity.LineItem, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		d.Items = append(d.Items, entity.LineItem{
			Description: it.Description,
			Quantity:    decimal.NewFromFloat(it.Quantity),
			UnitPrice:   decimal.NewFromFloat(it.UnitPrice),
		})
	}
	return d
}

// TotalsResponse montos derivados, redondeados a dos decimales solo aquí,
// en la frontera de formato.
type TotalsResponse struct {
	Subtotal   string `json:"subtotal"`
	TaxAmount  string `json:"taxAmount"`
	GrandTotal string `json:"grandTotal"`
}

// NewTotalsResponse formatea los totales exactos del motor.
func NewTotalsResponse(t billing.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:   t.Subtotal.StringFixed(2),
		TaxAmount:  t.TaxAmount.StringFixed(2),
		GrandTotal: t.GrandTotal.StringFixed(2),
	}
}

// LineItemResponse línea del borrador en respuestas.
type LineItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      string          `json:"amount"` // Quantity * UnitPrice, dos decimales
}

// DraftResponse borrador completo en respuestas.
type DraftResponse struct {
	InvoiceID   string `json:"invoiceId"`
	InvoiceDate string `json:"invoiceDate"`

	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyPhone   string `json:"companyPhone,omitempty"`
	CompanyTaxID   string `json:"companyTaxId,omitempty"`

	ClientName    string `json:"clientName"`
	ClientAddress string `json:"clientAddress"`
	ClientPhone   string `json:"clientPhone,omitempty"`
	ClientTaxID   string `json:"clientTaxId,omitempty"`

	TaxRate         decimal.Decimal `json:"taxRate"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	ShippingCharges decimal.Decimal `json:"shippingCharges"`

	PaymentMethods string `json:"paymentMethods"`
	BankDetails    string `json:"bankDetails,omitempty"`
	PaymentTerms   string `json:"paymentTerms"`

	Items []LineItemResponse `json:"items"`
}

// NewDraftResponse mapea el borrador de dominio.
func NewDraftResponse(d entity.InvoiceDraft) DraftResponse {
	resp := DraftResponse{
		InvoiceID:       d.InvoiceID,
		InvoiceDate:     d.InvoiceDate,
		CompanyName:     d.CompanyName,
		CompanyAddress:  d.CompanyAddress,
		CompanyPhone:    d.CompanyPhone,
		CompanyTaxID:    d.CompanyTaxID,
		ClientName:      d.ClientName,
		ClientAddress:   d.ClientAddress,
		ClientPhone:     d.ClientPhone,
		ClientTaxID:     d.ClientTaxID,
		TaxRate:         d.TaxRate,
		DiscountAmount:  d.DiscountAmount,
		ShippingCharges: d.ShippingCharges,
		PaymentMethods:  d.PaymentMethods,
		BankDetails:     d.BankDetails,
		PaymentTerms:    d.PaymentTerms,
		Items:           make([]LineItemResponse, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount().StringFixed(2),
		})
	}
	return resp
}

// SessionResponse estado completo de la sesión para GET /api/session:
// modo actual, borrador y totales en vivo.
type SessionResponse struct {
	Mode   string         `json:"mode"`
	Draft  DraftResponse  `json:"draft"`
	Totals TotalsResponse `json:"totals"`
}

// RecordResponse factura enviada (instantánea inmutable con totales
// congelados).
type RecordResponse struct {
	ID         string        `json:"id"`
	CreatedAt  string        `json:"createdAt"`
	Draft      DraftResponse `json:"draft"`
	Subtotal   string        `json:"subtotal"`
	TaxAmount  string        `json:"taxAmount"`
	GrandTotal string        `json:"grandTotal"`
}

// NewRecordResponse mapea un registro congelado.
func NewRecordResponse(r *entity.InvoiceRecord) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		Draft:      NewDraftResponse(r.Draft),
		Subtotal:   r.Subtotal.StringFixed(2),
		TaxAmount:  r.TaxAmount.StringFixed(2),
		GrandTotal: r.GrandTotal.StringFixed(2),
	}
}

// ValidationResponse reporte de envío bloqueado: los identificadores exactos
// de los campos obligatorios vacíos, para que el formulario los marque.
type ValidationResponse struct {
	Code          string   `json:"code"`
	Message       string   `json:"message"`
	MissingFields []string `json:"missingFields"`
}
