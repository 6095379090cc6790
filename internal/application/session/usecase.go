// Package session implementa la sesión de edición de la factura: un único
// borrador mutable, la bandera de modo (edición / vista previa) y el
// historial de facturas enviadas. Toda mutación pasa por las operaciones
// definidas aquí; no existe estado global.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/factura-express/internal/domain"
	"github.com/jhoicas/factura-express/internal/domain/billing"
	"github.com/jhoicas/factura-express/internal/domain/entity"
)

// Identificadores de los campos escalares del borrador, tal como los envía
// el formulario.
const (
	fieldCompanyPhone    = "companyPhone"
	fieldCompanyTaxID    = "companyTaxId"
	fieldClientPhone     = "clientPhone"
	fieldClientTaxID     = "clientTaxId"
	fieldTaxRate         = "taxRate"
	fieldDiscountAmount  = "discountAmount"
	fieldShippingCharges = "shippingCharges"
	fieldBankDetails     = "bankDetails"
)

// Identificadores de los atributos de una línea.
const (
	ItemFieldDescription = "description"
	ItemFieldQuantity    = "quantity"
	ItemFieldUnitPrice   = "unitPrice"
)

// UseCase es la sesión de facturación. Un solo escritor lógico (el usuario);
// el mutex únicamente serializa las goroutines por conexión de Fiber sobre
// ese único objeto.
type UseCase struct {
	mu       sync.Mutex
	draft    entity.InvoiceDraft
	mode     entity.SessionMode
	records  []*entity.InvoiceRecord
	validate Validator
}

// NewUseCase construye la sesión: borrador vacío con una línea por defecto,
// modo edición, historial vacío.
func NewUseCase() *UseCase {
	return &UseCase{
		draft:    entity.NewDraft(),
		mode:     entity.ModeEditing,
		validate: billing.MissingFields,
	}
}

// Mode devuelve el modo actual de la sesión.
func (uc *UseCase) Mode() entity.SessionMode {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.mode
}

// Draft devuelve una copia del borrador actual.
func (uc *UseCase) Draft() entity.InvoiceDraft {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.draft.Clone()
}

// Totals recalcula los totales en vivo sobre el borrador actual. Siempre
// recalcula; nunca se cachean para que no puedan quedar obsoletos.
func (uc *UseCase) Totals() billing.Totals {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return billing.ComputeDraftTotals(uc.draft)
}

// UpdateField reemplaza un campo escalar del borrador. Los campos numéricos
// (taxRate, discountAmount, shippingCharges) coercionan la entrada no
// numérica a 0. Campo desconocido retorna domain.ErrInvalidInput.
func (uc *UseCase) UpdateField(field, value string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.mode != entity.ModeEditing {
		return domain.ErrConflict
	}

	switch field {
	case billing.FieldInvoiceID:
		uc.draft.InvoiceID = value
	case billing.FieldInvoiceDate:
		uc.draft.InvoiceDate = value
	case billing.FieldCompanyName:
		uc.draft.CompanyName = value
	case billing.FieldCompanyAddress:
		uc.draft.CompanyAddress = value
	case fieldCompanyPhone:
		uc.draft.CompanyPhone = value
	case fieldCompanyTaxID:
		uc.draft.CompanyTaxID = value
	case billing.FieldClientName:
		uc.draft.ClientName = value
	case billing.FieldClientAddress:
		uc.draft.ClientAddress = value
	case fieldClientPhone:
		uc.draft.ClientPhone = value
	case fieldClientTaxID:
		uc.draft.ClientTaxID = value
	case fieldTaxRate:
		uc.draft.TaxRate = billing.CoerceNumber(value)
	case fieldDiscountAmount:
		uc.draft.DiscountAmount = billing.CoerceNumber(value)
	case fieldShippingCharges:
		uc.draft.ShippingCharges = billing.CoerceNumber(value)
	case billing.FieldPaymentMethods:
		uc.draft.PaymentMethods = value
	case fieldBankDetails:
		uc.draft.BankDetails = value
	case billing.FieldPaymentTerms:
		uc.draft.PaymentTerms = value
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// AddItem agrega al final una línea con los valores por defecto ("", 1, 0).
func (uc *UseCase) AddItem() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.mode != entity.ModeEditing {
		return domain.ErrConflict
	}
	uc.draft.Items = append(uc.draft.Items, entity.NewLineItem())
	return nil
}

// RemoveItem elimina la línea en index. Quitar la última línea restante se
// rechaza con domain.ErrLastItem: la factura siempre conserva al menos una.
func (uc *UseCase) RemoveItem(index int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.mode != entity.ModeEditing {
		return domain.ErrConflict
	}
	if index < 0 || index >= len(uc.draft.Items) {
		return domain.ErrNotFound
	}
	if len(uc.draft.Items) == 1 {
		return domain.ErrLastItem
	}
	uc.draft.Items = append(uc.draft.Items[:index], uc.draft.Items[index+1:]...)
	return nil
}

// UpdateItem reemplaza un atributo de la línea en index. quantity y unitPrice
// coercionan entrada no numérica a 0.
func (uc *UseCase) UpdateItem(index int, field, value string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.mode != entity.ModeEditing {
		return domain.ErrConflict
	}
	if index < 0 || index >= len(uc.draft.Items) {
		return domain.ErrNotFound
	}
	switch field {
	case ItemFieldDescription:
		uc.draft.Items[index].Description = value
	case ItemFieldQuantity:
		uc.draft.Items[index].Quantity = billing.CoerceNumber(value)
	case ItemFieldUnitPrice:
		uc.draft.Items[index].UnitPrice = billing.CoerceNumber(value)
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// ReplaceDraft sincroniza el borrador completo desde el formulario. El
// payload ya viene validado en tipos por la capa HTTP; aquí solo se exige el
// invariante estructural de al menos una línea.
func (uc *UseCase) ReplaceDraft(d entity.InvoiceDraft) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.mode != entity.ModeEditing {
		return domain.ErrConflict
	}
	if len(d.Items) == 0 {
		return domain.ErrInvalidInput
	}
	uc.draft = d.Clone()
	return nil
}

// Submit valida el borrador y, si está completo, congela la instantánea:
// calcula los totales, crea el InvoiceRecord, lo agrega al historial y pasa
// la sesión a vista previa.
//
// Retorna:
//   - (record, nil, nil)      envío exitoso; la sesión queda en PREVIEWING.
//   - (nil, missing, nil)     faltan campos; la sesión sigue en EDITING y
//     missing trae los identificadores exactos de los campos vacíos.
//   - (nil, nil, ErrConflict) se llamó desde PREVIEWING; hay que volver a
//     edición antes de reenviar.
func (uc *UseCase) Submit() (*entity.InvoiceRecord, []string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.mode != entity.ModeEditing {
		return nil, nil, domain.ErrConflict
	}

	if missing := uc.validate(uc.draft); len(missing) > 0 {
		return nil, missing, nil
	}

	totals := billing.ComputeDraftTotals(uc.draft)
	record := &entity.InvoiceRecord{
		ID:         uuid.New().String(),
		Draft:      uc.draft.Clone(),
		Subtotal:   totals.Subtotal,
		TaxAmount:  totals.TaxAmount,
		GrandTotal: totals.GrandTotal,
		CreatedAt:  time.Now(),
	}
	uc.records = append(uc.records, record)
	uc.mode = entity.ModePreviewing
	return record, nil, nil
}

// Back regresa de vista previa a edición sin tocar el borrador ni el
// historial. En modo edición es un no-op: la operación es total.
func (uc *UseCase) Back() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.mode = entity.ModeEditing
}

// Records devuelve el historial de facturas enviadas, de la más antigua a la
// más reciente. Los registros son inmutables una vez agregados.
func (uc *UseCase) Records() []*entity.InvoiceRecord {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]*entity.InvoiceRecord, len(uc.records))
	copy(out, uc.records)
	return out
}

// Record busca una factura enviada por su ID.
func (uc *UseCase) Record(id string) (*entity.InvoiceRecord, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, r := range uc.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}
