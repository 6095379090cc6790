package session_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factura-express/internal/application/session"
	"github.com/jhoicas/factura-express/internal/domain"
	"github.com/jhoicas/factura-express/internal/domain/billing"
	"github.com/jhoicas/factura-express/internal/domain/entity"
)

// validDraft devuelve un borrador listo para envío, con el escenario Widget
// (2 x 10.00, impuesto 10%, envío 5).
func validDraft() entity.InvoiceDraft {
	return entity.InvoiceDraft{
		InvoiceID:       "INV-001",
		InvoiceDate:     "2026-08-29",
		CompanyName:     "ACME S.A.S.",
		CompanyAddress:  "Calle 1 # 2-3",
		ClientName:      "Cliente Ltda.",
		ClientAddress:   "Carrera 4 # 5-6",
		TaxRate:         decimal.NewFromInt(10),
		ShippingCharges: decimal.NewFromInt(5),
		PaymentMethods:  "Transferencia bancaria",
		PaymentTerms:    "Net 30",
		Items: []entity.LineItem{
			{Description: "Widget", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado inicial
// ──────────────────────────────────────────────────────────────────────────────

// La sesión nace en edición, con una línea por defecto ("", 1, 0) y sin
// historial.
func TestSession_EstadoInicial(t *testing.T) {
	uc := session.NewUseCase()

	assert.Equal(t, entity.ModeEditing, uc.Mode())
	assert.Empty(t, uc.Records())

	draft := uc.Draft()
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "", draft.Items[0].Description)
	assert.True(t, draft.Items[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, draft.Items[0].UnitPrice.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas: invariante de mínimo una
// ──────────────────────────────────────────────────────────────────────────────

// Tras cualquier secuencia de add/remove la factura conserva al menos una
// línea.
func TestSession_InvarianteMinimoUnaLinea(t *testing.T) {
	uc := session.NewUseCase()

	require.NoError(t, uc.AddItem())
	require.NoError(t, uc.AddItem())
	require.NoError(t, uc.RemoveItem(0))
	require.NoError(t, uc.RemoveItem(1))
	require.Len(t, uc.Draft().Items, 1)

	// Quitar la única línea restante se rechaza y el estado no cambia.
	err := uc.RemoveItem(0)
	assert.ErrorIs(t, err, domain.ErrLastItem)
	assert.Len(t, uc.Draft().Items, 1)
}

func TestSession_RemoveIndiceFueraDeRango(t *testing.T) {
	uc := session.NewUseCase()
	require.NoError(t, uc.AddItem())

	assert.ErrorIs(t, uc.RemoveItem(-1), domain.ErrNotFound)
	assert.ErrorIs(t, uc.RemoveItem(5), domain.ErrNotFound)
}

// RemoveItem conserva el orden de las líneas restantes.
func TestSession_RemoveConservaOrden(t *testing.T) {
	uc := session.NewUseCase()
	require.NoError(t, uc.UpdateItem(0, session.ItemFieldDescription, "primera"))
	require.NoError(t, uc.AddItem())
	require.NoError(t, uc.UpdateItem(1, session.ItemFieldDescription, "segunda"))
	require.NoError(t, uc.AddItem())
	require.NoError(t, uc.UpdateItem(2, session.ItemFieldDescription, "tercera"))

	require.NoError(t, uc.RemoveItem(1))

	items := uc.Draft().Items
	require.Len(t, items, 2)
	assert.Equal(t, "primera", items[0].Description)
	assert.Equal(t, "tercera", items[1].Description)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización de campos y coerción
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_UpdateFieldEscalares(t *testing.T) {
	uc := session.NewUseCase()

	require.NoError(t, uc.UpdateField("companyName", "ACME S.A.S."))
	require.NoError(t, uc.UpdateField("taxRate", "19"))

	draft := uc.Draft()
	assert.Equal(t, "ACME S.A.S.", draft.CompanyName)
	assert.True(t, draft.TaxRate.Equal(decimal.NewFromInt(19)))
}

// Los campos numéricos coercionan la entrada no numérica a 0 en lugar de
// fallar: la vista previa en vivo nunca se rompe.
func TestSession_UpdateFieldCoercionNumerica(t *testing.T) {
	uc := session.NewUseCase()

	require.NoError(t, uc.UpdateField("taxRate", "no-es-numero"))
	require.NoError(t, uc.UpdateField("discountAmount", ""))

	draft := uc.Draft()
	assert.True(t, draft.TaxRate.IsZero())
	assert.True(t, draft.DiscountAmount.IsZero())
}

func TestSession_UpdateFieldDesconocido(t *testing.T) {
	uc := session.NewUseCase()
	assert.ErrorIs(t, uc.UpdateField("campoInventado", "x"), domain.ErrInvalidInput)
}

func TestSession_UpdateItemCoercion(t *testing.T) {
	uc := session.NewUseCase()

	require.NoError(t, uc.UpdateItem(0, session.ItemFieldDescription, "Widget"))
	require.NoError(t, uc.UpdateItem(0, session.ItemFieldQuantity, "tres"))
	require.NoError(t, uc.UpdateItem(0, session.ItemFieldUnitPrice, "10.50"))

	it := uc.Draft().Items[0]
	assert.Equal(t, "Widget", it.Description)
	assert.True(t, it.Quantity.IsZero(), "cantidad no numérica coerciona a 0")
	assert.True(t, it.UnitPrice.Equal(decimal.RequireFromString("10.50")))
}

func TestSession_ReplaceDraftSinLineasRechazado(t *testing.T) {
	uc := session.NewUseCase()
	d := validDraft()
	d.Items = nil

	assert.ErrorIs(t, uc.ReplaceDraft(d), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales en vivo
// ──────────────────────────────────────────────────────────────────────────────

// Totals siempre recalcula sobre el borrador actual; nunca hay valores
// obsoletos.
func TestSession_TotalesSiempreConsistentes(t *testing.T) {
	uc := session.NewUseCase()
	require.NoError(t, uc.ReplaceDraft(validDraft()))

	got := uc.Totals()
	assert.Equal(t, "20.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", got.TaxAmount.StringFixed(2))
	assert.Equal(t, "27.00", got.GrandTotal.StringFixed(2))

	// Un teclazo más y el siguiente cálculo ya lo refleja.
	require.NoError(t, uc.UpdateItem(0, session.ItemFieldQuantity, "3"))
	assert.Equal(t, "30.00", uc.Totals().Subtotal.StringFixed(2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío y máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

// Envío con campos vacíos: la sesión sigue en edición, no se crea registro y
// el reporte trae exactamente los campos vacíos.
func TestSession_SubmitIncompletoSigueEditando(t *testing.T) {
	uc := session.NewUseCase()
	d := validDraft()
	d.ClientName = ""
	require.NoError(t, uc.ReplaceDraft(d))

	record, missing, err := uc.Submit()

	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Equal(t, []string{"clientName"}, missing)
	assert.Equal(t, entity.ModeEditing, uc.Mode())
	assert.Empty(t, uc.Records())
}

// Envío exitoso: pasa a vista previa y congela totales idénticos a una
// llamada directa al motor sobre los mismos datos.
func TestSession_SubmitExitosoCongelaTotales(t *testing.T) {
	uc := session.NewUseCase()
	d := validDraft()
	require.NoError(t, uc.ReplaceDraft(d))

	record, missing, err := uc.Submit()

	require.NoError(t, err)
	require.Empty(t, missing)
	require.NotNil(t, record)
	assert.Equal(t, entity.ModePreviewing, uc.Mode())
	assert.NotEmpty(t, record.ID)

	direct := billing.ComputeTotals(d.Items, d.TaxRate, d.DiscountAmount, d.ShippingCharges)
	assert.True(t, record.Subtotal.Equal(direct.Subtotal))
	assert.True(t, record.TaxAmount.Equal(direct.TaxAmount))
	assert.True(t, record.GrandTotal.Equal(direct.GrandTotal))

	require.Len(t, uc.Records(), 1)
	assert.Same(t, record, uc.Records()[0])
}

// Reenviar desde vista previa se rechaza: hay que volver a edición primero.
func TestSession_SubmitEnVistaPreviaRechazado(t *testing.T) {
	uc := session.NewUseCase()
	require.NoError(t, uc.ReplaceDraft(validDraft()))
	_, _, err := uc.Submit()
	require.NoError(t, err)

	_, _, err = uc.Submit()
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Las mutaciones del borrador se rechazan en vista previa.
func TestSession_MutacionesEnVistaPreviaRechazadas(t *testing.T) {
	uc := session.NewUseCase()
	require.NoError(t, uc.ReplaceDraft(validDraft()))
	_, _, err := uc.Submit()
	require.NoError(t, err)

	assert.ErrorIs(t, uc.AddItem(), domain.ErrConflict)
	assert.ErrorIs(t, uc.UpdateField("companyName", "otra"), domain.ErrConflict)
	assert.ErrorIs(t, uc.RemoveItem(0), domain.ErrConflict)
	assert.ErrorIs(t, uc.UpdateItem(0, session.ItemFieldDescription, "x"), domain.ErrConflict)
	assert.ErrorIs(t, uc.ReplaceDraft(validDraft()), domain.ErrConflict)
}

// Back regresa a edición sin tocar borrador ni historial, y el registro ya
// congelado no cambia aunque el borrador siga editándose.
func TestSession_BackConservaRegistro(t *testing.T) {
	uc := session.NewUseCase()
	require.NoError(t, uc.ReplaceDraft(validDraft()))
	record, _, err := uc.Submit()
	require.NoError(t, err)

	uc.Back()
	assert.Equal(t, entity.ModeEditing, uc.Mode())
	require.Len(t, uc.Records(), 1)

	// Editar después de volver no altera la instantánea.
	require.NoError(t, uc.UpdateItem(0, session.ItemFieldDescription, "otra cosa"))
	require.NoError(t, uc.UpdateField("taxRate", "50"))
	assert.Equal(t, "Widget", record.Draft.Items[0].Description)
	assert.Equal(t, "2.00", record.TaxAmount.StringFixed(2))
}

// Back en edición es un no-op.
func TestSession_BackEnEdicionEsNoOp(t *testing.T) {
	uc := session.NewUseCase()
	uc.Back()
	assert.Equal(t, entity.ModeEditing, uc.Mode())
}

// El historial es append-only: cada envío agrega un registro al final.
func TestSession_HistorialAppendOnly(t *testing.T) {
	uc := session.NewUseCase()
	require.NoError(t, uc.ReplaceDraft(validDraft()))
	first, _, err := uc.Submit()
	require.NoError(t, err)

	uc.Back()
	require.NoError(t, uc.UpdateField("invoiceId", "INV-002"))
	second, _, err := uc.Submit()
	require.NoError(t, err)

	records := uc.Records()
	require.Len(t, records, 2)
	assert.Same(t, first, records[0], "el más antiguo primero")
	assert.Same(t, second, records[1])
	assert.Equal(t, "INV-001", records[0].Draft.InvoiceID)
	assert.Equal(t, "INV-002", records[1].Draft.InvoiceID)
}

// Record busca por ID; ID inexistente retorna ErrNotFound.
func TestSession_RecordPorID(t *testing.T) {
	uc := session.NewUseCase()
	require.NoError(t, uc.ReplaceDraft(validDraft()))
	record, _, err := uc.Submit()
	require.NoError(t, err)

	found, err := uc.Record(record.ID)
	require.NoError(t, err)
	assert.Same(t, record, found)

	_, err = uc.Record("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Draft devuelve una copia: mutarla no afecta la sesión.
func TestSession_DraftEsCopia(t *testing.T) {
	uc := session.NewUseCase()
	copia := uc.Draft()
	copia.Items[0].Description = "mutada por fuera"

	assert.Equal(t, "", uc.Draft().Items[0].Description)
}
