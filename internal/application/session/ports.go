package session

import (
	"context"

	"github.com/jhoicas/factura-express/internal/domain/billing"
	"github.com/jhoicas/factura-express/internal/domain/entity"
)

// RecordPDFGenerator genera el documento imprimible de una factura enviada.
// La implementación vive en infrastructure/pdf (Maroto).
type RecordPDFGenerator interface {
	GenerateRecordPDF(ctx context.Context, record *entity.InvoiceRecord) ([]byte, error)
}

// RecordSource expone las facturas enviadas al caso de uso de PDF.
// *UseCase la implementa.
type RecordSource interface {
	Record(id string) (*entity.InvoiceRecord, error)
}

// Validator reporta los campos obligatorios vacíos de un borrador. La sesión
// delega aquí la regla de envío; la implementación es billing.MissingFields.
type Validator func(entity.InvoiceDraft) []string

var _ Validator = billing.MissingFields
