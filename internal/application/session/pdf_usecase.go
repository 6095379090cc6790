package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/factura-express/internal/domain"
)

// PDFUseCase genera el documento imprimible (PDF) de una factura enviada.
// Solo existe PDF para registros congelados; el borrador en edición se
// previsualiza con los totales en vivo.
type PDFUseCase struct {
	records   RecordSource
	generator RecordPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(records RecordSource, generator RecordPDFGenerator) *PDFUseCase {
	return &PDFUseCase{records: records, generator: generator}
}

// DownloadRecordPDF recupera el registro y genera su PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el registro no existe.
func (uc *PDFUseCase) DownloadRecordPDF(ctx context.Context, recordID string) (pdfBytes []byte, filename string, err error) {
	record, err := uc.records.Record(recordID)
	if err != nil {
		return nil, "", err
	}
	if record == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err = uc.generator.GenerateRecordPDF(ctx, record)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", sanitizeFilename(record.Draft.InvoiceID))
	return pdfBytes, filename, nil
}

// sanitizeFilename deja el ID de factura apto para nombre de archivo.
func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "sin-numero"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_")
	return replacer.Replace(s)
}
