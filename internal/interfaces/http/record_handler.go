package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factura-express/internal/application/dto"
	"github.com/jhoicas/factura-express/internal/application/session"
)

// RecordHandler expone el historial de facturas enviadas y su PDF.
type RecordHandler struct {
	uc    *session.UseCase
	pdfUC *session.PDFUseCase
}

// NewRecordHandler construye el handler.
func NewRecordHandler(uc *session.UseCase, pdfUC *session.PDFUseCase) *RecordHandler {
	return &RecordHandler{uc: uc, pdfUC: pdfUC}
}

// List devuelve el historial completo, de la más antigua a la más reciente.
// GET /api/invoices
func (h *RecordHandler) List(c *fiber.Ctx) error {
	records := h.uc.Records()
	out := make([]dto.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.NewRecordResponse(r))
	}
	return c.JSON(out)
}

// GetByID devuelve una factura enviada.
// GET /api/invoices/:id
func (h *RecordHandler) GetByID(c *fiber.Ctx) error {
	record, err := h.uc.Record(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.NewRecordResponse(record))
}

// DownloadPDF genera y descarga el documento imprimible de la factura.
// GET /api/invoices/:id/pdf
func (h *RecordHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadRecordPDF(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
