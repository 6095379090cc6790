package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factura-express/internal/application/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC *session.UseCase
	PDFUC     *session.PDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesión de edición (borrador, líneas, totales en vivo, transiciones)
	sess := api.Group("/session")
	sessionHandler := NewSessionHandler(deps.SessionUC)
	sess.Get("/", sessionHandler.Get)
	sess.Put("/draft", sessionHandler.ReplaceDraft)
	sess.Patch("/draft/field", sessionHandler.UpdateField)
	sess.Post("/items", sessionHandler.AddItem)
	sess.Patch("/items/:index", sessionHandler.UpdateItem)
	sess.Delete("/items/:index", sessionHandler.RemoveItem)
	sess.Get("/totals", sessionHandler.Totals)
	sess.Post("/submit", sessionHandler.Submit)
	sess.Post("/back", sessionHandler.Back)

	// Historial de facturas enviadas (inmutables) y su PDF
	invoices := api.Group("/invoices")
	recordHandler := NewRecordHandler(deps.SessionUC, deps.PDFUC)
	invoices.Get("/", recordHandler.List)
	invoices.Get("/:id", recordHandler.GetByID)
	invoices.Get("/:id/pdf", recordHandler.DownloadPDF)
}
