package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factura-express/internal/application/dto"
	"github.com/jhoicas/factura-express/internal/application/session"
	"github.com/jhoicas/factura-express/internal/domain"
)

// SessionHandler maneja las operaciones sobre la sesión de edición: el
// borrador, sus líneas, los totales en vivo y las transiciones
// envío / volver a edición.
type SessionHandler struct {
	uc       *session.UseCase
	validate *validator.Validate
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *session.UseCase) *SessionHandler {
	return &SessionHandler{uc: uc, validate: validator.New()}
}

// sessionResponse arma el estado completo: modo + borrador + totales en vivo.
func (h *SessionHandler) sessionResponse() dto.SessionResponse {
	return dto.SessionResponse{
		Mode:   string(h.uc.Mode()),
		Draft:  dto.NewDraftResponse(h.uc.Draft()),
		Totals: dto.NewTotalsResponse(h.uc.Totals()),
	}
}

// Get devuelve el estado completo de la sesión.
// GET /api/session
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.sessionResponse())
}

// ReplaceDraft sincroniza el borrador completo desde el formulario.
// PUT /api/session/draft
func (h *SessionHandler) ReplaceDraft(c *fiber.Ctx) error {
	var in dto.DraftPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// La superficie de entrada rechaza ajustes negativos; el motor de totales
	// no vuelve a validar signos.
	if err := h.validate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.ReplaceDraft(in.ToEntity()); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(h.sessionResponse())
}

// UpdateField reemplaza un campo escalar del borrador.
// PATCH /api/session/draft/field
func (h *SessionHandler) UpdateField(c *fiber.Ctx) error {
	var in dto.FieldUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateField(in.Field, in.Value); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(h.sessionResponse())
}

// AddItem agrega una línea con valores por defecto.
// POST /api/session/items
func (h *SessionHandler) AddItem(c *fiber.Ctx) error {
	if err := h.uc.AddItem(); err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.sessionResponse())
}

// UpdateItem reemplaza un atributo de una línea.
// PATCH /api/session/items/:index
func (h *SessionHandler) UpdateItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	var in dto.FieldUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateItem(index, in.Field, in.Value); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(h.sessionResponse())
}

// RemoveItem elimina una línea. Quitar la última responde 409.
// DELETE /api/session/items/:index
func (h *SessionHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	if err := h.uc.RemoveItem(index); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(h.sessionResponse())
}

// Totals devuelve los totales en vivo del borrador.
// GET /api/session/totals
func (h *SessionHandler) Totals(c *fiber.Ctx) error {
	return c.JSON(dto.NewTotalsResponse(h.uc.Totals()))
}

// Submit valida y congela el borrador. Si faltan campos obligatorios
// responde 422 con sus identificadores y la sesión sigue en edición.
// POST /api/session/submit
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	record, missing, err := h.uc.Submit()
	if err != nil {
		return mapDomainError(c, err)
	}
	if len(missing) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationResponse{
			Code:          "MISSING_FIELDS",
			Message:       "complete los campos obligatorios antes de generar la factura",
			MissingFields: missing,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRecordResponse(record))
}

// Back regresa de vista previa a edición.
// POST /api/session/back
func (h *SessionHandler) Back(c *fiber.Ctx) error {
	h.uc.Back()
	return c.JSON(h.sessionResponse())
}

// mapDomainError traduce errores de dominio a estados HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case domain.ErrLastItem:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LAST_ITEM", Message: "la factura debe conservar al menos un ítem"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "operación no permitida en vista previa; vuelva a edición"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
