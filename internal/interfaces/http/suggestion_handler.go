package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/application/pricing"
	"github.com/jhoicas/fresco-api/internal/domain"
)

// SuggestionHandler maneja las sugerencias de descuento (protegido; aprobar y
// rechazar requieren rol manager o admin, eso lo aplica el router).
type SuggestionHandler struct {
	svc *pricing.SuggestionService
}

// NewSuggestionHandler construye el handler.
func NewSuggestionHandler(svc *pricing.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{svc: svc}
}

// List godoc
// @Summary      Listar sugerencias de descuento
// @Tags         suggestions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING, APPROVED, REJECTED o EXPIRED"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.SuggestionListResponse
// @Router       /api/suggestions [get]
func (h *SuggestionHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.svc.List(status, limit, offset)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar sugerencia de descuento
// @Description  Marca la sugerencia como APPROVED y escribe el descuento en el lote (atómico).
// @Tags         suggestions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sugerencia"
// @Success      200  {object}  dto.SuggestionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/suggestions/{id}/approve [post]
func (h *SuggestionHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.svc.Approve(c.Context(), id, GetUserID(c))
	if err != nil {
		return suggestionError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar sugerencia de descuento
// @Tags         suggestions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sugerencia"
// @Param        body  body  dto.RejectSuggestionRequest  true  "Motivo del rechazo"
// @Success      200   {object}  dto.SuggestionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suggestions/{id}/reject [post]
func (h *SuggestionHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RejectSuggestionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason es requerido"})
	}
	out, err := h.svc.Reject(c.Context(), id, GetUserID(c), in.Reason)
	if err != nil {
		return suggestionError(c, err)
	}
	return c.JSON(out)
}

func suggestionError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sugerencia no encontrada"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RESOLVED", Message: "la sugerencia ya fue resuelta"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
