package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/application/usecase"
	"github.com/jhoicas/fresco-api/internal/domain"
)

// WasteHandler maneja el registro y reporte de mermas (protegido).
type WasteHandler struct {
	uc *usecase.WasteUseCase
}

// NewWasteHandler construye el handler.
func NewWasteHandler(uc *usecase.WasteUseCase) *WasteHandler {
	return &WasteHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar merma
// @Description  Descuenta la cantidad del lote y deja registro inmutable (atómico).
// @Tags         waste
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordWasteRequest  true  "batch_id, quantity, reason"
// @Success      201   {object}  dto.WasteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/waste [post]
func (h *WasteHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordWasteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BatchID == "" || in.Quantity <= 0 || in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_id, quantity (> 0) y reason son requeridos"})
	}
	out, err := h.uc.Record(c.Context(), GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason inválido: use EXPIRED, DAMAGED, SPOILED u OTHER"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "BATCH_NOT_FOUND", Message: "el lote no existe"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "la merma excede la cantidad del lote"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Report godoc
// @Summary      Reporte de mermas por rango de fechas
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD, por defecto hace 30 días)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD, por defecto hoy)"
// @Param        limit   query  int     false  "Límite de registros"  default(20)
// @Param        offset  query  int     false  "Offset"               default(0)
// @Success      200     {object}  dto.WasteReportResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/waste/report [get]
func (h *WasteHandler) Report(c *fiber.Ctx) error {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (formato YYYY-MM-DD)"})
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (formato YYYY-MM-DD)"})
		}
		// Incluir el día completo de "to".
		to = parsed.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el rango de fechas es inválido"})
	}

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
	out, err := h.uc.Report(c.Context(), from, to, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
