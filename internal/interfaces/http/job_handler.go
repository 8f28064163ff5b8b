package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fresco-api/internal/application/dto"
	"github.com/jhoicas/fresco-api/internal/application/jobs"
	"github.com/jhoicas/fresco-api/internal/domain"
)

// JobHandler disparo manual de los trabajos programados (solo admin/manager).
type JobHandler struct {
	runner *jobs.Runner
}

// NewJobHandler construye el handler.
func NewJobHandler(runner *jobs.Runner) *JobHandler {
	return &JobHandler{runner: runner}
}

// RunPricing godoc
// @Summary      Ejecutar ahora la corrida de sugerencias de precio
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PricingRunResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/jobs/pricing/run [post]
func (h *JobHandler) RunPricing(c *fiber.Ctx) error {
	out, err := h.runner.RunPricingNow(c.Context())
	if err != nil {
		if err == domain.ErrRunInProgress {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RUN_IN_PROGRESS", Message: "ya hay una corrida en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// RunExpiry godoc
// @Summary      Ejecutar ahora el monitor de vencimientos
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MonitorRunResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/jobs/expiry/run [post]
func (h *JobHandler) RunExpiry(c *fiber.Ctx) error {
	out, err := h.runner.RunExpiryNow(c.Context())
	if err != nil {
		if err == domain.ErrRunInProgress {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RUN_IN_PROGRESS", Message: "ya hay una corrida en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
