package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/application/reports"
)

// DashboardHandler serves the landing-screen summary (protected).
type DashboardHandler struct {
	uc *reports.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *reports.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary returns today's numbers, running totals and stock alerts.
// GET /api/dashboard
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
