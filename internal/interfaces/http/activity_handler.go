package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/application/usecase"
)

// ActivityHandler serves the audit trail (protected, manager+).
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler builds the handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// GET /api/activity
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return crudError(c, err)
	}
	return c.JSON(out)
}
