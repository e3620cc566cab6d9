package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/stratera/pos-api/internal/application/dto"
	"github.com/stratera/pos-api/internal/application/reports"
	"github.com/stratera/pos-api/internal/domain"
)

// ReportHandler serves the aggregation endpoints (protected, manager+).
type ReportHandler struct {
	reports *reports.ReportUseCase
	export  *reports.ExportUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.ReportUseCase, export *reports.ExportUseCase) *ReportHandler {
	return &ReportHandler{reports: uc, export: export}
}

// Summary returns revenue, profit and transaction totals for a window.
// GET /api/reports/summary
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query"})
	}
	out, err := h.reports.Summary(c.Context(), req)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// TopProducts returns the best sellers of a window.
// GET /api/reports/top-products
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query"})
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.reports.TopProducts(c.Context(), req, limit)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// PaymentMethods returns the per-method breakdown of a window.
// GET /api/reports/payment-methods
func (h *ReportHandler) PaymentMethods(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query"})
	}
	out, err := h.reports.PaymentMethods(c.Context(), req)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// DailyTrend returns the zero-filled per-day revenue series of a window.
// GET /api/reports/daily-trend
func (h *ReportHandler) DailyTrend(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query"})
	}
	out, err := h.reports.DailyTrend(c.Context(), req)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// StockStatus classifies the active catalogue by stock level.
// GET /api/reports/stock-status
func (h *ReportHandler) StockStatus(c *fiber.Ctx) error {
	out, err := h.reports.StockStatus(c.Context())
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// ExportSales downloads the sales of a window as CSV.
// GET /api/reports/export/sales
func (h *ReportHandler) ExportSales(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query"})
	}
	data, filename, err := h.export.SalesCSV(c.Context(), req)
	if err != nil {
		return reportError(c, err)
	}
	return sendCSV(c, data, filename)
}

// ExportInventory downloads the active catalogue as CSV.
// GET /api/reports/export/inventory
func (h *ReportHandler) ExportInventory(c *fiber.Ctx) error {
	data, filename, err := h.export.InventoryCSV(c.Context())
	if err != nil {
		return reportError(c, err)
	}
	return sendCSV(c, data, filename)
}

func sendCSV(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
