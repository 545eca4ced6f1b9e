package handler

import (
	"strconv"

	"go-parts-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SummaryHandler struct {
	service service.SummaryService
}

func NewSummaryHandler(s service.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: s}
}

// GetFinancialSummary returns revenue, COGS and profit totals over all transactions
func (h *SummaryHandler) GetFinancialSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetFinancialSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7)
func (h *SummaryHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(service.DefaultMovementDays)))
	if err != nil || days <= 0 {
		days = service.DefaultMovementDays
	}

	data, err := h.service.GetStockMovement(c.UserContext(), days)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}
