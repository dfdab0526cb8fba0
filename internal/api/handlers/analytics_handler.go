package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jordibrook/marketing-api/internal/service"
	"github.com/jordibrook/marketing-api/internal/transfer"
)

type AnalyticsHandler struct {
	s service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{s: s}
}

func (h *AnalyticsHandler) ListPostAnalytics(c *fiber.Ctx) error {
	userID := GetUserID(c)

	filter := &transfer.AnalyticsFilter{
		Platform: c.Query("platform"),
		From:     parseDate(c.Query("from")),
		To:       parseDate(c.Query("to")),
	}

	rows, err := h.s.List(c.Context(), userID, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(rows)
}

func (h *AnalyticsHandler) Performance(c *fiber.Ctx) error {
	userID := GetUserID(c)

	performance, err := h.s.Performance(c.Context(), userID, c.Query("platform"), c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(performance)
}
