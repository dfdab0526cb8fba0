package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jordibrook/marketing-api/internal/service"
	"github.com/jordibrook/marketing-api/internal/transfer"
)

type OnboardingHandler struct {
	s service.OnboardingService
}

func NewOnboardingHandler(s service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{s: s}
}

func (h *OnboardingHandler) Submit(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var submission transfer.OnboardingSubmission
	if err := c.BodyParser(&submission); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.s.Save(c.Context(), userID, &submission); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "onboarding data saved",
	})
}

func (h *OnboardingHandler) Get(c *fiber.Ctx) error {
	userID := GetUserID(c)

	aggregate, err := h.s.Get(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(aggregate)
}
