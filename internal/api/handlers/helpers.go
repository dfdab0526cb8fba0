package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jordibrook/marketing-api/internal/service"
	"github.com/jordibrook/marketing-api/pkg/validate"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// respondError maps service errors onto HTTP statuses: field-level
// validation failures become an itemized 400, ErrNotFound a generic
// 404, anything else a 500 with no internal detail.
func respondError(c *fiber.Ctx, err error) error {
	var fieldErrs validate.FieldErrors
	if errors.As(err, &fieldErrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": fieldErrs,
		})
	}

	if errors.Is(err, service.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not found",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "something went wrong",
	})
}

// parseDate accepts a date or RFC 3339 timestamp query value.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		return &ts
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return &ts
	}
	return nil
}
