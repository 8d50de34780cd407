package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// respondError translates service errors into the JSON error envelope.
// Anything that is not a *fiber.Error is an unexpected store failure.
func respondError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	log.Printf("💥 [HTTP] internal error on %s: %v", c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
