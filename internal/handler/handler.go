package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pixmora/pixmora-backend/internal/apperr"
	"github.com/pixmora/pixmora-backend/internal/models"
)

// respondError maps a service error to its status code with a flat
// {"error": ...} body. Unexpected errors come out as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(apperr.Status(err)).JSON(models.NewErrorResponse(apperr.ClientMessage(err)))
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse(msg))
}
