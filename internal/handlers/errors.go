package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"mockmate/interview-api/internal/apperrors"
)

// respondError maps the pipeline error taxonomy to HTTP statuses:
// request-side config violations are the client's fault, everything
// else is a server-side failure, and upstream provider errors surface
// as a bad gateway with the provider's message passed through.
func respondError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrConfig):
		if apperrors.IsClient(err) {
			code = fiber.StatusBadRequest
		}
	case errors.Is(err, apperrors.ErrUpstream):
		code = fiber.StatusBadGateway
	case errors.Is(err, apperrors.ErrRender), errors.Is(err, apperrors.ErrValidation):
		code = fiber.StatusInternalServerError
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
