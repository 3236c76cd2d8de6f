package middlewares

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"backoffice-backend/apperrors"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
// Domain errors map onto the taxonomy: validation 422, conflict 409,
// authorization 403, persistence 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 2) Validation errors from the validator (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 3) Domain error taxonomy
	var domainValidation *apperrors.ValidationError
	if errors.As(err, &domainValidation) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": domainValidation.Message})
	}
	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": conflict.Message})
	}
	var authz *apperrors.AuthorizationError
	if errors.As(err, &authz) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": authz.Message})
	}
	var persistence *apperrors.PersistenceError
	if errors.As(err, &persistence) {
		log.Printf("persistence error: %v", persistence)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": persistence.Message})
	}

	// 4) Unknown errors (500)
	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
