package utils

import (
	validation "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pinmap-service/internal/pkg/errors"
)

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// SendError maps an AppError to its HTTP status. Struct validation failures
// become a 400; anything else becomes a 500.
func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	if _, ok := err.(validation.ValidationErrors); ok {
		return c.Status(400).JSON(ErrorResponse{
			Error: errors.ErrInvalidRequest,
		})
	}

	return c.Status(500).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
