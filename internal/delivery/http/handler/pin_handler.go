package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/pkg/utils"
	"github.com/pinmap-service/internal/pkg/validator"
	"github.com/pinmap-service/internal/usecase"
	"github.com/pinmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// PinHandler serves the pin list, creation and category endpoints. Successful
// responses are the bare payloads the map client consumes, no envelope.
type PinHandler struct {
	pinUC  *usecase.PinUseCase
	logger *zap.Logger
}

func NewPinHandler(pinUC *usecase.PinUseCase, logger *zap.Logger) *PinHandler {
	return &PinHandler{
		pinUC:  pinUC,
		logger: logger,
	}
}

// List returns all pins as a bare JSON array. An optional comma-separated
// "categories" query narrows the result server-side.
func (h *PinHandler) List(c *fiber.Ctx) error {
	var (
		pins []domain.Pin
		err  error
	)

	if raw := c.Query("categories"); raw != "" {
		pins, err = h.pinUC.ListByCategories(c.Context(), strings.Split(raw, ","))
	} else {
		pins, err = h.pinUC.List(c.Context())
	}
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(pins)
}

// Create stores a new pin and returns it.
func (h *PinHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	pin, err := h.pinUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(pin)
}

// Categories returns the category enumeration as a bare array.
func (h *PinHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.pinUC.Categories(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(categories)
}
