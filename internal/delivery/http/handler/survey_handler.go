package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pinmap-service/internal/pkg/utils"
	"github.com/pinmap-service/internal/pkg/validator"
	"github.com/pinmap-service/internal/usecase"
	"github.com/pinmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// SurveyHandler serves the survey definition, submissions and aggregated
// results.
type SurveyHandler struct {
	surveyUC *usecase.SurveyUseCase
	logger   *zap.Logger
}

func NewSurveyHandler(surveyUC *usecase.SurveyUseCase, logger *zap.Logger) *SurveyHandler {
	return &SurveyHandler{
		surveyUC: surveyUC,
		logger:   logger,
	}
}

// Definition returns the survey structure clients render the form from.
func (h *SurveyHandler) Definition(c *fiber.Ctx) error {
	return c.JSON(h.surveyUC.Definition())
}

// Submit creates or replaces a user's survey entry.
func (h *SurveyHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	entry, err := h.surveyUC.Submit(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(entry)
}

// GetByUser returns one user's entry.
func (h *SurveyHandler) GetByUser(c *fiber.Ctx) error {
	entry, err := h.surveyUC.GetByUser(c.Context(), c.Params("discord_username"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(entry)
}

// List returns all entries.
func (h *SurveyHandler) List(c *fiber.Ctx) error {
	entries, err := h.surveyUC.Entries(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(entries)
}

// Results returns the question -> answer -> count aggregation.
func (h *SurveyHandler) Results(c *fiber.Ctx) error {
	results, err := h.surveyUC.Results(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(results)
}
