package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pinmap-service/internal/pkg/utils"
	"github.com/pinmap-service/internal/pkg/validator"
	"github.com/pinmap-service/internal/usecase"
	"github.com/pinmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// VoteHandler serves vote casting and the per-voter vote projection.
type VoteHandler struct {
	voteUC *usecase.VoteUseCase
	logger *zap.Logger
}

func NewVoteHandler(voteUC *usecase.VoteUseCase, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		voteUC: voteUC,
		logger: logger,
	}
}

// Cast applies one vote and returns the pin's updated counts as
// {pin_id, upvotes, downvotes}.
func (h *VoteHandler) Cast(c *fiber.Ctx) error {
	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	counts, err := h.voteUC.CastVote(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(counts)
}

// VotesByVoter returns the voter's votes as a bare array of
// {pin_id, vote_type}.
func (h *VoteHandler) VotesByVoter(c *fiber.Ctx) error {
	voterID := c.Params("voter_id")

	entries, err := h.voteUC.VotesByVoter(c.Context(), voterID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(entries)
}
