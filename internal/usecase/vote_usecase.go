package usecase

import (
	"context"
	"time"

	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"github.com/pinmap-service/internal/pkg/errors"
	"github.com/pinmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// VoteUseCase applies votes. The vote repository owns the toggle/switch/undo
// transaction; this layer validates identity and type, keeps the cache
// honest, and emits events for the stats worker.
type VoteUseCase struct {
	voteRepo   repository.VoteRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

func NewVoteUseCase(
	voteRepo repository.VoteRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *VoteUseCase {
	return &VoteUseCase{
		voteRepo:   voteRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// CastVote applies one vote and returns the pin's updated counts.
func (uc *VoteUseCase) CastVote(ctx context.Context, req dto.VoteRequest) (*domain.VoteCounts, error) {
	if !req.VoteType.Valid() {
		return nil, errors.ErrInvalidVoteType
	}
	if req.VoterRef.IsZero() {
		return nil, errors.ErrMissingVoterIdentity
	}
	if !req.VoterRef.Valid() {
		return nil, errors.ErrAmbiguousVoterIdentity
	}

	counts, err := uc.voteRepo.CastVote(ctx, req.PinID, req.VoterRef.Key(), req.VoteType)
	if err != nil {
		return nil, err
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.InvalidatePins(ctx); err != nil {
			uc.logger.Warn("Failed to invalidate pin cache after vote", zap.Error(err))
		}
	}

	// Best-effort event: never fail the vote because of the stream.
	if uc.streamRepo != nil {
		event := domain.VoteCastEvent{
			PinID:     counts.PinID,
			VoterID:   req.VoterRef.Key(),
			Type:      req.VoteType,
			Upvotes:   counts.Upvotes,
			Downvotes: counts.Downvotes,
			CastAt:    time.Now().UTC(),
		}
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamVotesCast, event); err != nil {
			uc.logger.Warn("Failed to publish vote event",
				zap.Int64("pin_id", counts.PinID),
				zap.Error(err))
		}
	}

	uc.logger.Info("Vote cast",
		zap.Int64("pin_id", counts.PinID),
		zap.String("vote_type", string(req.VoteType)),
		zap.Bool("authenticated", req.VoterRef.Authenticated()))

	return counts, nil
}

// VotesByVoter returns the voter's per-pin vote projection.
func (uc *VoteUseCase) VotesByVoter(ctx context.Context, voterID string) ([]dto.VoteEntry, error) {
	if voterID == "" {
		return nil, errors.ErrMissingVoterIdentity
	}

	votes, err := uc.voteRepo.VotesByVoter(ctx, voterID)
	if err != nil {
		uc.logger.Error("Failed to list votes", zap.String("voter_id", voterID), zap.Error(err))
		return nil, err
	}

	entries := make([]dto.VoteEntry, 0, len(votes))
	for _, vote := range votes {
		entries = append(entries, dto.VoteEntry{
			PinID:    vote.PinID,
			VoteType: vote.Type,
		})
	}

	return entries, nil
}
