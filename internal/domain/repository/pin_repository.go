package repository

import (
	"context"

	"github.com/pinmap-service/internal/domain"
)

// PinRepository defines persistence for pins and the category set.
type PinRepository interface {
	// List returns all pins in insertion order.
	List(ctx context.Context) ([]domain.Pin, error)

	// ListByCategories returns pins whose category is in the given set, in
	// insertion order.
	ListByCategories(ctx context.Context, categories []string) ([]domain.Pin, error)

	// GetByID returns one pin.
	GetByID(ctx context.Context, id int64) (*domain.Pin, error)

	// Create stores a new pin with zeroed vote counts and returns it with
	// its assigned id.
	Create(ctx context.Context, pin domain.Pin) (*domain.Pin, error)

	// ListCategories returns category names in display order.
	ListCategories(ctx context.Context) ([]string, error)
}

// VoteRepository defines persistence for per-voter votes.
type VoteRepository interface {
	// CastVote applies one vote with toggle semantics in a single
	// transaction: a new (pin, voter) vote increments the matching counter;
	// repeating the same direction removes the vote and decrements; the
	// opposite direction switches the vote and moves one count across.
	// Returns the pin's post-transaction counts.
	CastVote(ctx context.Context, pinID int64, voterID string, voteType domain.VoteType) (*domain.VoteCounts, error)

	// VotesByVoter returns the voter's current vote per pin.
	VotesByVoter(ctx context.Context, voterID string) ([]domain.Vote, error)
}
