package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"github.com/pinmap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type voteRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVoteRepository(db *DB) repository.VoteRepository {
	return &voteRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// CastVote runs the whole toggle/switch/undo state machine in one
// transaction. The pin row is locked first so concurrent votes on the same
// pin serialize; the unique (pin_id, voter_id) constraint backs the
// at-most-one-active-vote invariant.
func (r *voteRepository) CastVote(
	ctx context.Context,
	pinID int64,
	voterID string,
	voteType domain.VoteType,
) (*domain.VoteCounts, error) {
	if !voteType.Valid() {
		return nil, errors.ErrInvalidVoteType
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin vote transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	var counts domain.VoteCounts
	err = tx.QueryRowxContext(ctx,
		`SELECT id, upvotes, downvotes FROM pins WHERE id = $1 FOR UPDATE`,
		pinID,
	).Scan(&counts.PinID, &counts.Upvotes, &counts.Downvotes)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPinNotFound
	}
	if err != nil {
		r.logger.Error("Failed to lock pin for vote", zap.Int64("pin_id", pinID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	var existing domain.VoteType
	err = tx.QueryRowxContext(ctx,
		`SELECT vote_type FROM votes WHERE pin_id = $1 AND voter_id = $2 FOR UPDATE`,
		pinID, voterID,
	).Scan(&existing)

	switch {
	case err == sql.ErrNoRows:
		// New vote
		_, err = tx.ExecContext(ctx,
			`INSERT INTO votes (pin_id, voter_id, vote_type) VALUES ($1, $2, $3)`,
			pinID, voterID, voteType,
		)
		if err == nil {
			counts.Apply(voteType, +1)
		}

	case err != nil:
		r.logger.Error("Failed to read existing vote", zap.Int64("pin_id", pinID), zap.Error(err))
		return nil, errors.ErrDatabaseError

	case existing == voteType:
		// Undo: same direction again removes the vote
		_, err = tx.ExecContext(ctx,
			`DELETE FROM votes WHERE pin_id = $1 AND voter_id = $2`,
			pinID, voterID,
		)
		if err == nil {
			counts.Apply(voteType, -1)
		}

	default:
		// Switch: move one count from the old direction to the new
		_, err = tx.ExecContext(ctx,
			`UPDATE votes SET vote_type = $3 WHERE pin_id = $1 AND voter_id = $2`,
			pinID, voterID, voteType,
		)
		if err == nil {
			counts.Apply(existing, -1)
			counts.Apply(voteType, +1)
		}
	}
	if err != nil {
		r.logger.Error("Failed to apply vote",
			zap.Int64("pin_id", pinID),
			zap.String("vote_type", string(voteType)),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE pins SET upvotes = $2, downvotes = $3 WHERE id = $1`,
		pinID, counts.Upvotes, counts.Downvotes,
	)
	if err != nil {
		r.logger.Error("Failed to update pin counts", zap.Int64("pin_id", pinID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit vote transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &counts, nil
}

func (r *voteRepository) VotesByVoter(ctx context.Context, voterID string) ([]domain.Vote, error) {
	query := `
		SELECT pin_id, voter_id, vote_type
		FROM votes
		WHERE voter_id = $1
		ORDER BY pin_id
	`

	votes := make([]domain.Vote, 0)
	if err := r.db.SelectContext(ctx, &votes, query, voterID); err != nil {
		r.logger.Error("Failed to list votes by voter", zap.String("voter_id", voterID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return votes, nil
}
