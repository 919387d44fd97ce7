package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"github.com/pinmap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type pinRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPinRepository(db *DB) repository.PinRepository {
	return &pinRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *pinRepository) List(ctx context.Context) ([]domain.Pin, error) {
	query := `
		SELECT id, x, y, name, description, category, upvotes, downvotes, created_at
		FROM pins
		ORDER BY id
	`

	pins := make([]domain.Pin, 0)
	if err := r.db.SelectContext(ctx, &pins, query); err != nil {
		r.logger.Error("Failed to list pins", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return pins, nil
}

func (r *pinRepository) ListByCategories(ctx context.Context, categories []string) ([]domain.Pin, error) {
	query := `
		SELECT id, x, y, name, description, category, upvotes, downvotes, created_at
		FROM pins
		WHERE category = ANY($1)
		ORDER BY id
	`

	pins := make([]domain.Pin, 0)
	if err := r.db.SelectContext(ctx, &pins, query, pq.Array(categories)); err != nil {
		r.logger.Error("Failed to list pins by categories",
			zap.Strings("categories", categories),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return pins, nil
}

func (r *pinRepository) GetByID(ctx context.Context, id int64) (*domain.Pin, error) {
	query := `
		SELECT id, x, y, name, description, category, upvotes, downvotes, created_at
		FROM pins
		WHERE id = $1
	`

	var pin domain.Pin
	err := r.db.GetContext(ctx, &pin, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPinNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get pin by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &pin, nil
}

func (r *pinRepository) Create(ctx context.Context, pin domain.Pin) (*domain.Pin, error) {
	query := `
		INSERT INTO pins (x, y, name, description, category, upvotes, downvotes)
		VALUES ($1, $2, $3, $4, $5, 0, 0)
		RETURNING id, x, y, name, description, category, upvotes, downvotes, created_at
	`

	var created domain.Pin
	err := r.db.GetContext(ctx, &created, query,
		pin.X, pin.Y, pin.Name, pin.Description, pin.Category,
	)
	if err != nil {
		r.logger.Error("Failed to create pin",
			zap.String("name", pin.Name),
			zap.String("category", pin.Category),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &created, nil
}

func (r *pinRepository) ListCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT name
		FROM pin_categories
		ORDER BY sort_order, name
	`

	categories := make([]string, 0)
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		r.logger.Error("Failed to list categories", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return categories, nil
}
