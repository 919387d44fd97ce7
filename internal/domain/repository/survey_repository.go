package repository

import (
	"context"

	"github.com/pinmap-service/internal/domain"
)

// SurveyRepository defines persistence for survey entries.
type SurveyRepository interface {
	// Upsert creates the user's entry or replaces its responses.
	Upsert(ctx context.Context, entry domain.SurveyEntry) (*domain.SurveyEntry, error)

	// GetByUser returns one user's entry.
	GetByUser(ctx context.Context, discordUsername string) (*domain.SurveyEntry, error)

	// List returns all entries.
	List(ctx context.Context) ([]domain.SurveyEntry, error)
}
