package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"github.com/pinmap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type surveyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSurveyRepository(db *DB) repository.SurveyRepository {
	return &surveyRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *surveyRepository) Upsert(ctx context.Context, entry domain.SurveyEntry) (*domain.SurveyEntry, error) {
	responses, err := json.Marshal(entry.Responses)
	if err != nil {
		r.logger.Error("Failed to marshal survey responses", zap.Error(err))
		return nil, errors.ErrInvalidRequest
	}

	query := `
		INSERT INTO survey_entries (discord_username, responses)
		VALUES ($1, $2)
		ON CONFLICT (discord_username)
		DO UPDATE SET responses = EXCLUDED.responses
		RETURNING id, discord_username, responses
	`

	var saved domain.SurveyEntry
	var savedResponses []byte
	err = r.db.QueryRowxContext(ctx, query, entry.DiscordUsername, responses).
		Scan(&saved.ID, &saved.DiscordUsername, &savedResponses)
	if err != nil {
		r.logger.Error("Failed to upsert survey entry",
			zap.String("discord_username", entry.DiscordUsername),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := json.Unmarshal(savedResponses, &saved.Responses); err != nil {
		r.logger.Error("Failed to unmarshal survey responses", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &saved, nil
}

func (r *surveyRepository) GetByUser(ctx context.Context, discordUsername string) (*domain.SurveyEntry, error) {
	query := `
		SELECT id, discord_username, responses
		FROM survey_entries
		WHERE discord_username = $1
	`

	var entry domain.SurveyEntry
	var responses []byte
	err := r.db.QueryRowxContext(ctx, query, discordUsername).
		Scan(&entry.ID, &entry.DiscordUsername, &responses)
	if err == sql.ErrNoRows {
		return nil, errors.ErrSurveyNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get survey entry",
			zap.String("discord_username", discordUsername),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if err := json.Unmarshal(responses, &entry.Responses); err != nil {
		r.logger.Error("Failed to unmarshal survey responses", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &entry, nil
}

func (r *surveyRepository) List(ctx context.Context) ([]domain.SurveyEntry, error) {
	query := `
		SELECT id, discord_username, responses
		FROM survey_entries
		ORDER BY id
	`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list survey entries", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	entries := make([]domain.SurveyEntry, 0)
	for rows.Next() {
		var entry domain.SurveyEntry
		var responses []byte
		if err := rows.Scan(&entry.ID, &entry.DiscordUsername, &responses); err != nil {
			r.logger.Error("Failed to scan survey entry", zap.Error(err))
			continue
		}
		if err := json.Unmarshal(responses, &entry.Responses); err != nil {
			r.logger.Warn("Skipping survey entry with malformed responses",
				zap.Int64("id", entry.ID),
				zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
