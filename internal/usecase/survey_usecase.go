package usecase

import (
	"context"

	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"github.com/pinmap-service/internal/pkg/errors"
	"github.com/pinmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// surveyDefinition is the survey structure served to clients. Clients render
// the form from it; changing it here changes the form everywhere.
var surveyDefinition = domain.SurveyDefinition{
	Sections: []domain.SurveySection{
		{
			Title:  "General Questions",
			Locked: false,
			Questions: []domain.SurveyQuestion{
				{Key: "name", Label: "Name / Character", Type: "text", Required: true},
				{
					Key:      "previous_versions",
					Label:    "What versions of Classic have you played before?",
					Type:     "checkbox",
					Options:  []string{"Hardcore", "SoD", "SoM", "Vanilla", "TBC", "WoTLK", "Cata", "MoP"},
					Required: true,
				},
			},
		},
		{
			Title:  "Player Questions",
			Locked: true,
			Questions: []domain.SurveyQuestion{
				{
					Key:      "scaling_raids",
					Label:    "Do you think Classic Plus should have scaling difficulty levels in raids?",
					Type:     "radio",
					Options:  []string{"Yes", "No"},
					Required: true,
				},
			},
		},
		{
			Title:  "Systems Questions",
			Locked: true,
			Questions: []domain.SurveyQuestion{
				{
					Key:      "new_race_class",
					Label:    "Do you think Classic Plus should have new race/class combinations?",
					Type:     "radio",
					Options:  []string{"Yes", "No"},
					Required: true,
				},
			},
		},
		{
			Title:  "World Questions",
			Locked: true,
			Questions: []domain.SurveyQuestion{
				{
					Key:      "currently_play",
					Label:    "Do you currently play Classic?",
					Type:     "radio",
					Options:  []string{"Yes", "No"},
					Required: true,
				},
				{
					Key:      "intend_to_play",
					Label:    "Would you intend to play Classic Plus?",
					Type:     "radio",
					Options:  []string{"Yes", "No"},
					Required: true,
				},
			},
		},
	},
}

// SurveyUseCase stores survey answers and aggregates results.
type SurveyUseCase struct {
	surveyRepo repository.SurveyRepository
	logger     *zap.Logger
}

func NewSurveyUseCase(surveyRepo repository.SurveyRepository, logger *zap.Logger) *SurveyUseCase {
	return &SurveyUseCase{
		surveyRepo: surveyRepo,
		logger:     logger,
	}
}

// Definition returns the survey structure.
func (uc *SurveyUseCase) Definition() domain.SurveyDefinition {
	return surveyDefinition
}

// Submit creates or replaces the user's survey entry.
func (uc *SurveyUseCase) Submit(ctx context.Context, req dto.SubmitSurveyRequest) (*domain.SurveyEntry, error) {
	if req.DiscordUsername == "" {
		return nil, errors.ErrMissingDiscordUsername
	}

	entry, err := uc.surveyRepo.Upsert(ctx, domain.SurveyEntry{
		DiscordUsername: req.DiscordUsername,
		Responses:       req.Responses,
	})
	if err != nil {
		uc.logger.Error("Failed to submit survey",
			zap.String("discord_username", req.DiscordUsername),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Survey submitted", zap.String("discord_username", req.DiscordUsername))
	return entry, nil
}

// GetByUser returns one user's entry.
func (uc *SurveyUseCase) GetByUser(ctx context.Context, discordUsername string) (*domain.SurveyEntry, error) {
	return uc.surveyRepo.GetByUser(ctx, discordUsername)
}

// Entries returns all survey entries.
func (uc *SurveyUseCase) Entries(ctx context.Context) ([]domain.SurveyEntry, error) {
	return uc.surveyRepo.List(ctx)
}

// Results aggregates all entries into question -> answer -> count. List
// answers (checkboxes) count each selected option; scalar answers count
// once; nil answers are skipped.
func (uc *SurveyUseCase) Results(ctx context.Context) (domain.SurveyResults, error) {
	entries, err := uc.surveyRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to load survey entries for results", zap.Error(err))
		return nil, err
	}

	results := make(domain.SurveyResults)
	for _, entry := range entries {
		for key, value := range entry.Responses {
			switch v := value.(type) {
			case nil:
				// skip
			case []interface{}:
				for _, item := range v {
					tally(results, key, item)
				}
			default:
				tally(results, key, v)
			}
		}
	}

	return results, nil
}

func tally(results domain.SurveyResults, key string, value interface{}) {
	answer, ok := value.(string)
	if !ok {
		return
	}
	if results[key] == nil {
		results[key] = make(map[string]int)
	}
	results[key][answer]++
}
