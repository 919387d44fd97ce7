package dto

import "github.com/pinmap-service/internal/domain"

// CreatePinRequest mirrors the legacy wire shape: clients send zeroed vote
// counts, the server ignores them and always starts at zero. Coordinates carry
// no `required` tag: zero is a real position on the map axes, and validator/v10
// treats `required` on a float as non-zero.
type CreatePinRequest struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description" validate:"required,max=2000"`
	Category    string  `json:"category" validate:"required,max=60"`
	Upvotes     int     `json:"upvotes"`
	Downvotes   int     `json:"downvotes"`
}

// VoteRequest carries a vote intent. The embedded VoterRef contributes the
// two optional identity fields; exactly one must be set, which is checked in
// the use case rather than by tags (there is no discriminant on the wire).
type VoteRequest struct {
	PinID    int64           `json:"pin_id" validate:"required"`
	VoteType domain.VoteType `json:"vote_type" validate:"required"`
	domain.VoterRef
}

// SubmitSurveyRequest submits or replaces a user's survey answers.
type SubmitSurveyRequest struct {
	DiscordUsername string                 `json:"discord_username" validate:"required,max=120"`
	Responses       map[string]interface{} `json:"responses" validate:"required"`
}
