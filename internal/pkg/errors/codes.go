package errors

import "net/http"

var (
	ErrPinNotFound = New(
		"PIN_NOT_FOUND",
		"Pin not found",
		http.StatusNotFound,
	)

	ErrInvalidVoteType = New(
		"INVALID_VOTE_TYPE",
		"Invalid vote type: must be 'up' or 'down'",
		http.StatusBadRequest,
	)

	// ErrMissingVoterIdentity is a precondition signal, not a transport
	// failure: callers are expected to prompt for sign-in.
	ErrMissingVoterIdentity = New(
		"MISSING_VOTER_IDENTITY",
		"A discord_username or session_id is required to vote",
		http.StatusBadRequest,
	)

	ErrAmbiguousVoterIdentity = New(
		"AMBIGUOUS_VOTER_IDENTITY",
		"Exactly one of discord_username or session_id must be set",
		http.StatusBadRequest,
	)

	ErrUnknownCategory = New(
		"UNKNOWN_CATEGORY",
		"Category is not in the configured category set",
		http.StatusBadRequest,
	)

	ErrSurveyNotFound = New(
		"SURVEY_NOT_FOUND",
		"Survey not found for this user",
		http.StatusNotFound,
	)

	ErrMissingDiscordUsername = New(
		"MISSING_DISCORD_USERNAME",
		"discord_username is required",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrRateLimited = New(
		"RATE_LIMITED",
		"Too many requests, slow down",
		http.StatusTooManyRequests,
	)
)
