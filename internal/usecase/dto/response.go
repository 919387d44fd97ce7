package dto

import "github.com/pinmap-service/internal/domain"

// VoteEntry is one element of the /pins/votes/{voterId} response.
type VoteEntry struct {
	PinID    int64           `json:"pin_id"`
	VoteType domain.VoteType `json:"vote_type"`
}

// RegionSummary pairs a region with its pin count for overview panels.
type RegionSummary struct {
	Name     string `json:"name"`
	PinCount int    `json:"pin_count"`
}
