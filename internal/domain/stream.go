package domain

import "time"

// Stream names shared between the API and the stats worker.
const (
	StreamVotesCast   = "stream:pins:votes"
	StreamPinsCreated = "stream:pins:created"
)

// VoteCastEvent is published after a vote transaction commits. Counts are the
// post-transaction values, so consumers never have to re-read the pin.
type VoteCastEvent struct {
	PinID     int64     `json:"pin_id"`
	VoterID   string    `json:"voter_id"`
	Type      VoteType  `json:"vote_type"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CastAt    time.Time `json:"cast_at"`
}

// PinCreatedEvent is published after a pin is created.
type PinCreatedEvent struct {
	PinID     int64     `json:"pin_id"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// StreamMessage is a raw message read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
