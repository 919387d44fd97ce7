package domain

import "time"

// Pin is a user-submitted point of interest on the map. X/Y are coordinates
// in the map's local image space, not geographic lat/lon. Vote counts are
// authoritative on the backend; clients replace, never increment.
type Pin struct {
	ID          int64     `json:"id" db:"id"`
	X           float64   `json:"x" db:"x"`
	Y           float64   `json:"y" db:"y"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Upvotes     int       `json:"upvotes" db:"upvotes"`
	Downvotes   int       `json:"downvotes" db:"downvotes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Vote is one voter's current vote on one pin. At most one row exists per
// (pin_id, voter_id) pair; repeating the same direction removes it (undo).
type Vote struct {
	PinID   int64    `json:"pin_id" db:"pin_id"`
	VoterID string   `json:"-" db:"voter_id"`
	Type    VoteType `json:"vote_type" db:"vote_type"`
}

// VoteCounts is the authority's reply to a vote submission.
type VoteCounts struct {
	PinID     int64 `json:"pin_id"`
	Upvotes   int   `json:"upvotes"`
	Downvotes int   `json:"downvotes"`
}

// Apply adjusts the counter matching the vote direction by delta, clamping
// at zero so counts never go negative.
func (c *VoteCounts) Apply(t VoteType, delta int) {
	switch t {
	case VoteUp:
		c.Upvotes += delta
		if c.Upvotes < 0 {
			c.Upvotes = 0
		}
	case VoteDown:
		c.Downvotes += delta
		if c.Downvotes < 0 {
			c.Downvotes = 0
		}
	}
}

// CategorySet is the runtime-open set of pin categories. The set is supplied
// by the backend at runtime, so membership is checked dynamically rather than
// through a compile-time enum.
type CategorySet map[string]struct{}

func NewCategorySet(names []string) CategorySet {
	set := make(CategorySet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s CategorySet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s CategorySet) Len() int {
	return len(s)
}
