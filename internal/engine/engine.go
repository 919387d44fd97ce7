package engine

import (
	"context"
	"sort"
	"sync"

	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/pkg/errors"
	"github.com/pinmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// Backend is the slice of the pin map API the engine needs.
type Backend interface {
	ListPins(ctx context.Context) ([]domain.Pin, error)
	VotesByVoter(ctx context.Context, voterID string) ([]dto.VoteEntry, error)
	SubmitVote(ctx context.Context, req dto.VoteRequest) (*domain.VoteCounts, error)
}

// FilterCriteria selects pins for display. Categories is the set of checked
// category boxes: an empty set means nothing is checked and nothing matches.
// Region "" and MinUpvotes 0 are no-ops.
type FilterCriteria struct {
	Categories domain.CategorySet
	Region     string
	MinUpvotes int
}

// Engine holds the client-side view of the map: the last known pin snapshot,
// the voter's own votes, and the static region list. The backend stays the
// authority; the engine never invents counts, it only mirrors what the last
// response said. All state is guarded by one mutex.
type Engine struct {
	mu        sync.Mutex
	backend   Backend
	regions   []domain.Region
	voter     domain.VoterRef
	pins      []domain.Pin
	votedPins map[int64]domain.VoteType
	logger    *zap.Logger
}

// New creates an engine for one voter. A zero VoterRef is a read-only
// session: refreshes work, votes fail with ErrMissingVoterIdentity.
func New(backend Backend, regions []domain.Region, voter domain.VoterRef, logger *zap.Logger) *Engine {
	return &Engine{
		backend:   backend,
		regions:   regions,
		voter:     voter,
		votedPins: make(map[int64]domain.VoteType),
		logger:    logger,
	}
}

// ResolveRegion returns the name of the first region containing the pin,
// or "" when no region does. The region list order is fixed, so overlapping
// regions always resolve the same way.
func (e *Engine) ResolveRegion(pin domain.Pin) string {
	return domain.ResolveRegion(pin, e.regions)
}

// FilterPins applies the criteria to the current snapshot and returns the
// matches sorted by upvotes descending. The sort is stable, so pins with
// equal upvotes keep their snapshot order.
func (e *Engine) FilterPins(criteria FilterCriteria) []domain.Pin {
	e.mu.Lock()
	pins := make([]domain.Pin, len(e.pins))
	copy(pins, e.pins)
	e.mu.Unlock()

	if criteria.Categories.Len() == 0 {
		return []domain.Pin{}
	}

	filtered := make([]domain.Pin, 0, len(pins))
	for _, pin := range pins {
		if !criteria.Categories.Contains(pin.Category) {
			continue
		}
		if criteria.Region != "" && e.ResolveRegion(pin) != criteria.Region {
			continue
		}
		if pin.Upvotes < criteria.MinUpvotes {
			continue
		}
		filtered = append(filtered, pin)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Upvotes > filtered[j].Upvotes
	})

	return filtered
}

// SubmitVote sends exactly one vote request and, on success, replaces the
// pin's counts with the returned values and applies the toggle rule to the
// voter's own votes. On any error all local state stays untouched.
func (e *Engine) SubmitVote(ctx context.Context, pinID int64, voteType domain.VoteType) (*domain.VoteCounts, error) {
	if !voteType.Valid() {
		return nil, errors.ErrInvalidVoteType
	}

	e.mu.Lock()
	voter := e.voter
	e.mu.Unlock()

	if voter.IsZero() {
		return nil, errors.ErrMissingVoterIdentity
	}

	counts, err := e.backend.SubmitVote(ctx, dto.VoteRequest{
		PinID:    pinID,
		VoteType: voteType,
		VoterRef: voter,
	})
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.pins {
		if e.pins[i].ID == counts.PinID {
			e.pins[i].Upvotes = counts.Upvotes
			e.pins[i].Downvotes = counts.Downvotes
			break
		}
	}

	// Same direction twice is an undo; a different direction is a switch.
	if e.votedPins[pinID] == voteType {
		delete(e.votedPins, pinID)
	} else {
		e.votedPins[pinID] = voteType
	}

	return counts, nil
}

// Refresh replaces the snapshot wholesale from the backend. When any fetch
// fails the previous snapshot stays in place and the error is returned.
func (e *Engine) Refresh(ctx context.Context) error {
	pins, err := e.backend.ListPins(ctx)
	if err != nil {
		return err
	}

	var votes map[int64]domain.VoteType

	e.mu.Lock()
	voter := e.voter
	e.mu.Unlock()

	if !voter.IsZero() {
		entries, err := e.backend.VotesByVoter(ctx, voter.Key())
		if err != nil {
			return err
		}
		votes = make(map[int64]domain.VoteType, len(entries))
		for _, entry := range entries {
			votes[entry.PinID] = entry.VoteType
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.pins = pins
	if votes != nil {
		e.votedPins = votes
	}

	return nil
}

// Snapshot returns a copy of the current pin list.
func (e *Engine) Snapshot() []domain.Pin {
	e.mu.Lock()
	defer e.mu.Unlock()

	pins := make([]domain.Pin, len(e.pins))
	copy(pins, e.pins)
	return pins
}

// VotedPins returns a copy of the voter's own votes keyed by pin id.
func (e *Engine) VotedPins() map[int64]domain.VoteType {
	e.mu.Lock()
	defer e.mu.Unlock()

	votes := make(map[int64]domain.VoteType, len(e.votedPins))
	for id, t := range e.votedPins {
		votes[id] = t
	}
	return votes
}

// Voter returns the identity the engine votes as.
func (e *Engine) Voter() domain.VoterRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voter
}

// Regions returns the static region list in resolution order.
func (e *Engine) Regions() []domain.Region {
	return e.regions
}
