package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/engine"
	apperrors "github.com/pinmap-service/internal/pkg/errors"
	"github.com/pinmap-service/internal/usecase/dto"
)

// MockBackend is a mock of engine.Backend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListPins(ctx context.Context) ([]domain.Pin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pin), args.Error(1)
}

func (m *MockBackend) VotesByVoter(ctx context.Context, voterID string) ([]dto.VoteEntry, error) {
	args := m.Called(ctx, voterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.VoteEntry), args.Error(1)
}

func (m *MockBackend) SubmitVote(ctx context.Context, req dto.VoteRequest) (*domain.VoteCounts, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoteCounts), args.Error(1)
}

func squareRegion(name string, lo, hi float64) domain.Region {
	return domain.Region{
		Name: name,
		Coords: [][2]float64{
			{lo, lo},
			{lo, hi},
			{hi, hi},
			{hi, lo},
		},
	}
}

func testPins() []domain.Pin {
	return []domain.Pin{
		{ID: 1, X: 5, Y: 5, Name: "Hogger", Category: "World Boss", Upvotes: 3},
		{ID: 2, X: 7, Y: 7, Name: "Deadmines", Category: "Dungeon", Upvotes: 5},
		{ID: 3, X: 50, Y: 50, Name: "Crossroads", Category: "Zone", Upvotes: 5},
		{ID: 4, X: 15, Y: 15, Name: "Stitches", Category: "World Boss", Upvotes: 1},
	}
}

// newRefreshedEngine builds an engine whose snapshot holds testPins.
func newRefreshedEngine(t *testing.T, backend *MockBackend, regions []domain.Region, voter domain.VoterRef) *engine.Engine {
	t.Helper()

	e := engine.New(backend, regions, voter, zap.NewNop())

	backend.On("ListPins", mock.Anything).Return(testPins(), nil).Once()
	if !voter.IsZero() {
		backend.On("VotesByVoter", mock.Anything, voter.Key()).Return([]dto.VoteEntry{}, nil).Once()
	}
	require.NoError(t, e.Refresh(context.Background()))

	return e
}

func TestEngine_ResolveRegion(t *testing.T) {
	regions := []domain.Region{
		squareRegion("First", 0, 10),
		squareRegion("Second", 5, 20),
	}
	backend := &MockBackend{}
	e := engine.New(backend, regions, domain.VoterRef{}, zap.NewNop())

	t.Run("first match wins when regions overlap", func(t *testing.T) {
		assert.Equal(t, "First", e.ResolveRegion(domain.Pin{X: 7, Y: 7}))
	})

	t.Run("no region resolves to empty string", func(t *testing.T) {
		assert.Equal(t, "", e.ResolveRegion(domain.Pin{X: 99, Y: 99}))
	})

	t.Run("deterministic", func(t *testing.T) {
		pin := domain.Pin{X: 7, Y: 7}
		for i := 0; i < 10; i++ {
			assert.Equal(t, "First", e.ResolveRegion(pin))
		}
	})
}

func TestEngine_FilterPins(t *testing.T) {
	regions := []domain.Region{squareRegion("Elwynn", 0, 10)}

	t.Run("empty category set matches nothing", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, regions, domain.VoterRef{})

		result := e.FilterPins(engine.FilterCriteria{Categories: domain.NewCategorySet(nil)})
		assert.Empty(t, result)
	})

	t.Run("category filter", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, regions, domain.VoterRef{})

		result := e.FilterPins(engine.FilterCriteria{
			Categories: domain.NewCategorySet([]string{"World Boss"}),
		})

		require.Len(t, result, 2)
		for _, pin := range result {
			assert.Equal(t, "World Boss", pin.Category)
		}
	})

	t.Run("region filter", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, regions, domain.VoterRef{})

		result := e.FilterPins(engine.FilterCriteria{
			Categories: domain.NewCategorySet([]string{"World Boss", "Dungeon", "Zone"}),
			Region:     "Elwynn",
		})

		// Pins 1 and 2 sit inside the Elwynn square, 3 and 4 do not.
		require.Len(t, result, 2)
		assert.Equal(t, int64(2), result[0].ID)
		assert.Equal(t, int64(1), result[1].ID)
	})

	t.Run("minimum upvotes", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, regions, domain.VoterRef{})

		result := e.FilterPins(engine.FilterCriteria{
			Categories: domain.NewCategorySet([]string{"World Boss", "Dungeon", "Zone"}),
			MinUpvotes: 3,
		})

		require.Len(t, result, 3)
		for _, pin := range result {
			assert.GreaterOrEqual(t, pin.Upvotes, 3)
		}
	})

	t.Run("stable sort by upvotes descending", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, regions, domain.VoterRef{})

		result := e.FilterPins(engine.FilterCriteria{
			Categories: domain.NewCategorySet([]string{"World Boss", "Dungeon", "Zone"}),
		})

		// Upvotes are [3, 5, 5, 1] in snapshot order; the two fives keep
		// their relative order (pin 2 before pin 3).
		require.Len(t, result, 4)
		assert.Equal(t, []int64{2, 3, 1, 4}, []int64{result[0].ID, result[1].ID, result[2].ID, result[3].ID})
	})

	t.Run("does not mutate the snapshot", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, regions, domain.VoterRef{})

		_ = e.FilterPins(engine.FilterCriteria{
			Categories: domain.NewCategorySet([]string{"World Boss", "Dungeon", "Zone"}),
		})

		snapshot := e.Snapshot()
		require.Len(t, snapshot, 4)
		assert.Equal(t, int64(1), snapshot[0].ID)
	})
}

func TestEngine_SubmitVote(t *testing.T) {
	voter := domain.AuthenticatedVoter("thrall")

	t.Run("replaces counts and records the vote", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, nil, voter)

		// The server's answer is authoritative even when it disagrees with
		// a local increment (pin 1 had 3 upvotes, reply says 5/2).
		backend.On("SubmitVote", mock.Anything, mock.MatchedBy(func(req dto.VoteRequest) bool {
			return req.PinID == 1 && req.VoteType == domain.VoteUp && req.DiscordUsername == "thrall"
		})).Return(&domain.VoteCounts{PinID: 1, Upvotes: 5, Downvotes: 2}, nil).Once()

		counts, err := e.SubmitVote(context.Background(), 1, domain.VoteUp)
		require.NoError(t, err)
		assert.Equal(t, 5, counts.Upvotes)
		assert.Equal(t, 2, counts.Downvotes)

		snapshot := e.Snapshot()
		assert.Equal(t, 5, snapshot[0].Upvotes)
		assert.Equal(t, 2, snapshot[0].Downvotes)
		assert.Equal(t, domain.VoteUp, e.VotedPins()[1])

		backend.AssertExpectations(t)
	})

	t.Run("same direction twice toggles back to no vote", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, nil, voter)

		backend.On("SubmitVote", mock.Anything, mock.Anything).
			Return(&domain.VoteCounts{PinID: 1, Upvotes: 4}, nil).Once()
		backend.On("SubmitVote", mock.Anything, mock.Anything).
			Return(&domain.VoteCounts{PinID: 1, Upvotes: 3}, nil).Once()

		_, err := e.SubmitVote(context.Background(), 1, domain.VoteUp)
		require.NoError(t, err)
		assert.Equal(t, domain.VoteUp, e.VotedPins()[1])

		_, err = e.SubmitVote(context.Background(), 1, domain.VoteUp)
		require.NoError(t, err)
		_, voted := e.VotedPins()[1]
		assert.False(t, voted)
	})

	t.Run("opposite direction switches the recorded vote", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, nil, voter)

		backend.On("SubmitVote", mock.Anything, mock.Anything).
			Return(&domain.VoteCounts{PinID: 1, Upvotes: 4}, nil).Once()
		backend.On("SubmitVote", mock.Anything, mock.Anything).
			Return(&domain.VoteCounts{PinID: 1, Upvotes: 3, Downvotes: 1}, nil).Once()

		_, err := e.SubmitVote(context.Background(), 1, domain.VoteUp)
		require.NoError(t, err)

		_, err = e.SubmitVote(context.Background(), 1, domain.VoteDown)
		require.NoError(t, err)
		assert.Equal(t, domain.VoteDown, e.VotedPins()[1])
	})

	t.Run("missing identity fails before any request", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, nil, domain.VoterRef{})

		_, err := e.SubmitVote(context.Background(), 1, domain.VoteUp)
		assert.ErrorIs(t, err, apperrors.ErrMissingVoterIdentity)
		backend.AssertNotCalled(t, "SubmitVote", mock.Anything, mock.Anything)
	})

	t.Run("invalid vote type fails before any request", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, nil, voter)

		_, err := e.SubmitVote(context.Background(), 1, domain.VoteType("sideways"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidVoteType)
		backend.AssertNotCalled(t, "SubmitVote", mock.Anything, mock.Anything)
	})

	t.Run("backend failure leaves state untouched", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, nil, voter)

		backend.On("SubmitVote", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused")).Once()

		_, err := e.SubmitVote(context.Background(), 1, domain.VoteUp)
		assert.Error(t, err)

		snapshot := e.Snapshot()
		assert.Equal(t, 3, snapshot[0].Upvotes)
		assert.Empty(t, e.VotedPins())
	})
}

func TestEngine_Refresh(t *testing.T) {
	voter := domain.AuthenticatedVoter("thrall")

	t.Run("wholesale replacement", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, nil, voter)

		replacement := []domain.Pin{{ID: 9, Name: "Onyxia", Category: "Raid", Upvotes: 40}}
		backend.On("ListPins", mock.Anything).Return(replacement, nil).Once()
		backend.On("VotesByVoter", mock.Anything, "thrall").
			Return([]dto.VoteEntry{{PinID: 9, VoteType: domain.VoteUp}}, nil).Once()

		require.NoError(t, e.Refresh(context.Background()))

		snapshot := e.Snapshot()
		require.Len(t, snapshot, 1)
		assert.Equal(t, int64(9), snapshot[0].ID)
		assert.Equal(t, domain.VoteUp, e.VotedPins()[9])
	})

	t.Run("failed pin fetch keeps the previous snapshot", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, nil, voter)

		backend.On("ListPins", mock.Anything).Return(nil, errors.New("timeout")).Once()

		err := e.Refresh(context.Background())
		assert.Error(t, err)
		assert.Len(t, e.Snapshot(), 4)
	})

	t.Run("failed vote fetch keeps the previous snapshot", func(t *testing.T) {
		backend := &MockBackend{}
		e := newRefreshedEngine(t, backend, nil, voter)

		backend.On("ListPins", mock.Anything).Return([]domain.Pin{}, nil).Once()
		backend.On("VotesByVoter", mock.Anything, "thrall").
			Return(nil, errors.New("timeout")).Once()

		err := e.Refresh(context.Background())
		assert.Error(t, err)
		assert.Len(t, e.Snapshot(), 4)
	})

	t.Run("anonymous read-only session skips the vote fetch", func(t *testing.T) {
		backend := &MockBackend{}
		e := engine.New(backend, nil, domain.VoterRef{}, zap.NewNop())

		backend.On("ListPins", mock.Anything).Return(testPins(), nil).Once()

		require.NoError(t, e.Refresh(context.Background()))
		assert.Len(t, e.Snapshot(), 4)
		backend.AssertNotCalled(t, "VotesByVoter", mock.Anything, mock.Anything)
	})
}
