package votestream_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/repository/regionfile"
	"github.com/pinmap-service/internal/usecase"
	"github.com/pinmap-service/internal/worker/votestream"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockPinRepository is a mock of PinRepository
type MockPinRepository struct {
	mock.Mock
}

func (m *MockPinRepository) List(ctx context.Context) ([]domain.Pin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pin), args.Error(1)
}

func (m *MockPinRepository) ListByCategories(ctx context.Context, categories []string) ([]domain.Pin, error) {
	args := m.Called(ctx, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pin), args.Error(1)
}

func (m *MockPinRepository) GetByID(ctx context.Context, id int64) (*domain.Pin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pin), args.Error(1)
}

func (m *MockPinRepository) Create(ctx context.Context, pin domain.Pin) (*domain.Pin, error) {
	args := m.Called(ctx, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pin), args.Error(1)
}

func (m *MockPinRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newTestStatsUseCase(pinRepo *MockPinRepository) *usecase.StatsUseCase {
	logger := zap.NewNop()
	regionUC := usecase.NewRegionUseCase(regionfile.NewStatic(nil), logger)
	return usecase.NewStatsUseCase(pinRepo, nil, regionUC, logger, time.Minute)
}

func TestStatsWorker_Name(t *testing.T) {
	w := votestream.NewStatsWorker(
		&MockStreamRepository{},
		newTestStatsUseCase(&MockPinRepository{}),
		"pin-stats-workers",
		3,
		zap.NewNop(),
	)

	assert.Equal(t, "vote-stats", w.Name())
	assert.Equal(t, "pin-stats-workers", w.ConsumerGroup())
}

func TestStatsWorker_ConsumesAndRecomputes(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockPins := &MockPinRepository{}
	logger := zap.NewNop()

	w := votestream.NewStatsWorker(mockStream, newTestStatsUseCase(mockPins), "group", 3, logger)

	event, err := json.Marshal(domain.VoteCastEvent{PinID: 1, VoterID: "thrall", Type: domain.VoteUp})
	require.NoError(t, err)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamVotesCast, "group").Return(nil)
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamPinsCreated, "group").Return(nil)

	// One batch with a valid message, a malformed one, and one that carried
	// no payload at all, then empty streams.
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamVotesCast, "group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{
			{ID: "1-0", Data: string(event)},
			{ID: "1-1", Data: "{not json"},
			{ID: "1-2", Data: ""},
		}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamVotesCast, "group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamPinsCreated, "group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)

	// Every message gets acked, malformed and empty ones included.
	mockStream.On("AckMessages", mock.Anything, domain.StreamVotesCast, "group", []string{"1-0", "1-1", "1-2"}).
		Return(nil).Once()

	recomputed := make(chan struct{}, 1)
	mockPins.On("List", mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case recomputed <- struct{}{}:
			default:
			}
		}).
		Return([]domain.Pin{{ID: 1, Category: "Lore", Upvotes: 1}}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	// Let the worker drain the first batch, then stop it.
	select {
	case <-recomputed:
	case <-time.After(2 * time.Second):
		t.Fatal("stats were not recomputed in time")
	}

	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop in time")
	}

	mockStream.AssertExpectations(t)
}
