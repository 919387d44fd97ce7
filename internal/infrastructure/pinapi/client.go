package pinapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// Client talks to the pin map API over HTTP. The engine and poller depend on
// it for every backend interaction; each call is one request, no retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// ListPins fetches the full pin list.
func (c *Client) ListPins(ctx context.Context) ([]domain.Pin, error) {
	var pins []domain.Pin
	if err := c.get(ctx, "/pins/", &pins); err != nil {
		return nil, err
	}
	return pins, nil
}

// ListCategories fetches the category enumeration.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/pins/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// VotesByVoter fetches the voter's per-pin vote projection.
func (c *Client) VotesByVoter(ctx context.Context, voterID string) ([]dto.VoteEntry, error) {
	var entries []dto.VoteEntry
	if err := c.get(ctx, "/pins/votes/"+voterID, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreatePin stores a new pin and returns the created record.
func (c *Client) CreatePin(ctx context.Context, req dto.CreatePinRequest) (*domain.Pin, error) {
	var pin domain.Pin
	if err := c.post(ctx, "/pins/", req, &pin); err != nil {
		return nil, err
	}
	return &pin, nil
}

// SubmitVote casts one vote and returns the authoritative counts.
func (c *Client) SubmitVote(ctx context.Context, req dto.VoteRequest) (*domain.VoteCounts, error) {
	var counts domain.VoteCounts
	if err := c.post(ctx, "/pins/vote", req, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Pin map API returned error",
			zap.String("url", req.URL.String()),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("pin map API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
