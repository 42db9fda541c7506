// Package api provides types and functions to interact with the gas station
// price API: stations, their fuel prices (bulk operations) and user reactions.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout = 30 * time.Second

	// IdempotencyHeader carries the key shared by all requests of one submission.
	IdempotencyHeader = "Idempotency-Key"

	maxErrorBody = 2048
)

// ErrNotFound is matched by errors returned for 404 responses.
var ErrNotFound = errors.New("not found")

// StatusError is returned when the API answers with a non-2xx status code.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status code: %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status code: %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type idempotencyKey struct{}

// WithIdempotencyKey returns a context whose write requests carry key in the
// Idempotency-Key header.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey{}, key)
}

// IdempotencyKey returns the key set with WithIdempotencyKey, if any.
func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKey{}).(string)
	return key
}

// Client talks to the station and price API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a new API client. A zero timeout means DefaultTimeout and
// a nil logger discards output.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

// ListStations fetches every registered station.
func (c *Client) ListStations(ctx context.Context) ([]Station, error) {
	var stations []Station
	if err := c.do(ctx, http.MethodGet, "/stations", nil, &stations); err != nil {
		return nil, fmt.Errorf("error fetching stations: %w", err)
	}
	return stations, nil
}

// GetStation fetches a station, including its current price list.
func (c *Client) GetStation(ctx context.Context, id int64) (*Station, error) {
	var station Station
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/stations/%d", id), nil, &station); err != nil {
		return nil, fmt.Errorf("error fetching station %d: %w", id, err)
	}
	return &station, nil
}

// CreateStation registers a station and returns it with its assigned id.
func (c *Client) CreateStation(ctx context.Context, s NewStation) (*Station, error) {
	var station Station
	if err := c.do(ctx, http.MethodPost, "/stations", s, &station); err != nil {
		return nil, fmt.Errorf("error creating station: %w", err)
	}
	return &station, nil
}

// UpdatePrices updates several existing prices in one request.
func (c *Client) UpdatePrices(ctx context.Context, prices []PriceUpdate) error {
	if err := c.do(ctx, http.MethodPatch, "/prices/update_bulk", updatePricesRequest{Prices: prices}, nil); err != nil {
		return fmt.Errorf("error updating prices: %w", err)
	}
	return nil
}

// CreatePrices creates several prices in one request.
func (c *Client) CreatePrices(ctx context.Context, prices []NewPrice) error {
	if err := c.do(ctx, http.MethodPost, "/prices/create_bulk", createPricesRequest{Prices: prices}, nil); err != nil {
		return fmt.Errorf("error creating prices: %w", err)
	}
	return nil
}

// DeletePrices deletes several prices in one request.
func (c *Client) DeletePrices(ctx context.Context, ids []int64) error {
	if err := c.do(ctx, http.MethodPost, "/prices/delete_bulk", deletePricesRequest{PriceIDs: ids}, nil); err != nil {
		return fmt.Errorf("error deleting prices: %w", err)
	}
	return nil
}

// MyReactions fetches the reactions recorded by a user.
func (c *Client) MyReactions(ctx context.Context, userID int64) ([]Reaction, error) {
	var reactions []Reaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user_reactions/my_reactions/%d", userID), nil, &reactions); err != nil {
		return nil, fmt.Errorf("error fetching reactions: %w", err)
	}
	return reactions, nil
}

// CreateReaction records a like or dislike.
func (c *Client) CreateReaction(ctx context.Context, r NewReaction) (*Reaction, error) {
	var reaction Reaction
	if err := c.do(ctx, http.MethodPost, "/user_reactions", r, &reaction); err != nil {
		return nil, fmt.Errorf("error creating reaction: %w", err)
	}
	return &reaction, nil
}

// DeleteReaction removes a reaction.
func (c *Client) DeleteReaction(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/user_reactions/%d", id), nil, nil); err != nil {
		return fmt.Errorf("error deleting reaction %d: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader = http.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key := IdempotencyKey(ctx); key != "" && method != http.MethodGet {
		req.Header.Set(IdempotencyHeader, key)
	}

	c.log.Debug("api request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()
	c.log.Debug("api response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error unmarshaling JSON: %w", err)
	}
	return nil
}
