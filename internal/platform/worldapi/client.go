package worldapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/vovakirdan/knight-skies/internal/leaderboard"
)

// ClientConfig holds configuration for the world leaderboard client.
type ClientConfig struct {
	// BaseURL is the server root, e.g. "http://localhost:8090".
	BaseURL string

	// MaxRetries is the number of extra attempts for failed reads.
	// Defaults to 3 if zero. Inserts are never retried.
	MaxRetries uint64

	// BaseRetryDelay is the first backoff delay; it doubles per attempt.
	// Defaults to 200ms if zero.
	BaseRetryDelay time.Duration

	// HTTPClient allows injecting a custom HTTP client (useful for testing).
	// Defaults to a client with a 10s timeout.
	HTTPClient *http.Client
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("worldapi: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Client talks to a world leaderboard server. It implements
// leaderboard.RemoteStore.
type Client struct {
	config ClientConfig
	http   *http.Client
}

// NewClient creates a client for the server at cfg.BaseURL.
func NewClient(cfg ClientConfig) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BaseRetryDelay == 0 {
		cfg.BaseRetryDelay = 200 * time.Millisecond
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{config: cfg, http: httpClient}
}

// QueryTopN fetches the best rows of q.Table. Transport failures and 5xx
// answers are retried with exponential backoff.
func (c *Client) QueryTopN(ctx context.Context, q leaderboard.Query) ([]leaderboard.Record, error) {
	if q.SortKey != "" && q.SortKey != "score" {
		return nil, fmt.Errorf("worldapi: cannot sort by %q", q.SortKey)
	}

	endpoint := c.tableURL(q.Table)
	if q.Limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(q.Limit)
	}

	var resp TopResponse
	backoff := retry.WithMaxRetries(c.config.MaxRetries, retry.NewExponential(c.config.BaseRetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
		if isRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	records := make([]leaderboard.Record, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		records = append(records, leaderboard.Record{Name: e.Name, Score: e.Score})
	}
	return records, nil
}

// InsertRecord adds r to table. It is attempted once.
func (c *Client) InsertRecord(ctx context.Context, table string, r leaderboard.Record) error {
	body, err := json.Marshal(InsertRequest{Name: r.Name, Score: r.Score})
	if err != nil {
		return fmt.Errorf("worldapi: cannot encode record: %w", err)
	}
	return c.do(ctx, http.MethodPost, c.tableURL(table), body, nil)
}

// Health checks that the server answers.
func (c *Client) Health(ctx context.Context) error {
	var resp HealthResponse
	return c.do(ctx, http.MethodGet, c.config.BaseURL+"/health", nil, &resp)
}

func (c *Client) tableURL(table string) string {
	return c.config.BaseURL + "/api/v1/tables/" + url.PathEscape(table) + "/"
}

// do sends one request and decodes a JSON answer into out when non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("worldapi: cannot build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("worldapi: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e ErrorResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<12))
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(data))
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("worldapi: cannot decode response: %w", err)
	}
	return nil
}

// isRetryable reports whether a failed read may succeed on another attempt.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 || apiErr.Status == http.StatusTooManyRequests
	}
	return true
}

var _ leaderboard.RemoteStore = (*Client)(nil)
