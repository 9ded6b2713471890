package oracle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig configures the client's circuit breaker.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig trips after 5 requests with at least 60% failures and probes
// again after 30 seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// ClientConfig configures an HTTP oracle client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Breaker BreakerConfig
}

// Client talks to a remote oracle over HTTP. Calls go through a circuit breaker so a
// dead service fails fast instead of stalling every expansion.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewClient creates a client for the oracle at cfg.BaseURL.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	bc := cfg.Breaker
	if bc.MinRequests == 0 {
		bc = DefaultBreakerConfig()
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "oracle",
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= bc.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("oracle circuit breaker changed state",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isClientError(err) || errors.Is(err, context.Canceled)
		},
	})
	return c
}

// Expand implements Oracle.
func (c *Client) Expand(ctx context.Context, source string, count int, exclude []string) ([]string, error) {
	var resp phrasesResponse
	if err := c.call(ctx, "expand", PathExpand, expandRequest{Source: source, Count: count, Exclude: exclude}, &resp); err != nil {
		return nil, err
	}
	return resp.Phrases, nil
}

// Cluster implements Oracle.
func (c *Client) Cluster(ctx context.Context, items []Item) ([]Category, error) {
	var resp clusterResponse
	if err := c.call(ctx, "cluster", PathCluster, clusterRequest{Items: items}, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Extract implements Oracle.
func (c *Client) Extract(ctx context.Context, text string) ([]string, error) {
	var resp phrasesResponse
	if err := c.call(ctx, "extract", PathExtract, extractRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	return resp.Phrases, nil
}

// SuggestTitle implements Oracle.
func (c *Client) SuggestTitle(ctx context.Context, phrases []string) (string, error) {
	var resp titleResponse
	if err := c.call(ctx, "title", PathTitle, titleRequest{Phrases: phrases}, &resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Title), nil
}

// State returns the circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) call(ctx context.Context, op, path string, req, resp any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.post(ctx, op, path, req, resp)
	})
	if IsUnavailable(err) {
		return &Error{Op: op, Message: "word service unavailable, try again later", Err: err}
	}
	return err
}

func (c *Client) post(ctx context.Context, op, path string, req, resp any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return &Error{Op: op, Message: "could not encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &Error{Op: op, Message: "invalid service address", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return &Error{Op: op, Message: "could not reach word service", Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return &Error{Op: op, Message: "could not read response", Err: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		var e errorResponse
		msg := fmt.Sprintf("word service returned %d", httpResp.StatusCode)
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &Error{Op: op, Message: msg, Status: httpResp.StatusCode}
	}

	if err := json.Unmarshal(data, resp); err != nil {
		return &Error{Op: op, Message: "malformed response from word service", Err: err}
	}
	return nil
}
