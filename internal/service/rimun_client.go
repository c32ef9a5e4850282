package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jjenkins/rimun/internal/model"
)

const (
	// DefaultBaseURL is used when no RIMUN_API_URL is configured
	DefaultBaseURL = "http://127.0.0.1:8081"
	DefaultLimit   = 50
	DefaultOffset  = 0
)

// RimunClient handles communication with the RIMUN API.
// It holds no mutable state and is safe for concurrent use.
type RimunClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// ClientOption customises a RimunClient
type ClientOption func(*RimunClient)

// WithHTTPClient replaces the default http.Client (which has no timeout)
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RimunClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets the logger used for per-request debug lines
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *RimunClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRimunClient creates a client for the API rooted at baseURL
func NewRimunClient(baseURL string, opts ...ClientOption) *RimunClient {
	c := &RimunClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the root every endpoint path is appended to
func (c *RimunClient) BaseURL() string {
	return c.baseURL
}

// Ptr returns a pointer to v, for filling optional list parameters
func Ptr[T any](v T) *T {
	return &v
}

// Health calls /health
func (c *RimunClient) Health(ctx context.Context) (*model.Health, error) {
	h, err := getJSON[model.Health](ctx, c, "/health")
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Forums lists all forums
func (c *RimunClient) Forums(ctx context.Context) ([]model.Forum, error) {
	return getJSON[[]model.Forum](ctx, c, "/forums")
}

// Committees lists committees, 50 at offset 0 unless the page says otherwise
func (c *RimunClient) Committees(ctx context.Context, page model.PageParams) ([]model.Committee, error) {
	return getJSON[[]model.Committee](ctx, c, "/committees?"+pageQuery(page))
}

// Sessions lists conference sessions, optionally only the active ones
func (c *RimunClient) Sessions(ctx context.Context, params model.ListSessionsParams) ([]model.Session, error) {
	query := buildQuery(
		queryParam{"active", params.Active},
		queryParam{"limit", intOr(params.Limit, DefaultLimit)},
		queryParam{"offset", intOr(params.Offset, DefaultOffset)},
	)
	return getJSON[[]model.Session](ctx, c, "/sessions?"+query)
}

// Posts lists news posts
func (c *RimunClient) Posts(ctx context.Context, page model.PageParams) ([]model.Post, error) {
	return getJSON[[]model.Post](ctx, c, "/posts?"+pageQuery(page))
}

// Delegates lists delegates matching params. Only the filters that are set
// are sent; limit and offset are always present.
func (c *RimunClient) Delegates(ctx context.Context, params model.ListDelegatesParams) ([]model.Delegate, error) {
	query := buildQuery(
		queryParam{"limit", intOr(params.Limit, DefaultLimit)},
		queryParam{"offset", intOr(params.Offset, DefaultOffset)},
		queryParam{"session_id", params.SessionID},
		queryParam{"delegation_id", params.DelegationID},
		queryParam{"committee_id", params.CommitteeID},
		queryParam{"country_code", params.CountryCode},
		queryParam{"school_id", params.SchoolID},
		queryParam{"status_application", params.StatusApplication},
		queryParam{"status_housing", params.StatusHousing},
		queryParam{"is_ambassador", params.IsAmbassador},
		queryParam{"updated_since", params.UpdatedSince},
	)
	return getJSON[[]model.Delegate](ctx, c, "/delegates?"+query)
}

// DelegateByID fetches a single delegate.
//
// The API answers an unknown id with 200 and an empty object, and the RIMUN
// JavaScript client hands that empty record straight to its caller. Here it is
// reported as ErrDelegateNotFound instead, so code ported from that client
// should check IsNotFound(err) rather than test for an empty Delegate. An
// explicit 404 from the API comes back as an *APIError, which IsNotFound also
// matches.
func (c *RimunClient) DelegateByID(ctx context.Context, personID int64) (*model.Delegate, error) {
	path := fmt.Sprintf("/delegates/%d", personID)

	raw, err := getJSON[json.RawMessage](ctx, c, path)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if len(fields) == 0 {
		return nil, ErrDelegateNotFound
	}

	var d model.Delegate
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &d, nil
}

func pageQuery(page model.PageParams) string {
	return buildQuery(
		queryParam{"limit", intOr(page.Limit, DefaultLimit)},
		queryParam{"offset", intOr(page.Offset, DefaultOffset)},
	)
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// getJSON performs a GET on the API and decodes the JSON body into T.
// Transport errors are returned unchanged, non-2xx responses as *APIError and
// undecodable bodies as *DecodeError.
func getJSON[T any](ctx context.Context, c *RimunClient, path string) (T, error) {
	var out T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return out, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "rimun api request",
		slog.String("method", http.MethodGet),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			body = nil
		}
		return out, &APIError{Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, &DecodeError{Path: path, Err: err}
	}

	return out, nil
}
