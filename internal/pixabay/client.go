package pixabay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrMalformedResponse reports a 2xx response whose body is not a search
// payload (not JSON, or no hits field).
var ErrMalformedResponse = errors.New("malformed search response")

// Searcher defines the interface for fetching one page of search results.
// This interface is implemented by *Client and can be used for testing.
type Searcher interface {
	Search(ctx context.Context, query Query) (SearchResponse, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// Client talks to the Pixabay image search API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	// DefaultAPIURL is the public Pixabay search endpoint.
	DefaultAPIURL = "https://pixabay.com/api/"

	// PerPage is the fixed page size requested from the API.
	PerPage = 25

	defaultUserAgent = "lens/0.1"
	requestTimeout   = 10 * time.Second
	errorBodyLimit   = 200
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client for the endpoint at apiURL using apiKey.
func NewClient(apiURL, apiKey string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		apiKey:  strings.TrimSpace(apiKey),
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// HTTPClient exposes the configured HTTP client so image downloads share
// its timeout and transport.
func (c *Client) HTTPClient() *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c.http
}

// UserAgent returns the User-Agent sent with every request.
func (c *Client) UserAgent() string {
	if c == nil {
		return defaultUserAgent
	}
	return c.userAgent
}

// Search fetches one page of results for query.
//
// A 2xx body that cannot be decoded, or that lacks the hits field, yields an
// error wrapping ErrMalformedResponse; callers treat that as an empty page.
func (c *Client) Search(ctx context.Context, query Query) (SearchResponse, error) {
	if c == nil {
		return SearchResponse{}, fmt.Errorf("client is nil")
	}
	reqURL := c.searchURL(query)

	start := time.Now()
	body, err := c.get(ctx, reqURL)
	if err != nil {
		c.logger.Warn("search failed", "page", query.Page, "error", err)
		return SearchResponse{}, err
	}

	var raw struct {
		Total     int              `json:"total"`
		TotalHits int              `json:"totalHits"`
		Hits      *json.RawMessage `json:"hits"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return SearchResponse{}, fmt.Errorf("decode response: %w: %v", ErrMalformedResponse, err)
	}
	if raw.Hits == nil {
		return SearchResponse{}, fmt.Errorf("decode response: %w: missing hits", ErrMalformedResponse)
	}
	var hits []Image
	if err := json.Unmarshal(*raw.Hits, &hits); err != nil {
		return SearchResponse{}, fmt.Errorf("decode hits: %w: %v", ErrMalformedResponse, err)
	}

	c.logger.Debug("search ok",
		"page", query.Page,
		"hits", len(hits),
		"total_hits", raw.TotalHits,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return SearchResponse{Total: raw.Total, TotalHits: raw.TotalHits, Hits: hits}, nil
}

// searchURL joins the fixed parameters with the query's variable ones. The
// raw query is assembled by hand because category and facet values are sent
// verbatim; url.Values would re-encode them.
func (c *Client) searchURL(query Query) string {
	fixed := url.Values{}
	fixed.Set("key", c.apiKey)
	fixed.Set("per_page", fmt.Sprint(PerPage))
	fixed.Set("safesearch", "true")
	fixed.Set("editors_choice", "true")

	u := *c.baseURL
	u.RawQuery = fixed.Encode() + "&" + query.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", redactKey(err, c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api returned status %d: %s", resp.StatusCode, excerpt(body))
	}
	return body, nil
}

// redactKey strips the API key from transport errors, which embed the URL.
// The returned error still unwraps to the underlying cause.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && !strings.Contains(uerr.Err.Error(), key) {
		redacted := *uerr
		redacted.URL = strings.ReplaceAll(uerr.URL, key, "REDACTED")
		return &redacted
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}

// redactedError hides the key in its message but keeps the cause for
// errors.Is and errors.As.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func excerpt(body []byte) string {
	text := string(bytes.TrimSpace(body))
	if len(text) > errorBodyLimit {
		text = text[:errorBodyLimit] + "…"
	}
	if text == "" {
		return "(empty body)"
	}
	return text
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
