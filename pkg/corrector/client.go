// Package corrector is the HTTP client for the external Korean grammar
// corrector. It posts document text and decodes the reported issues, and it
// pushes custom dictionary updates.
package corrector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/bkga-dev/bkga/pkg/dictionary"
	"github.com/bkga-dev/bkga/pkg/types"
)

var (
	ErrNoEndpoint = errors.New("corrector endpoint is not configured")
	ErrNoAPIKey   = errors.New("corrector API key is not configured")
	ErrStatus     = errors.New("corrector returned an error status")
	ErrMalformed  = errors.New("corrector response is malformed")
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 2

	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 16 << 20
)

// Client talks to the corrector. It implements pipeline.Source.
type Client struct {
	endpoint           string
	dictionaryEndpoint string
	apiKey             string
	timeout            time.Duration
	retries            int
	retryWaitMin       time.Duration
	retryWaitMax       time.Duration
	cache              *Cache
	logger             *slog.Logger
	httpClient         *http.Client

	http *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the bearer token.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout bounds each HTTP attempt. Default is 10s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets how many times a failed request is retried. Default is 2.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryWait sets the backoff bounds between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.retryWaitMin = minWait
		c.retryWaitMax = maxWait
	}
}

// WithCache enables the content-addressed response cache.
func WithCache(cache *Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger sets the logger used for request and retry logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDictionaryEndpoint sets the custom dictionary update URL.
func WithDictionaryEndpoint(url string) Option {
	return func(c *Client) {
		c.dictionaryEndpoint = url
	}
}

// New creates a client for the analyze endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}

	c := &Client{
		endpoint:     endpoint,
		timeout:      DefaultTimeout,
		retries:      DefaultRetries,
		retryWaitMin: 200 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	rc := retryablehttp.NewClient()
	if c.httpClient != nil {
		// the caller's client is shared; only the copy gets our timeout
		hc := *c.httpClient
		rc.HTTPClient = &hc
	}
	rc.HTTPClient.Timeout = c.timeout
	rc.RetryMax = c.retries
	rc.RetryWaitMin = c.retryWaitMin
	rc.RetryWaitMax = c.retryWaitMax
	rc.Logger = c.logger
	// hand the final response back so status codes can be reported
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	c.http = rc

	return c, nil
}

// Endpoint returns the analyze URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze posts text to the corrector and returns its issues unfiltered.
func (c *Client) Analyze(ctx context.Context, text string) ([]types.Issue, error) {
	if c.cache != nil {
		if issues, ok := c.cache.Get(text); ok {
			c.logger.Debug("corrector cache hit", "issues", len(issues))
			return issues, nil
		}
	}

	body, err := c.post(ctx, c.endpoint, analyzeRequest{Text: text})
	if err != nil {
		return nil, err
	}

	var resp analyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	issues := make([]types.Issue, 0, len(resp.Issues))
	for _, w := range resp.Issues {
		issue, err := w.toIssue()
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	c.logger.Debug("corrector responded", "issues", len(issues))

	if c.cache != nil {
		c.cache.Set(text, issues)
	}
	return issues, nil
}

// UpdateCustomDictionary pushes a dictionary payload. It needs both a
// dictionary endpoint and an API key.
func (c *Client) UpdateCustomDictionary(ctx context.Context, payload dictionary.Payload) error {
	if c.dictionaryEndpoint == "" {
		return ErrNoEndpoint
	}
	if c.apiKey == "" {
		return ErrNoAPIKey
	}
	if _, err := c.post(ctx, c.dictionaryEndpoint, payload); err != nil {
		return fmt.Errorf("updating custom dictionary: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrStatus, resp.StatusCode)
	}
	return body, nil
}
