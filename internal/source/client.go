package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/userdir/internal/users"
)

// Source defaults.
const (
	// DefaultURL is the public placeholder directory.
	DefaultURL = "https://jsonplaceholder.typicode.com/users"

	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client.
	DefaultUserAgent = "userdir"
)

// Validation errors for client options.
var (
	ErrInvalidURL     = errors.New("source URL must be an absolute http or https URL")
	ErrInvalidTimeout = errors.New("source timeout must be positive")
)

// Fetcher returns the complete, unfiltered user list.
type Fetcher interface {
	FetchAllUsers(ctx context.Context) ([]users.User, error)
}

// Options configures a Client.
type Options struct {
	// URL is the endpoint returning a JSON array of users.
	URL string

	// Timeout bounds a single request.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper

	// Logger receives request diagnostics; nil disables logging.
	Logger *zerolog.Logger
}

// Client fetches the user directory with a single GET. It never retries.
type Client struct {
	http   *resty.Client
	url    string
	logger zerolog.Logger
}

// NewClient validates opts and builds a client.
func NewClient(opts Options) (*Client, error) {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if err := ValidateURL(opts.URL); err != nil {
		return nil, err
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidTimeout, opts.Timeout)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	httpClient := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", opts.UserAgent)
	if opts.Transport != nil {
		httpClient.SetTransport(opts.Transport)
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "source").Logger()
	}

	return &Client{
		http:   httpClient,
		url:    opts.URL,
		logger: logger,
	}, nil
}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return fmt.Errorf("%w: got %q", ErrInvalidURL, raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}
	return nil
}

// URL returns the endpoint the client reads.
func (c *Client) URL() string {
	return c.url
}

// FetchAllUsers performs one GET and decodes the user list.
// Every failure is returned as a *FetchError.
func (c *Client) FetchAllUsers(ctx context.Context) ([]users.User, error) {
	c.logger.Debug().Ctx(ctx).Str("url", c.url).Msg("fetching users")

	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, &FetchError{Kind: FailureNetwork, URL: c.url, Err: err}
	}

	if !resp.IsSuccess() {
		return nil, &FetchError{
			Kind:       FailureStatus,
			URL:        c.url,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}

	records, err := decodeUsers(resp.Body())
	if err != nil {
		return nil, &FetchError{Kind: FailurePayload, URL: c.url, StatusCode: resp.StatusCode(), Err: err}
	}

	c.logger.Debug().
		Ctx(ctx).
		Str("url", c.url).
		Int("status", resp.StatusCode()).
		Int("count", len(records)).
		Dur("duration", resp.Time()).
		Msg("fetched users")

	return records, nil
}

// decodeUsers parses a JSON array of user objects with unique ids.
func decodeUsers(body []byte) ([]users.User, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("response is not a JSON array")
	}

	var records []users.User
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}

	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate user id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	if records == nil {
		records = []users.User{}
	}
	return records, nil
}
