package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectFetcher defines the read-only calls the store modules depend on.
// This interface is implemented by *Client and can be used for testing.
type ObjectFetcher interface {
	FetchObject(ctx context.Context, id int64) (Object, error)
	FetchObjects(ctx context.Context, serializedQuery string) (ObjectPage, error)
}

// Ensure Client implements ObjectFetcher at compile time.
var _ ObjectFetcher = (*Client)(nil)

// Client talks to the objects REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	defaultBaseURL   = "http://127.0.0.1:8080"
	defaultUserAgent = "curio/0.1"
	requestTimeout   = 5 * time.Second

	headerTotalCount = "X-Total-Count"
	headerTotalPages = "X-Total-Pages"
	headerPerPage    = "X-Per-Page"
	headerRequestID  = "X-Request-ID"
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger attaches a logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a Client rooted at baseURL. The base path is kept so
// deployments behind a prefix (http://host/api) resolve correctly.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised API root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchObject retrieves a single object by id.
func (c *Client) FetchObject(ctx context.Context, id int64) (Object, error) {
	if c == nil {
		return Object{}, fmt.Errorf("client is nil")
	}
	var payload Object
	path := "/objects/" + strconv.FormatInt(id, 10)
	if _, err := c.get(ctx, path, &payload); err != nil {
		return Object{}, err
	}
	return payload, nil
}

// FetchObjects retrieves one page of object summaries. serializedQuery is
// the output of urlquery.Encode and may be empty.
func (c *Client) FetchObjects(ctx context.Context, serializedQuery string) (ObjectPage, error) {
	if c == nil {
		return ObjectPage{}, fmt.Errorf("client is nil")
	}
	var body json.RawMessage
	header, err := c.get(ctx, "/objects"+serializedQuery, &body)
	if err != nil {
		return ObjectPage{}, err
	}
	page, err := decodeObjectPage(body, header)
	if err != nil {
		return ObjectPage{}, fmt.Errorf("decode response: %w", err)
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) (http.Header, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	return c.doURL(ctx, http.MethodGet, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) (http.Header, error) {
	reqURL := c.resolve(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerRequestID, requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "request_id", requestID, "method", method, "url", reqURL.String(), "error", err)
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request",
		"request_id", requestID,
		"method", method,
		"url", reqURL.String(),
		"status", resp.StatusCode,
		"elapsed", time.Since(started))

	if resp.StatusCode >= 400 {
		return nil, &StatusError{Method: method, Path: rel.String(), StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return resp.Header, nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return resp.Header, nil
}

// resolve appends rel to the base path instead of replacing it, so
// "/objects" under "http://host/api" becomes "http://host/api/objects".
func (c *Client) resolve(rel *url.URL) *url.URL {
	out := *c.baseURL
	out.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(rel.Path, "/")
	out.RawPath = ""
	out.RawQuery = rel.RawQuery
	return &out
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
