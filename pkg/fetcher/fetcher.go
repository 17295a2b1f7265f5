// Package fetcher provides the shared HTTP client used by every auditor.
// All page and subresource fetches go through one configured client so
// user agent, timeout, body limits, and throttling stay consistent.
package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/seolens/seolens/pkg/defaults"
)

// Config controls client behavior. The zero value of any field falls
// back to the package default.
type Config struct {
	// Timeout is the end-to-end request timeout.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// FollowRedirects controls whether 3xx responses are chased.
	FollowRedirects bool

	// MaxBodySize caps how many body bytes are read into memory.
	MaxBodySize int64

	// RatePerSecond throttles requests against the audited host.
	// Zero disables throttling.
	RatePerSecond int

	// SkipTLSVerify disables certificate verification. Audits that
	// grade TLS leave this off.
	SkipTLSVerify bool
}

// DefaultConfig returns the standard audit fetch configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:         defaults.FetchTimeout,
		UserAgent:       defaults.UAChrome,
		FollowRedirects: true,
		MaxBodySize:     defaults.MaxBodySize,
		RatePerSecond:   defaults.FetchRatePerSecond,
	}
}

// Response is the subset of an HTTP exchange the auditors consume.
// Body is fully read and the connection released before Response is
// handed out.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	FinalURL   string
	TLS        *tls.ConnectionState
}

// Header returns the canonical header value, "" when unset.
func (r *Response) Header(key string) string {
	if r == nil {
		return ""
	}
	return r.Headers.Get(key)
}

// Client wraps http.Client with the audit conventions.
type Client struct {
	http    *http.Client
	cfg     Config
	limiter *rate.Limiter
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Default returns the shared client built from DefaultConfig.
func Default() *Client {
	defaultOnce.Do(func() {
		defaultClient = New(DefaultConfig())
	})
	return defaultClient
}

// New builds a client from cfg. A nil cfg means DefaultConfig; zero
// fields are filled from the defaults individually.
func New(cfg *Config) *Client {
	base := DefaultConfig()
	if cfg == nil {
		cfg = base
	}
	c := *cfg
	if c.Timeout <= 0 {
		c.Timeout = base.Timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = base.UserAgent
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = base.MaxBodySize
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: c.SkipTLSVerify},
	}

	hc := &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
	if !c.FollowRedirects {
		hc.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	cl := &Client{http: hc, cfg: c}
	if c.RatePerSecond > 0 {
		cl.limiter = rate.NewLimiter(rate.Limit(c.RatePerSecond), c.RatePerSecond)
	}
	return cl
}

// Get fetches url and reads the body up to the configured limit.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.do(ctx, http.MethodGet, url)
}

// Head issues a HEAD request. The returned Response has an empty body.
func (c *Client) Head(ctx context.Context, url string) (*Response, error) {
	return c.do(ctx, http.MethodHead, url)
}

func (c *Client) do(ctx context.Context, method, url string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
		TLS:        resp.TLS,
	}, nil
}
