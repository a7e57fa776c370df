// Package osmapi is a client for the read-only parts of the OpenStreetMap
// API 0.6 needed to describe changesets.
package osmapi

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/omniscale/changemonger/log"
	"github.com/omniscale/changemonger/stats"
	"github.com/omniscale/changemonger/tracing"
)

const (
	DefaultBaseURL   = "https://api.openstreetmap.org/api/0.6"
	DefaultUserAgent = "changemonger"
	DefaultRate      = 2.0
	DefaultBurst     = 4
	DefaultCacheSize = 1024
)

// Client fetches elements and changesets. It is safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	cache     *lru.Cache[string, []byte]
}

type Option func(*Client)

func BaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

func UserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// RateLimit limits requests to rps requests per second. rps <= 0 disables
// the limit.
func RateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// CacheSize sets the number of cached responses. size <= 0 disables the
// cache.
func CacheSize(size int) Option {
	return func(c *Client) {
		if size <= 0 {
			c.cache = nil
			return
		}
		c.cache, _ = lru.New[string, []byte](size)
	}
}

func HTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: 60 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRate), DefaultBurst),
	}
	c.cache, _ = lru.New[string, []byte](DefaultCacheSize)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get returns the body of a successful GET request for path. Responses are
// cached by URL.
func (c *Client) get(ctx context.Context, operation, path string) ([]byte, error) {
	url := c.baseURL + path
	ctx, span := tracing.StartSpan(ctx, "osmapi."+operation)
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrHTTPURL, url))

	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			stats.RecordCache(true)
			span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, true))
			return body, nil
		}
		stats.RecordCache(false)
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := c.do(ctx, url)
	stats.RecordAPIRequest(operation, time.Since(start), err == nil)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	log.Printf("[debug] GET %s (%d bytes) in %s", url, len(body), time.Since(start))

	if c.cache != nil {
		c.cache.Add(url, body)
	}
	return body, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil || c.limiter.Allow() {
		return nil
	}
	start := time.Now()
	tracing.AddEvent(ctx, "rate_limit_wait")
	err := c.limiter.Wait(ctx)
	stats.RecordRateLimitWait(time.Since(start))
	if err != nil {
		return errors.Wrap(err, "waiting for rate limit")
	}
	return nil
}

func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "requesting %s", url)
	}
	defer resp.Body.Close()
	tracing.SetAttributes(ctx, attribute.Int(tracing.AttrHTTPStatus, resp.StatusCode))

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response of %s", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
