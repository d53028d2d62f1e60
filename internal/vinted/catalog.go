package vinted

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cam71101/vinted-scanner/internal/metrics"
	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

const (
	defaultBaseURL        = "https://www.vinted.co.uk"
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultAcceptLanguage = "en-GB,en;q=0.9"
	defaultSearchTimeout  = 30 * time.Second
	defaultDetailTimeout  = 10 * time.Second

	searchPath = "/api/v2/catalog/items"
	itemPath   = "/api/v2/items/"

	maxBodyBytes = 10 << 20
)

// Client implements CatalogClient against the public Vinted web API.
type Client struct {
	baseURL        string
	userAgent      string
	acceptLanguage string
	searchTimeout  time.Duration
	detailTimeout  time.Duration
	client         *http.Client
	rateLimiter    *RateLimiter
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the marketplace origin, e.g. https://www.vinted.fr.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the HTTP client. A client without a cookie jar is
// copied and the copy gets one so the session survives across calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter. When set, every API call goes
// through Wait() first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithTimeouts sets the per-call timeouts for search and detail requests.
func WithTimeouts(search, detail time.Duration) Option {
	return func(c *Client) {
		if search > 0 {
			c.searchTimeout = search
		}
		if detail > 0 {
			c.detailTimeout = detail
		}
	}
}

// WithUserAgent overrides the browser User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithAcceptLanguage overrides the Accept-Language header.
func WithAcceptLanguage(lang string) Option {
	return func(c *Client) {
		c.acceptLanguage = lang
	}
}

// NewClient creates a new Vinted catalog client with its own cookie jar.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:        defaultBaseURL,
		userAgent:      defaultUserAgent,
		acceptLanguage: defaultAcceptLanguage,
		searchTimeout:  defaultSearchTimeout,
		detailTimeout:  defaultDetailTimeout,
		client:         &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client.Jar == nil {
		// Copy so the caller's client keeps its own (absent) jar.
		hc := *c.client
		// cookiejar.New never fails with nil options.
		hc.Jar, _ = cookiejar.New(nil)
		c.client = &hc
	}
	return c
}

// CallBudget reports how many catalog calls this client has made and how
// many the budget still allows. remaining is -1 when calls are unlimited.
func (c *Client) CallBudget() (used, remaining int64) {
	if c.rateLimiter == nil {
		return 0, -1
	}
	return c.rateLimiter.Calls(), c.rateLimiter.Remaining()
}

// Warmup visits the homepage so the API calls that follow carry the session
// cookies the site hands out to browsers.
func (c *Client) Warmup(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.detailTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("creating warmup request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", c.acceptLanguage)
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("warmup", "error").Inc()
		return fmt.Errorf("executing warmup request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode >= http.StatusBadRequest {
		metrics.CatalogRequestsTotal.WithLabelValues("warmup", "status").Inc()
		return &StatusError{Endpoint: "homepage", StatusCode: resp.StatusCode}
	}

	metrics.CatalogRequestsTotal.WithLabelValues("warmup", "ok").Inc()
	return nil
}

// Search implements CatalogClient.Search. The query is sent verbatim as
// URL parameters.
func (c *Client) Search(ctx context.Context, q domain.Query) (*SearchResponse, error) {
	u := c.baseURL + searchPath
	if params := q.Values().Encode(); params != "" {
		u += "?" + params
	}

	body, err := c.getJSON(ctx, "search", u, c.searchTimeout)
	if err != nil {
		return nil, err
	}

	var apiResp catalogResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	for i := range apiResp.Items {
		apiResp.Items[i].URL = c.ItemURL(string(apiResp.Items[i].ID))
	}

	return &SearchResponse{Items: apiResp.Items}, nil
}

// ItemDetails implements CatalogClient.ItemDetails by fetching the full
// item record, which carries the description the search summary omits.
func (c *Client) ItemDetails(ctx context.Context, id string) (*Item, error) {
	u := c.baseURL + itemPath + url.PathEscape(id)

	body, err := c.getJSON(ctx, "item", u, c.detailTimeout)
	if err != nil {
		return nil, err
	}

	var apiResp itemDetailResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing item response: %w", err)
	}
	if apiResp.Item == nil {
		return nil, fmt.Errorf("item response for %s has no item object", id)
	}

	item := apiResp.Item
	if item.ID == "" {
		item.ID = ItemID(id)
	}
	item.URL = c.ItemURL(id)

	return item, nil
}

// ItemURL returns the canonical listing URL for id.
func (c *Client) ItemURL(id string) string {
	return c.baseURL + "/items/" + id
}

func (c *Client) getJSON(
	ctx context.Context,
	endpoint, u string,
	timeout time.Duration,
) ([]byte, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json, text/plain, */*")
	httpReq.Header.Set("Accept-Language", c.acceptLanguage)
	httpReq.Header.Set("Referer", c.baseURL+"/")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("executing %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "status").Inc()
		return nil, &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Detail:     describeBody(resp.Header.Get("Content-Type"), body),
		}
	}

	metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return body, nil
}

// IsBudgetExhausted reports whether err means the run may not make further
// catalog calls.
func IsBudgetExhausted(err error) bool {
	return errors.Is(err, ErrCallBudgetExhausted)
}
