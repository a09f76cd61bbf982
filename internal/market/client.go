package market

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

	"github.com/five82/bazaar/internal/logging"
)

// API defines every advisor endpoint the dashboard consumes. Each read method
// returns nil when the fetch fails for any reason.
type API interface {
	Crafting(ctx context.Context, top int) []CraftingOpportunity
	Liquidity(ctx context.Context) []LiquidityRecord
	Arbitrage(ctx context.Context) []ArbitrageRoute
	Orders(ctx context.Context) []Order
	Suppliers(ctx context.Context) []Supplier
	Search(ctx context.Context, query string) []string
	History(ctx context.Context, item string) []HistoryPoint
	Producers(ctx context.Context, item string) []ProducerZone
	TriggerRefresh(ctx context.Context) (RefreshResult, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the advisor HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	health    *Health
	timeout   time.Duration
}

const (
	defaultAPIBase   = "127.0.0.1:8000"
	defaultUserAgent = "bazaar/0.1"
	apiPrefix        = "/api"
)

// Endpoint paths relative to the API prefix.
const (
	EndpointCrafting  = "/crafting/opportunities"
	EndpointLiquidity = "/market/liquidity"
	EndpointArbitrage = "/logistics/arbitrage"
	EndpointOrders    = "/logistics/orders"
	EndpointSuppliers = "/logistics/suppliers"
	EndpointSearch    = "/market/search"
	EndpointRefresh   = "/admin/fetch-prices"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds each read request. Zero leaves them unbounded. The price
// refresh POST runs a server-side job synchronously, so it is bounded only by
// the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger routes fetch diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the API rooted at apiBase (host:port or URL).
func NewClient(apiBase string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    logging.Discard(),
		health:    &Health{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Health exposes the fetch outcome tracker.
func (c *Client) Health() *Health {
	return c.health
}

// Fetch GETs endpoint (path plus any query, relative to the API prefix) and
// decodes the JSON body into dest. Transport, status, and decode failures are
// logged and collapsed into a false return; callers treat a failed fetch the
// same as an empty one.
func (c *Client) Fetch(ctx context.Context, endpoint string, dest any) bool {
	if c == nil {
		return false
	}
	if err := c.get(ctx, endpoint, dest); err != nil {
		c.logger.Warn("fetch failed", "endpoint", endpoint, "error", err)
		c.health.recordFailure(err)
		return false
	}
	c.health.recordSuccess()
	return true
}

// Crafting returns the top crafting opportunities ranked by spread.
func (c *Client) Crafting(ctx context.Context, top int) []CraftingOpportunity {
	var rows []CraftingOpportunity
	endpoint := EndpointCrafting
	if top > 0 {
		endpoint += "?top=" + strconv.Itoa(top)
	}
	if !c.Fetch(ctx, endpoint, &rows) {
		return nil
	}
	return rows
}

// Liquidity returns items ranked by recent sales turnover.
func (c *Client) Liquidity(ctx context.Context) []LiquidityRecord {
	var rows []LiquidityRecord
	if !c.Fetch(ctx, EndpointLiquidity, &rows) {
		return nil
	}
	return rows
}

// Arbitrage returns buy-low/sell-high routes between zones.
func (c *Client) Arbitrage(ctx context.Context) []ArbitrageRoute {
	var rows []ArbitrageRoute
	if !c.Fetch(ctx, EndpointArbitrage, &rows) {
		return nil
	}
	return rows
}

// Orders returns client orders, both constant and one-time.
func (c *Client) Orders(ctx context.Context) []Order {
	var rows []Order
	if !c.Fetch(ctx, EndpointOrders, &rows) {
		return nil
	}
	return rows
}

// Suppliers returns known suppliers.
func (c *Client) Suppliers(ctx context.Context) []Supplier {
	var rows []Supplier
	if !c.Fetch(ctx, EndpointSuppliers, &rows) {
		return nil
	}
	return rows
}

// Search returns item names matching query, in server order.
func (c *Client) Search(ctx context.Context, query string) []string {
	var names []string
	if !c.Fetch(ctx, EndpointSearch+"?query="+url.QueryEscape(query), &names) {
		return nil
	}
	return names
}

// History returns the snapshot history for item.
func (c *Client) History(ctx context.Context, item string) []HistoryPoint {
	var points []HistoryPoint
	if !c.Fetch(ctx, ItemEndpoint(item, "history"), &points) {
		return nil
	}
	return points
}

// Producers returns per-zone producer counts for item.
func (c *Client) Producers(ctx context.Context, item string) []ProducerZone {
	var zones []ProducerZone
	if !c.Fetch(ctx, ItemEndpoint(item, "producers"), &zones) {
		return nil
	}
	return zones
}

// ItemEndpoint builds /market/item/<item>/<leaf> with item path-escaped.
func ItemEndpoint(item, leaf string) string {
	return "/market/item/" + url.PathEscape(item) + "/" + leaf
}

// TriggerRefresh asks the server to re-fetch market prices. Unlike the read
// endpoints it reports failures: the caller surfaces them to the user.
func (c *Client) TriggerRefresh(ctx context.Context) (RefreshResult, error) {
	if c == nil {
		return RefreshResult{}, fmt.Errorf("client is nil")
	}
	resp, err := c.do(ctx, http.MethodPost, EndpointRefresh)
	if err != nil {
		return RefreshResult{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	var result RefreshResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return RefreshResult{}, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if result.Message == "" && result.Detail != "" {
		result.Message = result.Detail
	}
	if resp.StatusCode >= 400 && result.Status == "" {
		result.Status = "error"
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, endpoint string, dest any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	resp, err := c.do(ctx, http.MethodGet, endpoint)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("api %s returned status %d", endpoint, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string) (*http.Response, error) {
	rel, err := url.Parse(apiPrefix + endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
