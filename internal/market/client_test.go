package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, defaultAPIBase, u.Host)

	u, err = parseBaseURL("https://advisor.example:8443/ignored?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://advisor.example:8443", u.String())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL, WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var gotSearch, gotHistoryPath, gotTop, gotUserAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/crafting/opportunities":
			gotTop = r.URL.Query().Get("top")
			_, _ = w.Write([]byte(`[{"Produto":"Iron Sword","Custo_Manufatura":10.5,"Preco_Venda":"20","Spread":9.5,"Margem_Perc":90.47,"Sourcing_Insumos":"Iron Bar @ Kerys"}]`))
		case r.URL.Path == "/api/market/search":
			gotSearch = r.URL.Query().Get("query")
			_ = json.NewEncoder(w).Encode([]string{"Charcoal", "Charcoal Brick"})
		case strings.HasPrefix(r.URL.Path, "/api/market/item/"):
			gotHistoryPath = r.URL.EscapedPath()
			_, _ = w.Write([]byte(`[{"SnapshotDate":"2025-01-02 13:00:00","Median_Price":null,"Avg_Price":4.5,"Min_Price":3,"Units_Sold_Since_Last":7}]`))
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()

	crafting := c.Crafting(ctx, 15)
	require.Len(t, crafting, 1)
	assert.Equal(t, "15", gotTop)
	assert.Equal(t, "Iron Sword", crafting[0].Product.String())
	assert.Equal(t, "20", crafting[0].SalePrice.Raw())
	assert.True(t, crafting[0].Spread.Valid())

	names := c.Search(ctx, "char coal&x=1")
	assert.Equal(t, []string{"Charcoal", "Charcoal Brick"}, names)
	assert.Equal(t, "char coal&x=1", gotSearch)

	points := c.History(ctx, "Iron/Bar")
	require.Len(t, points, 1)
	assert.Equal(t, "/api/market/item/Iron%2FBar/history", gotHistoryPath)
	price, ok := points[0].Price()
	require.True(t, ok)
	assert.InDelta(t, 4.5, price, 0.0001)

	assert.True(t, strings.HasPrefix(gotUserAgent, "bazaar/"), "User-Agent = %q", gotUserAgent)
}

func TestClient_FailuresCollapseToNil(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/market/liquidity":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/api/logistics/orders":
			_, _ = w.Write([]byte("{not-json"))
		case "/api/logistics/suppliers":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	assert.Nil(t, c.Liquidity(ctx))
	assert.Nil(t, c.Orders(ctx))
	assert.Equal(t, 2, c.Health().Status().ConsecutiveFailures)
	assert.True(t, c.Health().Status().IsOffline())

	assert.Empty(t, c.Suppliers(ctx))
	status := c.Health().Status()
	assert.Zero(t, status.ConsecutiveFailures)
	assert.False(t, status.LastSuccess.IsZero())
	require.Error(t, status.LastError)
	assert.Contains(t, status.LastError.Error(), "decode response")
}

func TestClient_FetchUnreachable(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", WithTimeout(500*time.Millisecond))
	require.NoError(t, err)
	var out []string
	assert.False(t, c.Fetch(context.Background(), "/market/search?query=abc", &out))
	assert.Nil(t, out)
}

func TestClient_TriggerRefresh(t *testing.T) {
	t.Parallel()

	var posts atomic.Int32
	var mode atomic.Value
	mode.Store("success")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/fetch-prices" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		posts.Add(1)
		switch mode.Load() {
		case "success":
			_, _ = w.Write([]byte(`{"status":"success","message":"Market prices updated successfully."}`))
		case "script":
			_, _ = w.Write([]byte(`{"status":"error","message":"Script execution failed."}`))
		case "crash":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"python not found"}`))
		case "garbage":
			_, _ = w.Write([]byte(`<html>`))
		}
	})

	ctx := context.Background()
	res, err := c.TriggerRefresh(ctx)
	require.NoError(t, err)
	assert.True(t, res.OK())

	mode.Store("script")
	res, err = c.TriggerRefresh(ctx)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, "Script execution failed.", res.Message)

	mode.Store("crash")
	res, err = c.TriggerRefresh(ctx)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "python not found", res.Message)

	mode.Store("garbage")
	_, err = c.TriggerRefresh(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")

	assert.EqualValues(t, 4, posts.Load())
}
