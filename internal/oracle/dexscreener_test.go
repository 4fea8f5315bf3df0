package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const twoPairsJSON = `{
  "schemaVersion": "1.0.0",
  "pairs": [
    {
      "chainId": "solana",
      "dexId": "raydium",
      "pairAddress": "shallow",
      "baseToken": {"address": "mint1", "name": "CTST", "symbol": "CTST"},
      "priceUsd": "0.00000100",
      "fdv": 1000,
      "volume": {"h24": 50},
      "priceChange": {"h1": -2.5},
      "liquidity": {"usd": 100}
    },
    {
      "chainId": "solana",
      "dexId": "raydium",
      "pairAddress": "deep",
      "baseToken": {"address": "mint1", "name": "CTST", "symbol": "CTST"},
      "priceUsd": "0.00000123",
      "fdv": 1230,
      "volume": {"h24": 500},
      "priceChange": {"h1": 4.2},
      "liquidity": {"usd": 9000}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient("mint1", zaptest.NewLogger(t))
	c.baseURL = server.URL
	return c, server
}

func TestFetchPicksDeepestPair(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens/mint1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoPairsJSON))
	})

	snap, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, "CTST", snap.Symbol)
	assert.Equal(t, 0.00000123, snap.Price)
	assert.Equal(t, 1230.0, snap.MarketCap)
	assert.Equal(t, 500.0, snap.Volume24h)
	assert.Equal(t, 4.2, snap.PriceChange1h)
}

func TestFetchNoPairsIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"schemaVersion": "1.0.0", "pairs": null}`))
	})

	snap, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFetchUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	snap, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
}

func TestFetchMalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	snap, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
}

func TestFetchEmptyPriceIsZero(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
  "pairs": [
    {
      "baseToken": {"name": "CTST", "symbol": "CTST"},
      "priceUsd": "",
      "liquidity": {"usd": 10}
    }
  ]
}`))
	})

	snap, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Zero(t, snap.Price)
}
