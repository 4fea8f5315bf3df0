package pumpportal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(zaptest.NewLogger(t))
	c.apiURL = srv.URL
	return c
}

func TestCreateTradeSendsVerbatimPayload(t *testing.T) {
	var got map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		_, _ = w.Write([]byte{0x01, 0x02, 0x03})
	})

	payload, err := c.CreateTrade(context.Background(), &TradeRequest{
		PublicKey:        "wallet111",
		Action:           "sell",
		Mint:             "mint111",
		DenominatedInSol: "false",
		Amount:           "50%",
		Slippage:         10,
		PriorityFee:      0.00005,
		Pool:             "pump",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, payload)

	// Percent sells must reach the gateway as the literal string,
	// never coerced to a number.
	assert.Equal(t, "50%", got["amount"])
	assert.Equal(t, "false", got["denominatedInSol"])
	assert.Equal(t, "sell", got["action"])
	assert.Equal(t, "mint111", got["mint"])
	assert.Equal(t, "pump", got["pool"])
	assert.Equal(t, 10.0, got["slippage"])
	assert.Equal(t, 0.00005, got["priorityFee"])
}

func TestCreateTradeBuyAmountIsNumeric(t *testing.T) {
	var got map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte{0xff})
	})

	_, err := c.CreateTrade(context.Background(), &TradeRequest{
		Action:           "buy",
		DenominatedInSol: "true",
		Amount:           0.005,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.005, got["amount"])
	assert.Equal(t, "true", got["denominatedInSol"])
}

func TestCreateTradeRejectsErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient liquidity", http.StatusBadRequest)
	})

	_, err := c.CreateTrade(context.Background(), &TradeRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "insufficient liquidity")
}

func TestCreateTradeRejectsEmptyPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.CreateTrade(context.Background(), &TradeRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty transaction payload")
}
