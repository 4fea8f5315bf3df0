// =============================
// File: internal/dex/pumpportal/client.go
// =============================
package pumpportal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultAPIURL = "https://pumpportal.fun/api/trade-local"

// TradeRequest — тело запроса к trade-local API. Поле Amount уходит
// в шлюз дословно: число для сумм в SOL, строка процента для продаж.
type TradeRequest struct {
	PublicKey        string      `json:"publicKey"`
	Action           string      `json:"action"`
	Mint             string      `json:"mint"`
	DenominatedInSol string      `json:"denominatedInSol"`
	Amount           interface{} `json:"amount"`
	Slippage         int         `json:"slippage"`
	PriorityFee      float64     `json:"priorityFee"`
	Pool             string      `json:"pool"`
}

// Client запрашивает у PumpPortal неподписанную транзакцию для сделки.
type Client struct {
	client *http.Client
	apiURL string
	logger *zap.Logger
}

// NewClient создает новый клиент шлюза.
func NewClient(logger *zap.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiURL: defaultAPIURL,
		logger: logger.Named("pumpportal"),
	}
}

// CreateTrade posts the trade request and returns the serialized
// unsigned transaction. A non-2xx response is a hard failure for this
// trade attempt; the caller decides whether a later cycle tries again.
func (c *Client) CreateTrade(ctx context.Context, req *TradeRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal trade request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("pumpportal %d: %s", resp.StatusCode, string(payload))
	}

	if len(payload) == 0 {
		return nil, fmt.Errorf("pumpportal returned empty transaction payload")
	}

	return payload, nil
}
