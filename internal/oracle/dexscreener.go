// internal/oracle/dexscreener.go

package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.dexscreener.com/latest/dex"

// Snapshot — неизменяемый срез рыночных данных по токену за один цикл.
type Snapshot struct {
	Name          string
	Symbol        string
	Price         float64
	MarketCap     float64
	Volume24h     float64
	PriceChange1h float64
}

// dexScreenerResponse представляет основную структуру ответа
type dexScreenerResponse struct {
	SchemaVersion string     `json:"schemaVersion"`
	Pairs         []pairInfo `json:"pairs"`
}

type pairInfo struct {
	ChainID     string        `json:"chainId"`
	DexID       string        `json:"dexId"`
	PairAddress string        `json:"pairAddress"`
	BaseToken   tokenInfo     `json:"baseToken"`
	PriceUsd    string        `json:"priceUsd"`
	FDV         float64       `json:"fdv"`
	Volume      volumeInfo    `json:"volume"`
	PriceChange changeInfo    `json:"priceChange"`
	Liquidity   liquidityInfo `json:"liquidity"`
}

type tokenInfo struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type volumeInfo struct {
	H24 float64 `json:"h24"`
}

type changeInfo struct {
	H1 float64 `json:"h1"`
}

type liquidityInfo struct {
	USD float64 `json:"usd"`
}

// Client запрашивает рыночные данные токена у DexScreener.
type Client struct {
	client  *http.Client
	baseURL string
	mint    string
	logger  *zap.Logger
}

// NewClient создает новый клиент для заданного токена.
func NewClient(mint string, logger *zap.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: defaultBaseURL,
		mint:    mint,
		logger:  logger.Named("dexscreener"),
	}
}

// Fetch returns the current market snapshot for the tracked token, or
// (nil, nil) when DexScreener has no pairs yet — a normal condition for
// a token with no trade history. One outbound call, no caching, no retry.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	url := fmt.Sprintf("%s/tokens/%s", c.baseURL, c.mint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var response dexScreenerResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(response.Pairs) == 0 {
		c.logger.Debug("no pairs on DexScreener yet", zap.String("mint", c.mint))
		return nil, nil
	}

	// Берем пару с наибольшей ликвидностью
	best := &response.Pairs[0]
	for i := 1; i < len(response.Pairs); i++ {
		if response.Pairs[i].Liquidity.USD > best.Liquidity.USD {
			best = &response.Pairs[i]
		}
	}

	price := 0.0
	if best.PriceUsd != "" {
		if price, err = strconv.ParseFloat(best.PriceUsd, 64); err != nil {
			return nil, fmt.Errorf("parse priceUsd %q: %w", best.PriceUsd, err)
		}
	}

	return &Snapshot{
		Name:          best.BaseToken.Name,
		Symbol:        best.BaseToken.Symbol,
		Price:         price,
		MarketCap:     best.FDV,
		Volume24h:     best.Volume.H24,
		PriceChange1h: best.PriceChange.H1,
	}, nil
}
