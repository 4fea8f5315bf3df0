// internal/blockchain/client.go
package blockchain

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

const lamportsPerSOL = 1_000_000_000

// Client обслуживает один или несколько RPC-узлов Solana по кругу.
// Один вызов — одна попытка на одном узле: повторы между циклами
// решает планировщик, а не клиент.
type Client struct {
	endpoints []*rpcEndpoint
	logger    *zap.Logger

	mu        sync.Mutex
	currIndex int
}

type rpcEndpoint struct {
	client *rpc.Client
	url    string
}

// NewClient создает клиент для списка RPC URL.
func NewClient(rpcURLs []string, logger *zap.Logger) (*Client, error) {
	if len(rpcURLs) == 0 {
		return nil, errors.New("empty RPC URL list")
	}

	var endpoints []*rpcEndpoint
	for _, urlStr := range rpcURLs {
		if _, err := url.Parse(urlStr); err != nil {
			logger.Warn("Invalid RPC URL", zap.String("url", urlStr), zap.Error(err))
			continue
		}
		endpoints = append(endpoints, &rpcEndpoint{
			client: rpc.New(urlStr),
			url:    urlStr,
		})
	}

	if len(endpoints) == 0 {
		return nil, errors.New("no valid RPC URLs provided")
	}

	return &Client{
		endpoints: endpoints,
		logger:    logger.Named("blockchain"),
	}, nil
}

// Probe verifies that at least one endpoint answers. Used once at
// startup so a dead endpoint config fails fast instead of burning
// trading cycles.
func (c *Client) Probe(ctx context.Context) error {
	op := func() (struct{}, error) {
		var lastErr error
		for _, ep := range c.endpoints {
			version, err := ep.client.GetVersion(ctx)
			if err != nil {
				lastErr = fmt.Errorf("get version from %s: %w", ep.url, err)
				continue
			}
			if _, err := ep.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized); err != nil {
				lastErr = fmt.Errorf("get latest blockhash from %s: %w", ep.url, err)
				continue
			}
			c.logger.Debug("Successfully connected to RPC",
				zap.String("url", ep.url),
				zap.String("solana_core", version.SolanaCore))
			return struct{}{}, nil
		}
		return struct{}{}, lastErr
	}

	_, err := backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("no RPC endpoint reachable: %w", err)
	}
	return nil
}

// GetBalanceSOL возвращает доступный баланс кошелька в SOL.
func (c *Client) GetBalanceSOL(ctx context.Context, pubkey solana.PublicKey) (float64, error) {
	ep := c.nextEndpoint()

	result, err := ep.client.GetBalance(ctx, pubkey, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("get balance from %s: %w", ep.url, err)
	}

	return float64(result.Value) / lamportsPerSOL, nil
}

// SendTransaction submits a signed transaction with best-effort
// inclusion: preflight is skipped and only confirmed-level commitment
// is requested, to keep latency down.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	ep := c.nextEndpoint()

	sig, err := ep.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       true,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction via %s: %w", ep.url, err)
	}

	return sig, nil
}

func (c *Client) nextEndpoint() *rpcEndpoint {
	c.mu.Lock()
	defer c.mu.Unlock()

	ep := c.endpoints[c.currIndex]
	c.currIndex = (c.currIndex + 1) % len(c.endpoints)
	return ep
}
