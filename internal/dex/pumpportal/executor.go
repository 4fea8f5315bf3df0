// =============================
// File: internal/dex/pumpportal/executor.go
// =============================
package pumpportal

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpportal-bot/internal/types"
	"github.com/rovshanmuradov/pumpportal-bot/internal/wallet"
)

// Gateway выдает сериализованную неподписанную транзакцию для сделки.
type Gateway interface {
	CreateTrade(ctx context.Context, req *TradeRequest) ([]byte, error)
}

// Submitter отправляет подписанную транзакцию в сеть.
type Submitter interface {
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Executor turns a TradeIntent into an on-chain transaction: request
// payload from the gateway, decode, sign, submit. Every failure
// collapses to Outcome{Success: false}; nothing escapes the boundary
// and nothing is retried here — a failed attempt is simply a failed
// cycle for the caller.
type Executor struct {
	gateway Gateway
	chain   Submitter
	wallet  *wallet.Wallet
	mint    string
	pool    string
	logger  *zap.Logger
}

// NewExecutor создает исполнитель сделок для заданного токена.
func NewExecutor(gateway Gateway, chain Submitter, w *wallet.Wallet, mint string, logger *zap.Logger) *Executor {
	return &Executor{
		gateway: gateway,
		chain:   chain,
		wallet:  w,
		mint:    mint,
		pool:    "pump",
		logger:  logger.Named("executor"),
	}
}

// Execute выполняет сделку и возвращает только успех/неуспех.
func (e *Executor) Execute(ctx context.Context, intent types.TradeIntent) types.TradeOutcome {
	log := e.logger.With(
		zap.String("action", string(intent.Direction)),
		zap.String("amount", intent.Amount.String()),
	)

	tx, err := e.prepareSignedTransaction(ctx, intent)
	if err != nil {
		log.Error("Trade preparation failed", zap.Error(err))
		return types.TradeOutcome{Success: false}
	}

	sig, err := e.chain.SendTransaction(ctx, tx)
	if err != nil {
		log.Error("Trade submission failed", zap.Error(err))
		return types.TradeOutcome{Success: false}
	}

	log.Info("✅ Trade sent",
		zap.String("signature", sig.String()),
		zap.String("solscan", "https://solscan.io/tx/"+sig.String()))

	return types.TradeOutcome{Success: true, Signature: sig.String()}
}

func (e *Executor) prepareSignedTransaction(ctx context.Context, intent types.TradeIntent) (*solana.Transaction, error) {
	denominated := "false"
	if intent.Amount.DenominatedInSOL() {
		denominated = "true"
	}

	payload, err := e.gateway.CreateTrade(ctx, &TradeRequest{
		PublicKey:        e.wallet.PublicKey.String(),
		Action:           string(intent.Direction),
		Mint:             e.mint,
		DenominatedInSol: denominated,
		Amount:           intent.Amount.GatewayValue(),
		Slippage:         intent.SlippagePercent,
		PriorityFee:      intent.PriorityFeeSOL,
		Pool:             e.pool,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(payload))
	if err != nil {
		return nil, fmt.Errorf("decode transaction payload: %w", err)
	}

	if err := e.wallet.SignTransaction(tx); err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	return tx, nil
}
