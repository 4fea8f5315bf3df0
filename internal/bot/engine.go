// internal/bot/engine.go
package bot

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpportal-bot/internal/config"
	"github.com/rovshanmuradov/pumpportal-bot/internal/export"
	"github.com/rovshanmuradov/pumpportal-bot/internal/oracle"
	"github.com/rovshanmuradov/pumpportal-bot/internal/types"
	"github.com/rovshanmuradov/pumpportal-bot/internal/wallet"
)

const externalCallTimeout = 15 * time.Second

// PriceSource возвращает срез рыночных данных или nil, если данных
// еще нет.
type PriceSource interface {
	Fetch(ctx context.Context) (*oracle.Snapshot, error)
}

// BalanceSource возвращает доступный баланс кошелька в SOL.
type BalanceSource interface {
	GetBalanceSOL(ctx context.Context, pubkey solana.PublicKey) (float64, error)
}

// TradeExecutor выполняет сделку и возвращает только успех/неуспех.
type TradeExecutor interface {
	Execute(ctx context.Context, intent types.TradeIntent) types.TradeOutcome
}

// CycleResult сообщает планировщику, чем закончился цикл.
type CycleResult int

const (
	CycleHeld CycleResult = iota
	CycleTraded
	CycleLowBalance
	CycleNoPriceData
	CycleFaulted
)

// Engine owns the Position and runs one full cycle at a time:
// balance guard, price fetch, decision, optional trade. Exactly one
// cycle is ever in flight, so Position needs no locking.
type Engine struct {
	cfg      *config.Config
	wallet   *wallet.Wallet
	prices   PriceSource
	balances BalanceSource
	executor TradeExecutor
	journal  *export.Journal
	logger   *zap.Logger

	position Position
	cycle    int
}

// NewEngine создает движок торгового цикла.
func NewEngine(
	cfg *config.Config,
	w *wallet.Wallet,
	prices PriceSource,
	balances BalanceSource,
	executor TradeExecutor,
	journal *export.Journal,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		cfg:      cfg,
		wallet:   w,
		prices:   prices,
		balances: balances,
		executor: executor,
		journal:  journal,
		logger:   logger.Named("engine"),
	}
}

// Position возвращает текущее состояние позиции.
func (e *Engine) Position() Position {
	return e.position
}

// RunCycle executes one trading cycle. A panic below this point is an
// UnexpectedFault: it is logged loudly and swallowed so the loop keeps
// running; Position is only ever mutated after a confirmed successful
// trade, so a fault cannot leave it half-updated.
func (e *Engine) RunCycle(ctx context.Context) (result CycleResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("💥 Unexpected fault in cycle",
				zap.Any("panic", r),
				zap.Stack("stack"))
			result = CycleFaulted
		}
	}()

	e.cycle++
	log := e.logger.With(
		zap.Int("cycle", e.cycle),
		zap.String("correlation_id", uuid.New().String()),
	)
	log.Info("📊 Cycle started", zap.String("position", e.position.State.String()))

	balance := e.spendableBalance(ctx, log)
	log.Info("💳 SOL balance", zap.Float64("balance_sol", balance))

	if balance < e.cfg.MinSOLBalance {
		log.Warn("⚠️ Balance below safety floor, top up the bot wallet",
			zap.Float64("balance_sol", balance),
			zap.Float64("floor_sol", e.cfg.MinSOLBalance))
		return CycleLowBalance
	}

	snap := e.fetchSnapshot(ctx, log)
	if snap == nil {
		log.Info("⏳ No price data yet, skipping cycle")
		return CycleNoPriceData
	}

	log.Info("📈 Market snapshot",
		zap.String("name", snap.Name),
		zap.Float64("price_usd", snap.Price),
		zap.Float64("market_cap", snap.MarketCap),
		zap.Float64("volume_24h", snap.Volume24h),
		zap.Float64("change_1h", snap.PriceChange1h))

	d := decide(e.position, snap, thresholds{
		ProfitTarget: e.cfg.ProfitTarget,
		StopLoss:     e.cfg.StopLoss,
	})
	if d.HasPnL {
		log.Info("📉 P&L since entry", zap.Float64("pnl_percent", d.PnLPercent))
	}

	switch d.Action {
	case ActionBuy:
		return e.enterPosition(ctx, log, snap)
	case ActionTakeProfit:
		log.Info("🎯 Profit target hit, selling",
			zap.Float64("target_percent", e.cfg.ProfitTarget),
			zap.String("sell_amount", e.cfg.SellAmount.String()))
		return e.exitPosition(ctx, log, snap, d, e.cfg.SellAmount)
	case ActionStopLoss:
		log.Warn("🛑 Stop loss hit, selling everything",
			zap.Float64("stop_percent", e.cfg.StopLoss))
		return e.exitPosition(ctx, log, snap, d, types.FullExit())
	default:
		if e.position.State == StateLong {
			log.Info("⏳ Holding",
				zap.Float64("target_percent", e.cfg.ProfitTarget),
				zap.Float64("stop_percent", e.cfg.StopLoss))
		}
		return CycleHeld
	}
}

// spendableBalance queries the wallet balance. Any failure is reported
// as zero: a cycle never assumes it has funds when the query errored.
func (e *Engine) spendableBalance(ctx context.Context, log *zap.Logger) float64 {
	callCtx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()

	balance, err := e.balances.GetBalanceSOL(callCtx, e.wallet.PublicKey)
	if err != nil {
		log.Error("Balance check failed, treating as insufficient", zap.Error(err))
		return 0
	}
	return balance
}

// fetchSnapshot returns nil both for "no data yet" and for transport
// failures; the state machine treats the two identically and skips the
// cycle without touching Position.
func (e *Engine) fetchSnapshot(ctx context.Context, log *zap.Logger) *oracle.Snapshot {
	callCtx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()

	snap, err := e.prices.Fetch(callCtx)
	if err != nil {
		log.Error("Price fetch failed", zap.Error(err))
		return nil
	}
	return snap
}

func (e *Engine) enterPosition(ctx context.Context, log *zap.Logger, snap *oracle.Snapshot) CycleResult {
	amount := types.SOL(e.cfg.BuyAmountSOL)
	log.Info("🟢 No position, buying",
		zap.Float64("amount_sol", e.cfg.BuyAmountSOL),
		zap.String("symbol", snap.Symbol))

	outcome := e.executeTrade(ctx, types.TradeIntent{
		Direction:       types.DirectionBuy,
		Amount:          amount,
		SlippagePercent: e.cfg.Slippage,
		PriorityFeeSOL:  e.cfg.PriorityFee,
	})
	e.recordTrade(ActionBuy, amount, snap, outcome)

	if !outcome.Success {
		log.Error("Buy failed, position unchanged")
		return CycleHeld
	}

	e.position.Open(snap.Price)
	log.Info("📌 Entry price recorded", zap.Float64("entry_price", snap.Price))
	return CycleTraded
}

func (e *Engine) exitPosition(ctx context.Context, log *zap.Logger, snap *oracle.Snapshot, d Decision, amount types.Amount) CycleResult {
	outcome := e.executeTrade(ctx, types.TradeIntent{
		Direction:       types.DirectionSell,
		Amount:          amount,
		SlippagePercent: e.cfg.Slippage,
		PriorityFeeSOL:  e.cfg.PriorityFee,
	})
	e.recordTrade(d.Action, amount, snap, outcome)

	if !outcome.Success {
		log.Error("Sell failed, position unchanged",
			zap.Float64("entry_price", e.position.EntryPrice))
		return CycleHeld
	}

	e.position.Close()
	log.Info("✅ Position closed", zap.Float64("exit_price", snap.Price))
	return CycleTraded
}

func (e *Engine) executeTrade(ctx context.Context, intent types.TradeIntent) types.TradeOutcome {
	callCtx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()
	return e.executor.Execute(callCtx, intent)
}

func (e *Engine) recordTrade(action Action, amount types.Amount, snap *oracle.Snapshot, outcome types.TradeOutcome) {
	pnl := 0.0
	if p, ok := e.position.PnLPercent(snap.Price); ok {
		pnl = p
	}
	e.journal.Append(export.Trade{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Action:      action.String(),
		TokenMint:   e.cfg.TokenMint,
		TokenSymbol: snap.Symbol,
		Amount:      amount.String(),
		Price:       snap.Price,
		EntryPrice:  e.position.EntryPrice,
		PnLPercent:  pnl,
		TxSignature: outcome.Signature,
		Success:     outcome.Success,
	})
}
