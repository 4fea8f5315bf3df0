// internal/bot/runner.go
package bot

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/pumpportal-bot/internal/config"
	"github.com/rovshanmuradov/pumpportal-bot/internal/export"
	"github.com/rovshanmuradov/pumpportal-bot/internal/logger"
)

// Runner drives the cycle cadence: run a cycle, sleep, repeat. The
// sleep is the implicit rate limit on every external dependency; it
// stretches when the wallet is underfunded or the market has no data
// yet. An interrupt is honored between cycles, never mid-call.
type Runner struct {
	cfg        *config.Config
	engine     *Engine
	journal    *export.Journal
	exporter   *export.TradeExporter
	logger     *logger.Logger
	shutdownCh chan os.Signal
}

// NewRunner создает планировщик циклов.
func NewRunner(cfg *config.Config, engine *Engine, journal *export.Journal, log *logger.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		engine:     engine,
		journal:    journal,
		exporter:   export.NewTradeExporter(log.Logger),
		logger:     log,
		shutdownCh: make(chan os.Signal, 1),
	}
}

// Run запускает торговый цикл и блокируется до остановки.
func (r *Runner) Run(ctx context.Context) error {
	signal.Notify(r.shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(r.shutdownCh)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case sig := <-r.shutdownCh:
			r.logger.Info("📡 Signal received: " + sig.String())
			cancel()
		case <-runCtx.Done():
		}
	}()

	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return r.loop(gCtx)
	})

	err := g.Wait()
	r.exportTrades()

	if errors.Is(err, context.Canceled) {
		r.logger.Info("👋 Bot shutting down gracefully")
		return nil
	}
	return err
}

func (r *Runner) loop(ctx context.Context) error {
	r.logger.Info("🚀 Trading loop started",
		zap.Duration("cycle_interval", r.cfg.CycleInterval))

	for {
		result := r.engine.RunCycle(ctx)

		delay := r.nextDelay(result)
		r.logger.Info("💤 Sleeping until next cycle", zap.Duration("delay", delay))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// nextDelay stretches the base interval when a cycle could not trade:
// 3x while waiting for a balance top-up, 2x while the token has no
// price data yet.
func (r *Runner) nextDelay(result CycleResult) time.Duration {
	switch result {
	case CycleLowBalance:
		return 3 * r.cfg.CycleInterval
	case CycleNoPriceData:
		return 2 * r.cfg.CycleInterval
	default:
		return r.cfg.CycleInterval
	}
}

func (r *Runner) exportTrades() {
	trades := r.journal.Trades()
	if len(trades) == 0 {
		return
	}
	path, err := r.exporter.ExportTrades(trades, export.Options{
		Format:    export.FormatCSV,
		OutputDir: r.cfg.ExportDir,
	})
	if err != nil {
		r.logger.Error("Failed to export trade history", zap.Error(err))
		return
	}
	r.logger.Info("📒 Trade history exported", zap.String("file", path))
}
