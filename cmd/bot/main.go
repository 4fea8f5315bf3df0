// ====================================
// File: cmd/bot/main.go
// ====================================
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpportal-bot/internal/blockchain"
	"github.com/rovshanmuradov/pumpportal-bot/internal/bot"
	"github.com/rovshanmuradov/pumpportal-bot/internal/config"
	"github.com/rovshanmuradov/pumpportal-bot/internal/dex/pumpportal"
	"github.com/rovshanmuradov/pumpportal-bot/internal/export"
	"github.com/rovshanmuradov/pumpportal-bot/internal/logger"
	"github.com/rovshanmuradov/pumpportal-bot/internal/oracle"
	"github.com/rovshanmuradov/pumpportal-bot/internal/wallet"
)

func main() {
	// Локальный .env удобен при разработке; в проде конфиг приходит
	// из окружения процесса.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		LogFile:     cfg.LogFile,
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: cfg.DebugLogging,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("Bot execution error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	w, err := wallet.Load(cfg.PrivateKey)
	if err != nil {
		return fmt.Errorf("load wallet: %w", err)
	}

	chain, err := blockchain.NewClient(cfg.RPCList, log.Logger)
	if err != nil {
		return fmt.Errorf("init RPC client: %w", err)
	}

	ctx := context.Background()
	if err := chain.Probe(ctx); err != nil {
		return fmt.Errorf("probe RPC endpoints: %w", err)
	}

	prices := oracle.NewClient(cfg.TokenMint, log.Logger)
	gateway := pumpportal.NewClient(log.Logger)
	executor := pumpportal.NewExecutor(gateway, chain, w, cfg.TokenMint, log.Logger)
	journal := export.NewJournal()

	log.Info("🤖 Wallet", zap.String("address", w.String()))
	log.Info("🪙 Token", zap.String("mint", cfg.TokenMint))
	log.Info("⚙️ Strategy",
		zap.Float64("buy_amount_sol", cfg.BuyAmountSOL),
		zap.Float64("profit_target_percent", cfg.ProfitTarget),
		zap.Float64("stop_loss_percent", cfg.StopLoss),
		zap.String("sell_amount", cfg.SellAmount.String()),
		zap.Int("slippage_percent", cfg.Slippage),
		zap.Float64("priority_fee_sol", cfg.PriorityFee))

	engine := bot.NewEngine(cfg, w, prices, chain, executor, journal, log.Logger)
	runner := bot.NewRunner(cfg, engine, journal, log)

	return runner.Run(ctx)
}
