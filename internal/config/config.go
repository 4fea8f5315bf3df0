// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rovshanmuradov/pumpportal-bot/internal/types"
)

// DefaultTokenMint — токен CTST, который бот торгует по умолчанию.
const DefaultTokenMint = "7iqfFVKnZfDGoZTSwskSWtjHHtVKNft296pSd38rpump"

// Config holds all runtime settings. Everything is environment-sourced;
// a local .env file (if any) is loaded by the entrypoint before viper
// reads the process environment.
type Config struct {
	PrivateKey    string  `mapstructure:"private_key"`
	RPCURL        string  `mapstructure:"rpc_url"`
	TokenMint     string  `mapstructure:"token_mint"`
	BuyAmountSOL  float64 `mapstructure:"buy_amount_sol"`
	ProfitTarget  float64 `mapstructure:"profit_target"`
	StopLoss      float64 `mapstructure:"stop_loss"`
	SellPercent   string  `mapstructure:"sell_percent"`
	Slippage      int     `mapstructure:"slippage"`
	PriorityFee   float64 `mapstructure:"priority_fee"`
	CycleSeconds  int     `mapstructure:"cycle_seconds"`
	MinSOLBalance float64 `mapstructure:"min_sol_balance"`
	LogFile       string  `mapstructure:"log_file"`
	DebugLogging  bool    `mapstructure:"debug_logging"`
	ExportDir     string  `mapstructure:"export_dir"`

	// Derived fields, filled in by Load.
	RPCList       []string      `mapstructure:"-"`
	CycleInterval time.Duration `mapstructure:"-"`
	SellAmount    types.Amount  `mapstructure:"-"`
}

var envKeys = []string{
	"private_key",
	"rpc_url",
	"token_mint",
	"buy_amount_sol",
	"profit_target",
	"stop_loss",
	"sell_percent",
	"slippage",
	"priority_fee",
	"cycle_seconds",
	"min_sol_balance",
	"log_file",
	"debug_logging",
	"export_dir",
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("token_mint", DefaultTokenMint)
	v.SetDefault("buy_amount_sol", 0.005)
	v.SetDefault("profit_target", 20.0)
	v.SetDefault("stop_loss", 30.0)
	v.SetDefault("sell_percent", "50%")
	v.SetDefault("slippage", 10)
	v.SetDefault("priority_fee", 0.00005)
	v.SetDefault("cycle_seconds", 60)
	v.SetDefault("min_sol_balance", 0.007)
	v.SetDefault("log_file", "bot.log")
	v.SetDefault("debug_logging", false)
	v.SetDefault("export_dir", "exports")

	for _, key := range envKeys {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	cfg.RPCList = splitRPCList(cfg.RPCURL)
	cfg.CycleInterval = time.Duration(cfg.CycleSeconds) * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sellAmount, err := types.ParsePercent(cfg.SellPercent)
	if err != nil {
		return nil, fmt.Errorf("invalid sell_percent: %w", err)
	}
	cfg.SellAmount = sellAmount

	return &cfg, nil
}

// validate checks required fields. Failures here are fatal at startup.
func (c *Config) validate() error {
	if c.PrivateKey == "" {
		return errors.New("PRIVATE_KEY is required")
	}
	if len(c.RPCList) == 0 {
		return errors.New("RPC_URL is required")
	}
	for _, rpcURL := range c.RPCList {
		if err := validateURL(rpcURL, "http"); err != nil {
			return fmt.Errorf("invalid RPC URL %q: %w", rpcURL, err)
		}
	}
	if c.TokenMint == "" {
		return errors.New("token_mint must not be empty")
	}
	if c.BuyAmountSOL <= 0 {
		return errors.New("buy_amount_sol must be positive")
	}
	if c.StopLoss <= 0 {
		return errors.New("stop_loss must be positive")
	}
	if c.Slippage < 0 || c.Slippage > 100 {
		return errors.New("slippage must be between 0 and 100")
	}
	if c.PriorityFee < 0 {
		return errors.New("priority_fee must not be negative")
	}
	if c.CycleSeconds <= 0 {
		return errors.New("cycle_seconds must be positive")
	}
	if c.MinSOLBalance < 0 {
		return errors.New("min_sol_balance must not be negative")
	}
	return nil
}

func splitRPCList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if clean := strings.TrimSpace(part); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func validateURL(rawURL, protocol string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	return nil
}

// MaskedSecret возвращает секретный ключ в замаскированном виде для логов.
func (c *Config) MaskedSecret() string {
	if len(c.PrivateKey) <= 8 {
		return "****"
	}
	return c.PrivateKey[:4] + "..." + c.PrivateKey[len(c.PrivateKey)-4:]
}
