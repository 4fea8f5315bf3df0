package export

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Trade represents one executed (or attempted) trade.
type Trade struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"` // "buy", "take_profit", "stop_loss"
	TokenMint   string    `json:"token_mint"`
	TokenSymbol string    `json:"token_symbol"`
	Amount      string    `json:"amount"`
	Price       float64   `json:"price"`
	EntryPrice  float64   `json:"entry_price,omitempty"`
	PnLPercent  float64   `json:"pnl_percent,omitempty"`
	TxSignature string    `json:"tx_signature,omitempty"`
	Success     bool      `json:"success"`
}

// ToCSV converts trade to CSV record
func (t *Trade) ToCSV() []string {
	return []string{
		t.ID,
		t.Timestamp.Format(time.RFC3339),
		t.Action,
		t.TokenMint,
		t.TokenSymbol,
		t.Amount,
		formatFloat(t.Price),
		formatFloat(t.EntryPrice),
		formatFloat(t.PnLPercent),
		t.TxSignature,
		strconv.FormatBool(t.Success),
	}
}

// CSVHeaders returns the header row for trade CSV files
func CSVHeaders() []string {
	return []string{
		"id",
		"timestamp",
		"action",
		"token_mint",
		"token_symbol",
		"amount",
		"price",
		"entry_price",
		"pnl_percent",
		"tx_signature",
		"success",
	}
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return fmt.Sprintf("%.8f", f)
}

// Journal накапливает историю сделок за время работы процесса.
// Только для наблюдаемости: журнал никогда не читается обратно,
// и после рестарта бот все равно стартует из Flat.
type Journal struct {
	mu     sync.Mutex
	trades []Trade
}

// NewJournal создает пустой журнал.
func NewJournal() *Journal {
	return &Journal{}
}

// Append добавляет сделку в журнал.
func (j *Journal) Append(t Trade) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.trades = append(j.trades, t)
}

// Trades возвращает копию всех записей журнала.
func (j *Journal) Trades() []Trade {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Trade, len(j.trades))
	copy(out, j.trades)
	return out
}
