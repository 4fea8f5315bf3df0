// internal/bot/position.go
package bot

// State — состояние позиции: вне рынка или в длинной позиции.
type State int

const (
	StateFlat State = iota
	StateLong
)

func (s State) String() string {
	if s == StateLong {
		return "long"
	}
	return "flat"
}

// Position is the bot's single holding. EntryPrice is set iff the
// state is Long, and only after a confirmed successful buy. Lives for
// the life of the process: after any restart the bot is Flat again,
// even if a position is still open on chain.
type Position struct {
	State      State
	EntryPrice float64
}

// Open переводит позицию в Long с зафиксированной ценой входа.
func (p *Position) Open(entryPrice float64) {
	p.State = StateLong
	p.EntryPrice = entryPrice
}

// Close сбрасывает позицию в Flat. Частичная продажа тоже закрывает
// позицию целиком: остаток не отслеживается, следующий цикл начнет
// заново из Flat.
func (p *Position) Close() {
	p.State = StateFlat
	p.EntryPrice = 0
}

// PnLPercent returns the unrealized gain relative to the entry price.
// ok is false when the position is not Long or the entry price is not
// positive — in that case no pnl exists and nothing may be divided.
func (p Position) PnLPercent(currentPrice float64) (pnl float64, ok bool) {
	if p.State != StateLong || p.EntryPrice <= 0 {
		return 0, false
	}
	return (currentPrice - p.EntryPrice) / p.EntryPrice * 100, true
}
