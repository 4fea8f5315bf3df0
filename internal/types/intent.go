// =============================================
// File: internal/types/intent.go
// =============================================
package types

// Direction определяет направление сделки.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

// TradeIntent is a single trade request handed to the executor.
// Built fresh each cycle and never retained.
type TradeIntent struct {
	Direction       Direction
	Amount          Amount
	SlippagePercent int
	PriorityFeeSOL  float64
}

// TradeOutcome is the executor's only answer: the trade either landed
// on chain or it did not. There is no partial or pending state.
type TradeOutcome struct {
	Success   bool
	Signature string
}
