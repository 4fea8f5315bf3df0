// internal/bot/decision.go
package bot

import (
	"github.com/rovshanmuradov/pumpportal-bot/internal/oracle"
)

// Action — решение, принятое машиной состояний за один цикл.
type Action int

const (
	ActionHold Action = iota
	ActionBuy
	ActionTakeProfit
	ActionStopLoss
)

func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "buy"
	case ActionTakeProfit:
		return "take_profit"
	case ActionStopLoss:
		return "stop_loss"
	default:
		return "hold"
	}
}

// Decision carries the chosen action and, for Long positions, the pnl
// that justified it.
type Decision struct {
	Action     Action
	PnLPercent float64
	HasPnL     bool
}

// thresholds — пороги выхода из позиции в процентах.
type thresholds struct {
	ProfitTarget float64
	StopLoss     float64
}

// decide is the pure decision core: deterministic over its inputs,
// no I/O, no mutation. A nil or zero-price snapshot never produces a
// trade. Stop-loss is evaluated before take-profit, so if a
// misconfiguration ever lets both thresholds overlap, capital
// protection wins.
func decide(pos Position, snap *oracle.Snapshot, th thresholds) Decision {
	if snap == nil || snap.Price <= 0 {
		return Decision{Action: ActionHold}
	}

	if pos.State == StateFlat {
		return Decision{Action: ActionBuy}
	}

	pnl, ok := pos.PnLPercent(snap.Price)
	if !ok {
		// Long без цены входа: недостижимо при соблюдении инварианта,
		// но деление на ноль тут исключается безусловно.
		return Decision{Action: ActionHold}
	}

	d := Decision{Action: ActionHold, PnLPercent: pnl, HasPnL: true}
	switch {
	case pnl <= -th.StopLoss:
		d.Action = ActionStopLoss
	case pnl >= th.ProfitTarget:
		d.Action = ActionTakeProfit
	}
	return d
}
