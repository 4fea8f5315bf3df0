// =============================================
// File: internal/types/amount.go
// =============================================
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// AmountKind определяет способ деноминации суммы сделки.
type AmountKind int

const (
	// AmountSOL — абсолютная сумма в SOL (используется для покупок).
	AmountSOL AmountKind = iota
	// AmountPercent — процент от текущего баланса токена (используется для продаж).
	AmountPercent
	// AmountFullExit — полный выход из позиции ("100%").
	AmountFullExit
)

// Amount is a tagged trade amount: either an absolute SOL quantity,
// a percent-of-holdings value, or the full-exit sentinel. The executor
// forwards it to the gateway verbatim and never interprets it.
type Amount struct {
	kind  AmountKind
	value float64
}

// SOL returns an absolute amount denominated in SOL.
func SOL(v float64) Amount {
	return Amount{kind: AmountSOL, value: v}
}

// Percent returns a percent-of-holdings amount. Percent(100) collapses
// to the full-exit sentinel.
func Percent(v float64) Amount {
	if v >= 100 {
		return FullExit()
	}
	return Amount{kind: AmountPercent, value: v}
}

// FullExit returns the sentinel amount that sells the entire holding.
func FullExit() Amount {
	return Amount{kind: AmountFullExit, value: 100}
}

// ParsePercent parses a percent string like "50%" or "100%".
func ParsePercent(s string) (Amount, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasSuffix(trimmed, "%") {
		return Amount{}, fmt.Errorf("percent amount must end with %%: %q", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(trimmed, "%"), 64)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid percent amount %q: %w", s, err)
	}
	if v <= 0 || v > 100 {
		return Amount{}, fmt.Errorf("percent amount out of range (0-100]: %q", s)
	}
	return Percent(v), nil
}

// Kind возвращает тип суммы.
func (a Amount) Kind() AmountKind {
	return a.kind
}

// Value возвращает числовое значение (SOL или проценты).
func (a Amount) Value() float64 {
	return a.value
}

// DenominatedInSOL reports whether the gateway should treat the amount
// as base-currency units rather than a token percentage.
func (a Amount) DenominatedInSOL() bool {
	return a.kind == AmountSOL
}

// GatewayValue returns the value exactly as the gateway expects it:
// a JSON number for SOL amounts, a percent string otherwise.
func (a Amount) GatewayValue() interface{} {
	if a.kind == AmountSOL {
		return a.value
	}
	return a.String()
}

func (a Amount) String() string {
	switch a.kind {
	case AmountSOL:
		return strconv.FormatFloat(a.value, 'f', -1, 64) + " SOL"
	case AmountFullExit:
		return "100%"
	default:
		return strconv.FormatFloat(a.value, 'f', -1, 64) + "%"
	}
}
