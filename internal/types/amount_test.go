package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantKind AmountKind
		wantVal  float64
	}{
		{"half", "50%", false, AmountPercent, 50},
		{"full exit sentinel", "100%", false, AmountFullExit, 100},
		{"whitespace", " 25% ", false, AmountPercent, 25},
		{"fractional", "12.5%", false, AmountPercent, 12.5},
		{"missing suffix", "50", true, 0, 0},
		{"zero", "0%", true, 0, 0},
		{"negative", "-10%", true, 0, 0},
		{"over hundred", "150%", true, 0, 0},
		{"garbage", "abc%", true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParsePercent(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, a.Kind())
			assert.Equal(t, tt.wantVal, a.Value())
		})
	}
}

func TestAmountGatewayValue(t *testing.T) {
	buy := SOL(0.005)
	assert.True(t, buy.DenominatedInSOL())
	assert.Equal(t, 0.005, buy.GatewayValue())

	sell := Percent(50)
	assert.False(t, sell.DenominatedInSOL())
	assert.Equal(t, "50%", sell.GatewayValue())

	exit := FullExit()
	assert.False(t, exit.DenominatedInSOL())
	assert.Equal(t, "100%", exit.GatewayValue())
}

func TestPercentCollapsesToFullExit(t *testing.T) {
	assert.Equal(t, AmountFullExit, Percent(100).Kind())
	assert.Equal(t, AmountPercent, Percent(99.9).Kind())
}
