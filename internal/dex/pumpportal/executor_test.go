package pumpportal

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/pumpportal-bot/internal/types"
	"github.com/rovshanmuradov/pumpportal-bot/internal/wallet"
)

type fakeGateway struct {
	payload []byte
	err     error
	lastReq *TradeRequest
}

func (f *fakeGateway) CreateTrade(ctx context.Context, req *TradeRequest) ([]byte, error) {
	f.lastReq = req
	return f.payload, f.err
}

type fakeSubmitter struct {
	sig    solana.Signature
	err    error
	lastTx *solana.Transaction
}

func (f *fakeSubmitter) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	f.lastTx = tx
	return f.sig, f.err
}

func testWallet(t *testing.T) *wallet.Wallet {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	w, err := wallet.Load(key.String())
	require.NoError(t, err)
	return w
}

// unsignedTransferTx serializes a minimal transaction with the wallet
// as fee payer, standing in for what the gateway returns.
func unsignedTransferTx(t *testing.T, w *wallet.Wallet) []byte {
	recipient := solana.NewWallet().PublicKey()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(1, w.PublicKey, recipient).Build(),
		},
		solana.Hash{},
		solana.TransactionPayer(w.PublicKey),
	)
	require.NoError(t, err)

	raw, err := tx.MarshalBinary()
	require.NoError(t, err)
	return raw
}

func TestExecuteSignsAndSubmits(t *testing.T) {
	w := testWallet(t)
	gateway := &fakeGateway{payload: unsignedTransferTx(t, w)}
	chain := &fakeSubmitter{sig: solana.Signature{1, 2, 3}}

	e := NewExecutor(gateway, chain, w, "mint111", zaptest.NewLogger(t))
	outcome := e.Execute(context.Background(), types.TradeIntent{
		Direction:       types.DirectionBuy,
		Amount:          types.SOL(0.005),
		SlippagePercent: 10,
		PriorityFeeSOL:  0.00005,
	})

	require.True(t, outcome.Success)
	assert.Equal(t, chain.sig.String(), outcome.Signature)

	require.NotNil(t, gateway.lastReq)
	assert.Equal(t, w.PublicKey.String(), gateway.lastReq.PublicKey)
	assert.Equal(t, "buy", gateway.lastReq.Action)
	assert.Equal(t, "mint111", gateway.lastReq.Mint)
	assert.Equal(t, "true", gateway.lastReq.DenominatedInSol)
	assert.Equal(t, 0.005, gateway.lastReq.Amount)
	assert.Equal(t, "pump", gateway.lastReq.Pool)

	require.NotNil(t, chain.lastTx)
	require.Len(t, chain.lastTx.Signatures, 1)
	assert.False(t, chain.lastTx.Signatures[0].IsZero())
}

func TestExecuteSellSendsPercentString(t *testing.T) {
	w := testWallet(t)
	gateway := &fakeGateway{payload: unsignedTransferTx(t, w)}
	chain := &fakeSubmitter{}

	e := NewExecutor(gateway, chain, w, "mint111", zaptest.NewLogger(t))
	outcome := e.Execute(context.Background(), types.TradeIntent{
		Direction: types.DirectionSell,
		Amount:    types.Percent(50),
	})

	require.True(t, outcome.Success)
	assert.Equal(t, "sell", gateway.lastReq.Action)
	assert.Equal(t, "false", gateway.lastReq.DenominatedInSol)
	assert.Equal(t, "50%", gateway.lastReq.Amount)
}

func TestExecuteGatewayFailure(t *testing.T) {
	w := testWallet(t)
	gateway := &fakeGateway{err: errors.New("rate limited")}
	chain := &fakeSubmitter{}

	e := NewExecutor(gateway, chain, w, "mint111", zaptest.NewLogger(t))
	outcome := e.Execute(context.Background(), types.TradeIntent{
		Direction: types.DirectionBuy,
		Amount:    types.SOL(0.005),
	})

	assert.False(t, outcome.Success)
	assert.Nil(t, chain.lastTx, "nothing should reach the chain")
}

func TestExecuteUndecodablePayload(t *testing.T) {
	w := testWallet(t)
	gateway := &fakeGateway{payload: []byte("not a transaction")}
	chain := &fakeSubmitter{}

	e := NewExecutor(gateway, chain, w, "mint111", zaptest.NewLogger(t))
	outcome := e.Execute(context.Background(), types.TradeIntent{
		Direction: types.DirectionBuy,
		Amount:    types.SOL(0.005),
	})

	assert.False(t, outcome.Success)
	assert.Nil(t, chain.lastTx)
}

func TestExecuteSubmitFailure(t *testing.T) {
	w := testWallet(t)
	gateway := &fakeGateway{payload: unsignedTransferTx(t, w)}
	chain := &fakeSubmitter{err: errors.New("blockhash not found")}

	e := NewExecutor(gateway, chain, w, "mint111", zaptest.NewLogger(t))
	outcome := e.Execute(context.Background(), types.TradeIntent{
		Direction: types.DirectionSell,
		Amount:    types.FullExit(),
	})

	assert.False(t, outcome.Success)
	assert.Empty(t, outcome.Signature)
	assert.Equal(t, "100%", gateway.lastReq.Amount)
}
