package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcResult(t *testing.T) {
	amount := decimal.RequireFromString("12.5")

	ok := calcResult(0.1, 0.9, amount)
	assert.True(t, ok.Approved)
	assert.NotEmpty(t, ok.TransactionID)
	assert.Empty(t, ok.Reason)

	declined := calcResult(0.95, 0.9, amount)
	assert.False(t, declined.Approved)
	assert.Contains(t, declined.Reason, "12.50")

	last := calcResult(0.9999, 0.9, amount)
	assert.False(t, last.Approved)
	assert.Contains(t, last.Reason, "suspected fraud")
}

func TestCalcResult_AlwaysDecline(t *testing.T) {
	r := calcResult(0.5, 0, decimal.NewFromInt(1))
	assert.False(t, r.Approved)
	assert.NotEmpty(t, r.Reason)
}

func TestRandomGateway_Charge(t *testing.T) {
	g := NewRandomGateway(1, 0)

	r, err := g.Charge(context.Background(), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, r.Approved)
}

func TestRandomGateway_ChargeHonoursContext(t *testing.T) {
	g := NewRandomGateway(1, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := g.Charge(ctx, decimal.NewFromInt(10))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRandomGateway_FixedRoll(t *testing.T) {
	g := NewRandomGateway(0.9, 0)
	g.roll = func() float64 { return 0.91 }

	r, err := g.Charge(context.Background(), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.False(t, r.Approved)
	assert.Contains(t, r.Reason, "insufficient funds")
}
