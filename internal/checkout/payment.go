package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentResult struct {
	Approved      bool
	TransactionID string
	Reason        string
}

type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal) (PaymentResult, error)
}

// declineReasons are picked by the top of the roll range.
var declineReasons = []string{
	"insufficient funds",
	"card expired",
	"card declined by issuer",
	"suspected fraud",
}

// RandomGateway approves a fixed share of charges after an artificial delay.
type RandomGateway struct {
	SuccessRate float64
	Delay       time.Duration
	roll        func() float64
}

func NewRandomGateway(successRate float64, delay time.Duration) *RandomGateway {
	return &RandomGateway{
		SuccessRate: successRate,
		Delay:       delay,
		roll:        rand.Float64,
	}
}

func (g *RandomGateway) Charge(ctx context.Context, amount decimal.Decimal) (PaymentResult, error) {
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return PaymentResult{}, ctx.Err()
		case <-timer.C:
		}
	}
	return calcResult(g.roll(), g.SuccessRate, amount), nil
}

func calcResult(roll, successRate float64, amount decimal.Decimal) PaymentResult {
	txID := fmt.Sprintf("TXN-%d", time.Now().UnixNano())
	if roll < successRate {
		return PaymentResult{Approved: true, TransactionID: txID}
	}

	// spread the declined share across the known reasons
	span := 1 - successRate
	idx := 0
	if span > 0 {
		idx = int((roll - successRate) / span * float64(len(declineReasons)))
	}
	if idx >= len(declineReasons) {
		idx = len(declineReasons) - 1
	}
	return PaymentResult{
		TransactionID: txID,
		Reason:        fmt.Sprintf("%s (amount %s)", declineReasons[idx], amount.StringFixed(2)),
	}
}
