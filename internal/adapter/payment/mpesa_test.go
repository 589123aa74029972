package payment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub-ke/eventhub/internal/adapter/payment"
	"github.com/eventhub-ke/eventhub/internal/core/domain"
)

func TestCharge_Success(t *testing.T) {
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sim := payment.NewSimulator(0, 0.95,
		payment.WithRandom(func() float64 { return 0.1 }),
		payment.WithClock(func() time.Time { return fixed }),
	)

	result, err := sim.Charge(context.Background(), "0712345678", 1500)
	require.NoError(t, err)
	assert.Equal(t, "MPESA-1785585600000", result.ReceiptNumber)
}

func TestCharge_Declined(t *testing.T) {
	sim := payment.NewSimulator(0, 0.95, payment.WithRandom(func() float64 { return 0.99 }))

	result, err := sim.Charge(context.Background(), "0712345678", 1500)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
}

func TestCharge_ZeroSuccessRateAlwaysDeclines(t *testing.T) {
	sim := payment.NewSimulator(0, 0, payment.WithRandom(func() float64 { return 0 }))

	_, err := sim.Charge(context.Background(), "0712345678", 100)
	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
}

func TestCharge_Delay(t *testing.T) {
	sim := payment.NewSimulator(30*time.Millisecond, 1, payment.WithRandom(func() float64 { return 0 }))

	start := time.Now()
	_, err := sim.Charge(context.Background(), "0712345678", 100)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
