// Package payment implements the payment provider port with a simulated
// M-Pesa flow: a fixed delay standing in for the provider round trip, then a
// probabilistic success outcome.
package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

type Simulator struct {
	delay       time.Duration
	successRate float64
	random      func() float64
	now         func() time.Time
}

type Option func(*Simulator)

// WithRandom replaces the outcome source, so tests can force a deterministic
// success or decline.
func WithRandom(random func() float64) Option {
	return func(s *Simulator) {
		s.random = random
	}
}

// WithClock replaces the receipt-number clock.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		s.now = now
	}
}

// NewSimulator builds a simulator that succeeds with probability successRate
// after sleeping for delay.
func NewSimulator(delay time.Duration, successRate float64, opts ...Option) *Simulator {
	s := &Simulator{
		delay:       delay,
		successRate: successRate,
		random:      rand.Float64,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Charge suspends for the configured delay, then resolves. It has no
// cancellation: once invoked it always produces an outcome, independently
// per call.
func (s *Simulator) Charge(ctx context.Context, phoneNumber string, amount float64) (*ports.PaymentResult, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	if s.random() >= s.successRate {
		return nil, domain.ErrPaymentFailed
	}

	return &ports.PaymentResult{
		ReceiptNumber: fmt.Sprintf("MPESA-%d", s.now().UnixMilli()),
	}, nil
}
