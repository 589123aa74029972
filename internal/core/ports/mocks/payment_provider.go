package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

// PaymentProvider mocks ports.PaymentProvider.
type PaymentProvider struct {
	mock.Mock
}

func (_m *PaymentProvider) Charge(ctx context.Context, phoneNumber string, amount float64) (*ports.PaymentResult, error) {
	ret := _m.Called(ctx, phoneNumber, amount)

	var r0 *ports.PaymentResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ports.PaymentResult)
	}
	return r0, ret.Error(1)
}

// NewPaymentProvider creates a new instance of PaymentProvider. It also
// registers a testing interface on the mock and a cleanup function to assert
// the mocks expectations.
func NewPaymentProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *PaymentProvider {
	m := &PaymentProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
