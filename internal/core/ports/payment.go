package ports

import "context"

// PaymentResult reports a successful charge. ReceiptNumber is the
// provider-issued receipt, if the provider supplies one.
type PaymentResult struct {
	ReceiptNumber string
}

// PaymentProvider charges a phone number for the given amount. A declined
// charge returns domain.ErrPaymentFailed. Charge never leaves a payment
// pending: it always resolves with an outcome.
type PaymentProvider interface {
	Charge(ctx context.Context, phoneNumber string, amount float64) (*PaymentResult, error)
}
