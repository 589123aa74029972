package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested event or user does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidRequest is returned for malformed input, e.g. a non-positive
// ticket quantity.
var ErrInvalidRequest = errors.New("invalid request")

// ErrPaymentFailed is returned when the payment provider declines a charge.
var ErrPaymentFailed = errors.New("payment failed")

// ErrEmailTaken is returned when registration finds an account with the same
// email. The check is best-effort: the lookup and the insert are not atomic.
var ErrEmailTaken = errors.New("user already exists with this email")

// ErrInvalidCredentials is returned on a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrForbidden is returned when an authenticated user acts on a resource
// they do not own or lacks the organizer role.
var ErrForbidden = errors.New("forbidden")

// Token errors carry the machine-readable distinction clients use to decide
// whether to force re-authentication.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrUserGone     = errors.New("user no longer exists")
)

// InsufficientInventoryError reports a purchase that exceeds the remaining
// capacity. Available is the exact number of tickets still open.
type InsufficientInventoryError struct {
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("Only %d tickets available", e.Available)
}

// PartialBookingError marks a purchase whose attendee record was persisted on
// the event but whose mirrored ticket could not be written to the user. The
// ticket number identifies the committed attendee record.
type PartialBookingError struct {
	TicketNumber string
	Err          error
}

func (e *PartialBookingError) Error() string {
	return fmt.Sprintf("ticket %s recorded on event but not mirrored to user: %v", e.TicketNumber, e.Err)
}

func (e *PartialBookingError) Unwrap() error {
	return e.Err
}
