package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

// PaymentMethodMpesa is the only payment method in this domain.
const PaymentMethodMpesa = "M-Pesa"

type PurchaseRequest struct {
	EventID     string `json:"eventId"`
	UserID      string `json:"-"`
	Quantity    int    `json:"quantity"`
	PhoneNumber string `json:"phoneNumber"`
}

// PurchaseConfirmation is returned to the buyer after a successful booking.
type PurchaseConfirmation struct {
	TicketNumber  string    `json:"ticketNumber"`
	EventTitle    string    `json:"eventTitle"`
	EventDate     time.Time `json:"eventDate"`
	EventTime     string    `json:"eventTime"`
	EventLocation string    `json:"eventLocation"`
	Quantity      int       `json:"quantity"`
	TotalAmount   float64   `json:"totalAmount"`
	ReceiptNumber string    `json:"receiptNumber"`
}

// BookingService performs the capacity check, payment, and dual write of a
// ticket purchase.
type BookingService struct {
	events  ports.EventRepository
	users   ports.UserRepository
	payment ports.PaymentProvider

	// One mutex per event id. Purchases against the same event are
	// serialized for the whole check-charge-append sequence, so the
	// availability read is still valid when the attendee is appended.
	locks sync.Map
	now   func() time.Time
}

func NewBookingService(events ports.EventRepository, users ports.UserRepository, payment ports.PaymentProvider) *BookingService {
	return &BookingService{
		events:  events,
		users:   users,
		payment: payment,
		now:     time.Now,
	}
}

func (s *BookingService) eventLock(eventID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(eventID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Purchase books quantity tickets for the user on the event. Nothing is
// persisted until the payment resolves; a declined payment leaves the event
// and the user untouched. A mirror-write failure after the attendee record
// was committed surfaces as *domain.PartialBookingError, never as success.
func (s *BookingService) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseConfirmation, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", domain.ErrInvalidRequest)
	}

	mu := s.eventLock(req.EventID)
	mu.Lock()
	defer mu.Unlock()

	event, err := s.events.FindByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load event: %w", err)
	}

	available := event.AvailableTickets()
	if req.Quantity > available {
		return nil, &domain.InsufficientInventoryError{Available: available}
	}

	totalAmount := event.Price * float64(req.Quantity)
	ticketNumber := "TKT-" + shortID()
	receiptNumber := "RCPT-" + shortID()

	// The only suspension point. The payment simulator is invoked even for
	// free events.
	result, err := s.payment.Charge(ctx, req.PhoneNumber, totalAmount)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentFailed) {
			return nil, domain.ErrPaymentFailed
		}
		return nil, fmt.Errorf("charge payment: %w", err)
	}
	if result != nil && result.ReceiptNumber != "" {
		receiptNumber = result.ReceiptNumber
	}

	purchaseDate := s.now()
	attendee := domain.Attendee{
		UserID:        req.UserID,
		TicketNumber:  ticketNumber,
		Quantity:      req.Quantity,
		TotalAmount:   totalAmount,
		PurchaseDate:  purchaseDate,
		PaymentMethod: PaymentMethodMpesa,
		ReceiptNumber: receiptNumber,
	}
	if err := s.events.AppendAttendee(ctx, event.ID, attendee); err != nil {
		return nil, fmt.Errorf("record attendee: %w", err)
	}

	ticket := domain.Ticket{
		EventID:       event.ID,
		TicketNumber:  ticketNumber,
		Quantity:      req.Quantity,
		TotalAmount:   totalAmount,
		PurchaseDate:  purchaseDate,
		PaymentMethod: PaymentMethodMpesa,
		ReceiptNumber: receiptNumber,
	}
	if err := s.users.AppendTicket(ctx, req.UserID, ticket); err != nil {
		return nil, &domain.PartialBookingError{TicketNumber: ticketNumber, Err: err}
	}

	return &PurchaseConfirmation{
		TicketNumber:  ticketNumber,
		EventTitle:    event.Title,
		EventDate:     event.Date,
		EventTime:     event.Time,
		EventLocation: event.Location,
		Quantity:      req.Quantity,
		TotalAmount:   totalAmount,
		ReceiptNumber: receiptNumber,
	}, nil
}

// History returns the caller's tickets in purchase order.
func (s *BookingService) History(ctx context.Context, userID string) ([]domain.Ticket, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Tickets == nil {
		return []domain.Ticket{}, nil
	}
	return user.Tickets, nil
}

// Receipt renders a plain-text ticket. The ticket is resolved from the
// caller's own purchase history, so a user can only render tickets they hold.
func (s *BookingService) Receipt(ctx context.Context, userID, ticketNumber string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	var ticket *domain.Ticket
	for i := range user.Tickets {
		if user.Tickets[i].TicketNumber == ticketNumber {
			ticket = &user.Tickets[i]
			break
		}
	}
	if ticket == nil {
		return "", domain.ErrNotFound
	}

	event, err := s.events.FindByID(ctx, ticket.EventID)
	if err != nil {
		return "", err
	}

	rule := strings.Repeat("=", 50)
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("EVENT TICKET\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Ticket Number: %s\n", ticket.TicketNumber)
	fmt.Fprintf(&b, "Event: %s\n", event.Title)
	fmt.Fprintf(&b, "Date: %s\n", event.Date.Format("02/01/2006"))
	fmt.Fprintf(&b, "Time: %s\n", event.Time)
	fmt.Fprintf(&b, "Location: %s\n", event.Location)
	fmt.Fprintf(&b, "Quantity: %d\n", ticket.Quantity)
	fmt.Fprintf(&b, "Total Amount: KES %.2f\n", ticket.TotalAmount)
	fmt.Fprintf(&b, "Phone: %s\n", user.Phone)
	fmt.Fprintf(&b, "Receipt: %s\n", ticket.ReceiptNumber)
	b.WriteString(rule + "\n")
	b.WriteString("Thank you for booking with EventHub!\n")
	return b.String(), nil
}

// shortID returns the first 8 characters of a UUID, uppercased. Uniqueness
// is probabilistic; no backend enforces it with an index.
func shortID() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
