package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
)

// User is a registered account. Password always holds a bcrypt hash and is
// never serialized.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	OTPMethod string    `json:"otpMethod"`
	Tickets   []Ticket  `json:"tickets"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}

// Ticket mirrors an Attendee record into the purchasing user's history, with
// an event back-reference so history can be listed without scanning events.
type Ticket struct {
	EventID       string    `json:"eventId"`
	TicketNumber  string    `json:"ticketNumber"`
	Quantity      int       `json:"quantity"`
	TotalAmount   float64   `json:"totalAmount"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	PaymentMethod string    `json:"paymentMethod"`
	ReceiptNumber string    `json:"receiptNumber"`
}
