package domain

import (
	"time"
)

type Category string

const (
	CategoryConcert    Category = "concert"
	CategoryConference Category = "conference"
	CategoryWorkshop   Category = "workshop"
	CategorySports     Category = "sports"
	CategoryTheater    Category = "theater"
	CategoryFestival   Category = "festival"
	CategoryOther      Category = "other"
)

// Categories lists every valid event category.
var Categories = []Category{
	CategoryConcert,
	CategoryConference,
	CategoryWorkshop,
	CategorySports,
	CategoryTheater,
	CategoryFestival,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const DefaultEventImage = "/uploads/default-event.jpg"

// Event is a published, bookable event. Attendees holds one record per
// booking transaction, in purchase order.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	Time        string     `json:"time"`
	Location    string     `json:"location"`
	Price       float64    `json:"price"`
	Category    Category   `json:"category"`
	Capacity    int        `json:"capacity"`
	Image       string     `json:"image"`
	Organizer   string     `json:"organizer"`
	Attendees   []Attendee `json:"attendees"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TicketsSold sums the quantity across all attendee records.
func (e *Event) TicketsSold() int {
	total := 0
	for _, a := range e.Attendees {
		total += a.Quantity
	}
	return total
}

// AvailableTickets is always derived from the attendee records, never stored.
func (e *Event) AvailableTickets() int {
	return e.Capacity - e.TicketsSold()
}

// Attendee is a purchase entry embedded in an Event. Records are append-only:
// they are created by the booking service and never mutated or removed.
type Attendee struct {
	UserID        string    `json:"userId"`
	TicketNumber  string    `json:"ticketNumber"`
	Quantity      int       `json:"quantity"`
	TotalAmount   float64   `json:"totalAmount"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	PaymentMethod string    `json:"paymentMethod"`
	ReceiptNumber string    `json:"receiptNumber"`
}
