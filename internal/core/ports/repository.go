package ports

import (
	"context"
	"time"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
)

// EventFilter covers the three predicates the system queries events by.
// Zero-value fields are ignored.
type EventFilter struct {
	ID        string
	Organizer string
	DateFrom  *time.Time
}

// UserFilter matches a user by id or by email. Zero-value fields are ignored.
type UserFilter struct {
	ID    string
	Email string
}

// EventRepository is implemented by every storage backend. Find with a
// DateFrom filter returns events sorted ascending by date. Lookups return
// domain.ErrNotFound when no event matches.
type EventRepository interface {
	Find(ctx context.Context, filter EventFilter) ([]domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	FindOne(ctx context.Context, filter EventFilter) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	AppendAttendee(ctx context.Context, eventID string, attendee domain.Attendee) error
	DeleteOne(ctx context.Context, filter EventFilter) error
}

// UserRepository is implemented by every storage backend. AppendTicket is the
// only user mutation besides Create; it persists the mirrored purchase record.
type UserRepository interface {
	FindOne(ctx context.Context, filter UserFilter) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	AppendTicket(ctx context.Context, userID string, ticket domain.Ticket) error
}
