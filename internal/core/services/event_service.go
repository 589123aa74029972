package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

// EventInput carries create/update fields. Price is a pointer because 0 is a
// legal value (free event): absence and zero must stay distinguishable on
// partial updates.
type EventInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Time        string          `json:"time"`
	Location    string          `json:"location"`
	Price       *float64        `json:"price"`
	Category    domain.Category `json:"category"`
	Capacity    int             `json:"capacity"`
	Image       string          `json:"image"`
}

func (in *EventInput) priceOrDefault() float64 {
	if in.Price == nil {
		return 0
	}
	return *in.Price
}

// EventService handles the organizer-facing event lifecycle and public
// browsing.
type EventService struct {
	events ports.EventRepository
	now    func() time.Time
}

func NewEventService(events ports.EventRepository) *EventService {
	return &EventService{events: events, now: time.Now}
}

// ListUpcoming returns events with date >= now, ascending by date.
func (s *EventService) ListUpcoming(ctx context.Context) ([]domain.Event, error) {
	from := s.now()
	return s.events.Find(ctx, ports.EventFilter{DateFrom: &from})
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.events.FindByID(ctx, id)
}

// ListByOrganizer returns every event the organizer created, regardless of
// date.
func (s *EventService) ListByOrganizer(ctx context.Context, organizerID string) ([]domain.Event, error) {
	return s.events.Find(ctx, ports.EventFilter{Organizer: organizerID})
}

func (s *EventService) Create(ctx context.Context, organizerID string, input EventInput) (*domain.Event, error) {
	if err := validateEventInput(&input); err != nil {
		return nil, err
	}

	event := &domain.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		Price:       input.priceOrDefault(),
		Category:    input.Category,
		Capacity:    input.Capacity,
		Image:       input.Image,
		Organizer:   organizerID,
		Attendees:   []domain.Attendee{},
		CreatedAt:   s.now(),
	}
	if event.Image == "" {
		event.Image = domain.DefaultEventImage
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// Update modifies an event's editable fields. Only the owning organizer may
// call it; attendee records are never touched.
func (s *EventService) Update(ctx context.Context, organizerID, eventID string, input EventInput) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Organizer != organizerID {
		return nil, domain.ErrForbidden
	}

	if input.Title != "" {
		event.Title = input.Title
	}
	if input.Description != "" {
		event.Description = input.Description
	}
	if !input.Date.IsZero() {
		event.Date = input.Date
	}
	if input.Time != "" {
		event.Time = input.Time
	}
	if input.Location != "" {
		event.Location = input.Location
	}
	if input.Price != nil {
		event.Price = *input.Price
	}
	if input.Category != "" {
		event.Category = input.Category
	}
	if input.Capacity > 0 {
		event.Capacity = input.Capacity
	}
	if input.Image != "" {
		event.Image = input.Image
	}

	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// Delete removes an event. Only the owning organizer may call it.
func (s *EventService) Delete(ctx context.Context, organizerID, eventID string) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Organizer != organizerID {
		return domain.ErrForbidden
	}
	return s.events.DeleteOne(ctx, ports.EventFilter{ID: eventID})
}

func validateEventInput(input *EventInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Category == "" {
		input.Category = domain.CategoryOther
	}

	switch {
	case input.Title == "":
		return fmt.Errorf("%w: title is required", domain.ErrInvalidRequest)
	case input.Date.IsZero():
		return fmt.Errorf("%w: date is required", domain.ErrInvalidRequest)
	case input.Time == "":
		return fmt.Errorf("%w: time is required", domain.ErrInvalidRequest)
	case input.Location == "":
		return fmt.Errorf("%w: location is required", domain.ErrInvalidRequest)
	}

	return validateEventFields(input.Title, input.Description, input.priceOrDefault(), input.Category, input.Capacity)
}

func validateEvent(event *domain.Event) error {
	return validateEventFields(event.Title, event.Description, event.Price, event.Category, event.Capacity)
}

func validateEventFields(title, description string, price float64, category domain.Category, capacity int) error {
	switch {
	case len(title) > 200:
		return fmt.Errorf("%w: title cannot be more than 200 characters", domain.ErrInvalidRequest)
	case len(description) > 5000:
		return fmt.Errorf("%w: description cannot be more than 5000 characters", domain.ErrInvalidRequest)
	case price < 0:
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidRequest)
	case capacity < 1:
		return fmt.Errorf("%w: capacity must be at least 1", domain.ErrInvalidRequest)
	case !category.Valid():
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidRequest, category)
	}
	return nil
}
