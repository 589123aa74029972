package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, date, time, location, price, category, capacity, image, organizer, created_at`

func (r *EventRepository) Find(ctx context.Context, filter ports.EventFilter) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`

	var conds []string
	var args []interface{}
	if filter.ID != "" {
		args = append(args, filter.ID)
		conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
	}
	if filter.Organizer != "" {
		args = append(args, filter.Organizer)
		conds = append(conds, fmt.Sprintf("organizer = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range events {
		attendees, err := r.loadAttendees(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].Attendees = attendees
	}

	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.FindOne(ctx, ports.EventFilter{ID: id})
}

func (r *EventRepository) FindOne(ctx context.Context, filter ports.EventFilter) (*domain.Event, error) {
	events, err := r.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrNotFound
	}
	return &events[0], nil
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
	INSERT INTO events (`+eventColumns+`)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		event.ID, event.Title, event.Description, event.Date, event.Time,
		event.Location, event.Price, event.Category, event.Capacity,
		event.Image, event.Organizer, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	result, err := r.db.ExecContext(ctx, `
	UPDATE events
	SET title = $1, description = $2, date = $3, time = $4, location = $5,
		price = $6, category = $7, capacity = $8, image = $9
	WHERE id = $10
	`,
		event.Title, event.Description, event.Date, event.Time, event.Location,
		event.Price, event.Category, event.Capacity, event.Image, event.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EventRepository) AppendAttendee(ctx context.Context, eventID string, attendee domain.Attendee) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	_, err = r.db.ExecContext(ctx, `
	INSERT INTO attendees (event_id, user_id, ticket_number, quantity, total_amount, purchase_date, payment_method, receipt_number)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		eventID, attendee.UserID, attendee.TicketNumber, attendee.Quantity,
		attendee.TotalAmount, attendee.PurchaseDate, attendee.PaymentMethod,
		attendee.ReceiptNumber,
	)
	if err != nil {
		return fmt.Errorf("insert attendee: %w", err)
	}
	return nil
}

func (r *EventRepository) DeleteOne(ctx context.Context, filter ports.EventFilter) error {
	if filter.ID == "" {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, filter.ID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *EventRepository) loadAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT user_id, ticket_number, quantity, total_amount, purchase_date, payment_method, receipt_number
	FROM attendees
	WHERE event_id = $1
	ORDER BY id ASC
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("query attendees: %w", err)
	}
	defer rows.Close()

	var attendees []domain.Attendee
	for rows.Next() {
		var a domain.Attendee
		if err := rows.Scan(&a.UserID, &a.TicketNumber, &a.Quantity, &a.TotalAmount, &a.PurchaseDate, &a.PaymentMethod, &a.ReceiptNumber); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner, e *domain.Event) error {
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location,
		&e.Price, &e.Category, &e.Capacity, &e.Image, &e.Organizer, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("scan event: %w", err)
	}
	return nil
}
