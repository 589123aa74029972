package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, phone, password, role, otp_method, created_at`

func (r *UserRepository) FindOne(ctx context.Context, filter ports.UserFilter) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE `
	var arg interface{}
	switch {
	case filter.Email != "":
		query += `email = $1`
		arg = filter.Email
	case filter.ID != "":
		query += `id = $1`
		arg = filter.ID
	default:
		return nil, domain.ErrNotFound
	}

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.Role, &u.OTPMethod, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	tickets, err := r.loadTickets(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Tickets = tickets
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.FindOne(ctx, ports.UserFilter{ID: id})
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
	INSERT INTO users (`+userColumns+`)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		user.ID, user.Name, user.Email, user.Phone, user.Password,
		user.Role, user.OTPMethod, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) AppendTicket(ctx context.Context, userID string, ticket domain.Ticket) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	_, err = r.db.ExecContext(ctx, `
	INSERT INTO tickets (user_id, event_id, ticket_number, quantity, total_amount, purchase_date, payment_method, receipt_number)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		userID, ticket.EventID, ticket.TicketNumber, ticket.Quantity,
		ticket.TotalAmount, ticket.PurchaseDate, ticket.PaymentMethod,
		ticket.ReceiptNumber,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (r *UserRepository) loadTickets(ctx context.Context, userID string) ([]domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT event_id, ticket_number, quantity, total_amount, purchase_date, payment_method, receipt_number
	FROM tickets
	WHERE user_id = $1
	ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.EventID, &t.TicketNumber, &t.Quantity, &t.TotalAmount, &t.PurchaseDate, &t.PaymentMethod, &t.ReceiptNumber); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
