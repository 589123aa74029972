package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		otp_method TEXT NOT NULL DEFAULT 'email',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT 'other',
		capacity INT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		organizer TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS attendees (
		id BIGSERIAL PRIMARY KEY,
		event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		ticket_number TEXT NOT NULL,
		quantity INT NOT NULL,
		total_amount DOUBLE PRECISION NOT NULL,
		purchase_date TIMESTAMPTZ NOT NULL,
		payment_method TEXT NOT NULL,
		receipt_number TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGSERIAL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		event_id TEXT NOT NULL,
		ticket_number TEXT NOT NULL,
		quantity INT NOT NULL,
		total_amount DOUBLE PRECISION NOT NULL,
		purchase_date TIMESTAMPTZ NOT NULL,
		payment_method TEXT NOT NULL,
		receipt_number TEXT NOT NULL
	)`,
}

// InitializeSchema creates the tables on first bind against an empty
// database. Statements are idempotent.
func InitializeSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}
	}
	return nil
}
