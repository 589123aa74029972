// Package database provides the PostgreSQL connection for the primary
// backend.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	maxAttempts  = 3
	retryDelay   = 2 * time.Second
	pingTimeout  = 5 * time.Second
	maxOpenConns = 25
	maxIdleConns = 25
	connLifetime = 5 * time.Minute
)

// Connect opens and pings a PostgreSQL connection. It retries a few times to
// accommodate containers still starting up, then gives up so the backend
// selector can fall through.
func Connect(ctx context.Context, connStr string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err = db.PingContext(pingCtx)
			cancel()
		}
		if err == nil {
			db.SetMaxOpenConns(maxOpenConns)
			db.SetMaxIdleConns(maxIdleConns)
			db.SetConnMaxLifetime(connLifetime)
			return db, nil
		}
		if db != nil {
			db.Close()
		}
		if attempt < maxAttempts {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("connect to postgres after %d attempts: %w", maxAttempts, err)
}
