package redisdoc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

const (
	userKeyPrefix    = "user:"
	userEmailHashKey = "user_emails"
)

func userKey(id string) string {
	return userKeyPrefix + id
}

type UserRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) FindOne(ctx context.Context, filter ports.UserFilter) (*domain.User, error) {
	if filter.Email != "" {
		id, err := r.client.HGet(ctx, userEmailHashKey, filter.Email).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("resolve email: %w", err)
		}
		return r.get(ctx, id)
	}
	if filter.ID != "" {
		return r.get(ctx, filter.ID)
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, id)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.put(ctx, user); err != nil {
		return err
	}
	if err := r.client.HSet(ctx, userEmailHashKey, user.Email, user.ID).Err(); err != nil {
		return fmt.Errorf("index user email: %w", err)
	}
	return nil
}

const appendTicketRetries = 3

// AppendTicket reads, mutates, and rewrites the user document inside a
// WATCH/MULTI round trip. The per-event booking lock does not serialize
// writes to the same user across different events, so the transaction guards
// against a concurrent purchase dropping a ticket.
func (r *UserRepository) AppendTicket(ctx context.Context, userID string, ticket domain.Ticket) error {
	key := userKey(userID)

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}

		var doc userDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return fmt.Errorf("decode user document: %w", err)
		}
		doc.User.Tickets = append(doc.User.Tickets, ticket)

		out, err := json.Marshal(userDocument{User: doc.User, Password: doc.Password})
		if err != nil {
			return fmt.Errorf("encode user document: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < appendTicketRetries; attempt++ {
		err := r.client.Watch(ctx, txn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("append ticket: %w", redis.TxFailedErr)
}

// userDocument carries the password hash, which the domain type deliberately
// refuses to serialize.
type userDocument struct {
	domain.User
	Password string `json:"password"`
}

func (r *UserRepository) get(ctx context.Context, id string) (*domain.User, error) {
	raw, err := r.client.Get(ctx, userKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	var doc userDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode user document: %w", err)
	}
	user := doc.User
	user.Password = doc.Password
	return &user, nil
}

func (r *UserRepository) put(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(userDocument{User: *user, Password: user.Password})
	if err != nil {
		return fmt.Errorf("encode user document: %w", err)
	}
	if err := r.client.Set(ctx, userKey(user.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}
