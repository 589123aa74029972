// Package redisdoc is the secondary document store: one JSON document per
// entity key plus a set index per collection. Filtering and sorting happen in
// application code over the fetched documents, the same way the upstream
// document store is queried.
package redisdoc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

const (
	eventKeyPrefix = "event:"
	eventIndexKey  = "events"
)

func eventKey(id string) string {
	return eventKeyPrefix + id
}

type EventRepository struct {
	client *redis.Client
}

func NewEventRepository(client *redis.Client) *EventRepository {
	return &EventRepository{client: client}
}

func (r *EventRepository) Find(ctx context.Context, filter ports.EventFilter) ([]domain.Event, error) {
	ids, err := r.client.SMembers(ctx, eventIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list event ids: %w", err)
	}

	var events []domain.Event
	for _, id := range ids {
		e, err := r.get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if matchEvent(e, filter) {
			events = append(events, *e)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.get(ctx, id)
}

func (r *EventRepository) FindOne(ctx context.Context, filter ports.EventFilter) (*domain.Event, error) {
	if filter.ID != "" && filter.Organizer == "" && filter.DateFrom == nil {
		return r.get(ctx, filter.ID)
	}

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
	if err := r.put(ctx, event); err != nil {
		return err
	}
	if err := r.client.SAdd(ctx, eventIndexKey, event.ID).Err(); err != nil {
		return fmt.Errorf("index event: %w", err)
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	if _, err := r.get(ctx, event.ID); err != nil {
		return err
	}
	return r.put(ctx, event)
}

func (r *EventRepository) AppendAttendee(ctx context.Context, eventID string, attendee domain.Attendee) error {
	event, err := r.get(ctx, eventID)
	if err != nil {
		return err
	}
	event.Attendees = append(event.Attendees, attendee)
	return r.put(ctx, event)
}

func (r *EventRepository) DeleteOne(ctx context.Context, filter ports.EventFilter) error {
	if filter.ID == "" {
		return nil
	}
	if err := r.client.Del(ctx, eventKey(filter.ID)).Err(); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if err := r.client.SRem(ctx, eventIndexKey, filter.ID).Err(); err != nil {
		return fmt.Errorf("unindex event: %w", err)
	}
	return nil
}

func (r *EventRepository) get(ctx context.Context, id string) (*domain.Event, error) {
	raw, err := r.client.Get(ctx, eventKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	var e domain.Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("decode event document: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) put(ctx context.Context, event *domain.Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event document: %w", err)
	}
	if err := r.client.Set(ctx, eventKey(event.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("store event: %w", err)
	}
	return nil
}

func matchEvent(e *domain.Event, filter ports.EventFilter) bool {
	if filter.ID != "" && e.ID != filter.ID {
		return false
	}
	if filter.Organizer != "" && e.Organizer != filter.Organizer {
		return false
	}
	if filter.DateFrom != nil && e.Date.Before(*filter.DateFrom) {
		return false
	}
	return true
}
