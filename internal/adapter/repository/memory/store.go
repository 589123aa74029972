// Package memory is the in-process fallback backend. It keeps events and
// users in maps guarded by a single RWMutex and hands out auto-incrementing
// integer ids, so it can never fail to initialize.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

// Store holds both collections. One Store backs both repositories so the
// booking dual-write sees a single consistent world.
type Store struct {
	mu       sync.RWMutex
	events   map[string]*domain.Event
	users    map[string]*domain.User
	eventSeq int
	userSeq  int
}

func NewStore() *Store {
	return &Store{
		events: make(map[string]*domain.Event),
		users:  make(map[string]*domain.User),
	}
}

var (
	sharedOnce  sync.Once
	sharedStore *Store
)

// Shared returns the process-wide store used by the storage selector. The
// same instance is returned on every call, so re-running backend selection
// observes previously seeded data instead of re-seeding.
func Shared() *Store {
	sharedOnce.Do(func() {
		sharedStore = NewStore()
	})
	return sharedStore
}

// EventCount reports the number of stored events. The selector uses it to
// decide whether the sample fixtures still need seeding.
func (s *Store) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// EventRepository exposes the event collection behind the shared port.
type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) Find(ctx context.Context, filter ports.EventFilter) ([]domain.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var results []domain.Event
	for _, e := range r.store.events {
		if !matchEvent(e, filter) {
			continue
		}
		results = append(results, cloneEvent(e))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Date.Before(results[j].Date)
	})

	return results, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneEvent(e)
	return &out, nil
}

func (r *EventRepository) FindOne(ctx context.Context, filter ports.EventFilter) (*domain.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, e := range r.store.events {
		if matchEvent(e, filter) {
			out := cloneEvent(e)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if event.ID == "" {
		r.store.eventSeq++
		event.ID = strconv.Itoa(r.store.eventSeq)
	}
	stored := cloneEvent(event)
	r.store.events[event.ID] = &stored
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := cloneEvent(event)
	r.store.events[event.ID] = &stored
	return nil
}

func (r *EventRepository) AppendAttendee(ctx context.Context, eventID string, attendee domain.Attendee) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	e.Attendees = append(e.Attendees, attendee)
	return nil
}

func (r *EventRepository) DeleteOne(ctx context.Context, filter ports.EventFilter) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, e := range r.store.events {
		if matchEvent(e, filter) {
			delete(r.store.events, id)
			return nil
		}
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

// cloneEvent copies the event so callers never share attendee slices with
// the store.
func cloneEvent(e *domain.Event) domain.Event {
	out := *e
	out.Attendees = append([]domain.Attendee(nil), e.Attendees...)
	return out
}

// UserRepository exposes the user collection behind the shared port.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) FindOne(ctx context.Context, filter ports.UserFilter) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if filter.Email != "" && u.Email != filter.Email {
			continue
		}
		if filter.ID != "" && u.ID != filter.ID {
			continue
		}
		out := cloneUser(u)
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.ID == "" {
		r.store.userSeq++
		user.ID = strconv.Itoa(r.store.userSeq)
	}
	stored := cloneUser(user)
	r.store.users[user.ID] = &stored
	return nil
}

func (r *UserRepository) AppendTicket(ctx context.Context, userID string, ticket domain.Ticket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Tickets = append(u.Tickets, ticket)
	return nil
}

func cloneUser(u *domain.User) domain.User {
	out := *u
	out.Tickets = append([]domain.Ticket(nil), u.Tickets...)
	return out
}
