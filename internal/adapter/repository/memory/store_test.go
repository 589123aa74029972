package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub-ke/eventhub/internal/adapter/repository/memory"
	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

func makeEvent(title, organizer string, daysAhead int) *domain.Event {
	return &domain.Event{
		Title:     title,
		Date:      time.Now().AddDate(0, 0, daysAhead),
		Time:      "10:00",
		Location:  "Nairobi",
		Price:     500,
		Category:  domain.CategoryOther,
		Capacity:  100,
		Organizer: organizer,
	}
}

func TestEventRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo := memory.NewEventRepository(memory.NewStore())
	ctx := context.Background()

	first := makeEvent("First", "org-1", 1)
	second := makeEvent("Second", "org-1", 2)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
}

func TestEventRepository_FindFilters(t *testing.T) {
	repo := memory.NewEventRepository(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, makeEvent("Past", "org-1", -3)))
	require.NoError(t, repo.Create(ctx, makeEvent("Soon", "org-1", 2)))
	require.NoError(t, repo.Create(ctx, makeEvent("Later", "org-2", 9)))

	t.Run("no filter returns all ascending", func(t *testing.T) {
		events, err := repo.Find(ctx, ports.EventFilter{})
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, "Past", events[0].Title)
		assert.Equal(t, "Soon", events[1].Title)
		assert.Equal(t, "Later", events[2].Title)
	})

	t.Run("date from", func(t *testing.T) {
		from := time.Now()
		events, err := repo.Find(ctx, ports.EventFilter{DateFrom: &from})
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "Soon", events[0].Title)
	})

	t.Run("organizer", func(t *testing.T) {
		events, err := repo.Find(ctx, ports.EventFilter{Organizer: "org-2"})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Later", events[0].Title)
	})
}

func TestEventRepository_FindByID(t *testing.T) {
	repo := memory.NewEventRepository(memory.NewStore())
	ctx := context.Background()

	event := makeEvent("Solo", "org-1", 1)
	require.NoError(t, repo.Create(ctx, event))

	got, err := repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solo", got.Title)

	_, err = repo.FindByID(ctx, "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventRepository_ReturnsCopies(t *testing.T) {
	repo := memory.NewEventRepository(memory.NewStore())
	ctx := context.Background()

	event := makeEvent("Mutable", "org-1", 1)
	require.NoError(t, repo.Create(ctx, event))

	got, err := repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	got.Title = "Tampered"
	got.Attendees = append(got.Attendees, domain.Attendee{TicketNumber: "TKT-X"})

	again, err := repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mutable", again.Title)
	assert.Empty(t, again.Attendees)
}

func TestEventRepository_AppendAttendee(t *testing.T) {
	repo := memory.NewEventRepository(memory.NewStore())
	ctx := context.Background()

	event := makeEvent("Gig", "org-1", 1)
	require.NoError(t, repo.Create(ctx, event))

	attendee := domain.Attendee{UserID: "u1", TicketNumber: "TKT-00000001", Quantity: 2, TotalAmount: 1000}
	require.NoError(t, repo.AppendAttendee(ctx, event.ID, attendee))

	got, err := repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, got.Attendees, 1)
	assert.Equal(t, 2, got.TicketsSold())
	assert.Equal(t, 98, got.AvailableTickets())

	assert.ErrorIs(t, repo.AppendAttendee(ctx, "999", attendee), domain.ErrNotFound)
}

func TestEventRepository_UpdateAndDelete(t *testing.T) {
	repo := memory.NewEventRepository(memory.NewStore())
	ctx := context.Background()

	event := makeEvent("Gig", "org-1", 1)
	require.NoError(t, repo.Create(ctx, event))

	event.Title = "Renamed Gig"
	require.NoError(t, repo.Update(ctx, event))
	got, err := repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Gig", got.Title)

	missing := makeEvent("Ghost", "org-1", 1)
	missing.ID = "999"
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrNotFound)

	require.NoError(t, repo.DeleteOne(ctx, ports.EventFilter{ID: event.ID}))
	_, err = repo.FindByID(ctx, event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	repo := memory.NewUserRepository(memory.NewStore())
	ctx := context.Background()

	user := &domain.User{Name: "Wanjiku", Email: "wanjiku@example.com", Password: "hash", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "1", user.ID)

	byEmail, err := repo.FindOne(ctx, ports.UserFilter{Email: "wanjiku@example.com"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindOne(ctx, ports.UserFilter{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ticket := domain.Ticket{EventID: "1", TicketNumber: "TKT-00000001", Quantity: 1, TotalAmount: 500}
	require.NoError(t, repo.AppendTicket(ctx, user.ID, ticket))
	assert.ErrorIs(t, repo.AppendTicket(ctx, "999", ticket), domain.ErrNotFound)

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Tickets, 1)
	assert.Equal(t, "TKT-00000001", got.Tickets[0].TicketNumber)
}

func TestSeed(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, memory.Seed(ctx, store))
	assert.Equal(t, 3, store.EventCount())

	events, err := memory.NewEventRepository(store).Find(ctx, ports.EventFilter{Organizer: memory.SeedOrganizer})
	require.NoError(t, err)
	require.Len(t, events, 3)
	// Ascending by date: workshop in 3 days, conference in 7, festival in 14.
	assert.Equal(t, "Business Workshop", events[0].Title)
	assert.Equal(t, "Tech Conference 2024", events[1].Title)
	assert.Equal(t, "Summer Music Festival", events[2].Title)

	// Idempotent.
	require.NoError(t, memory.Seed(ctx, store))
	assert.Equal(t, 3, store.EventCount())
}
