package memory

import (
	"context"
	"time"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
)

// SeedOrganizer is the synthetic owner of the sample events.
const SeedOrganizer = "demo-organizer"

// Seed loads the sample events into the store when the event collection is
// empty. Calling it again is a no-op, so repeated backend selection within a
// process never duplicates fixtures.
func Seed(ctx context.Context, store *Store) error {
	if store.EventCount() > 0 {
		return nil
	}

	now := time.Now()
	samples := []domain.Event{
		{
			Title:       "Tech Conference 2024",
			Description: "Annual technology conference featuring the latest innovations in AI, blockchain, and cloud computing.",
			Date:        now.Add(7 * 24 * time.Hour),
			Time:        "09:00",
			Location:    "Nairobi Convention Center",
			Price:       1500,
			Category:    domain.CategoryConference,
			Capacity:    500,
			Image:       "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=800&q=80",
			Organizer:   SeedOrganizer,
			CreatedAt:   now,
		},
		{
			Title:       "Summer Music Festival",
			Description: "The biggest music festival of the year with top artists.",
			Date:        now.Add(14 * 24 * time.Hour),
			Time:        "16:00",
			Location:    "Kasarani Stadium",
			Price:       2000,
			Category:    domain.CategoryConcert,
			Capacity:    10000,
			Image:       "https://images.unsplash.com/photo-1459749411175-04bf5292ceea?w=800&q=80",
			Organizer:   SeedOrganizer,
			CreatedAt:   now,
		},
		{
			Title:       "Business Workshop",
			Description: "Learn essential business skills from industry experts.",
			Date:        now.Add(3 * 24 * time.Hour),
			Time:        "10:00",
			Location:    "Sarit Centre",
			Price:       500,
			Category:    domain.CategoryWorkshop,
			Capacity:    100,
			Image:       "https://images.unsplash.com/photo-1515187029135-18ee286d815b?w=800&q=80",
			Organizer:   SeedOrganizer,
			CreatedAt:   now,
		},
	}

	events := NewEventRepository(store)
	for i := range samples {
		if err := events.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}
	return nil
}
