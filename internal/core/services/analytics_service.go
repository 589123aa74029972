package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

// categoryColors matches the palette the dashboard charts render with.
var categoryColors = map[domain.Category]string{
	domain.CategoryConcert:    "#8b5cf6",
	domain.CategoryConference: "#3b82f6",
	domain.CategoryWorkshop:   "#10b981",
	domain.CategorySports:     "#f59e0b",
	domain.CategoryTheater:    "#ec4899",
	domain.CategoryFestival:   "#f97316",
	domain.CategoryOther:      "#6366f1",
}

var priceBandOrder = []string{"Free", "KES 1-500", "KES 501-2000", "KES 2001-5000", "KES 5000+"}

type EventRevenue struct {
	EventTitle string  `json:"eventTitle"`
	Revenue    float64 `json:"revenue"`
	Attendees  int     `json:"attendees"`
	Price      float64 `json:"price"`
}

type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type CategorySlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
	Color string  `json:"color"`
}

type MonthlySales struct {
	Month   string  `json:"month"`
	Tickets int     `json:"tickets"`
	Revenue float64 `json:"revenue"`
}

type Transaction struct {
	TicketNumber  string    `json:"ticketNumber"`
	EventTitle    string    `json:"eventTitle"`
	Quantity      int       `json:"quantity"`
	Amount        float64   `json:"amount"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	ReceiptNumber string    `json:"receiptNumber"`
}

type Dashboard struct {
	TotalEvents         int            `json:"totalEvents"`
	TotalAttendees      int            `json:"totalAttendees"`
	TotalRevenue        float64        `json:"totalRevenue"`
	RevenueByEvent      []EventRevenue `json:"revenueByEvent"`
	RevenueByEventPie   []NameValue    `json:"revenueByEventForPie"`
	CategoryData        []CategorySlice `json:"categoryData"`
	PriceRangeData      []NameValue    `json:"priceRangeData"`
	TicketsSoldOverTime []MonthlySales `json:"ticketsSoldOverTime"`
	RecentTransactions  []Transaction  `json:"recentTransactions"`
}

type EventAnalytics struct {
	EventTitle       string            `json:"eventTitle"`
	TotalTicketsSold int               `json:"totalTicketsSold"`
	TotalRevenue     float64           `json:"totalRevenue"`
	AvailableTickets int               `json:"availableTickets"`
	OccupancyRate    string            `json:"occupancyRate"`
	Attendees        []domain.Attendee `json:"attendees"`
}

// AnalyticsService computes organizer dashboards as a read-side fold over
// attendee records. It mutates nothing.
type AnalyticsService struct {
	events ports.EventRepository
}

func NewAnalyticsService(events ports.EventRepository) *AnalyticsService {
	return &AnalyticsService{events: events}
}

func (s *AnalyticsService) Dashboard(ctx context.Context, organizerID string) (*Dashboard, error) {
	events, err := s.events.Find(ctx, ports.EventFilter{Organizer: organizerID})
	if err != nil {
		return nil, fmt.Errorf("load organizer events: %w", err)
	}

	d := &Dashboard{
		TotalEvents:         len(events),
		RevenueByEvent:      []EventRevenue{},
		RevenueByEventPie:   []NameValue{},
		CategoryData:        []CategorySlice{},
		PriceRangeData:      []NameValue{},
		TicketsSoldOverTime: []MonthlySales{},
		RecentTransactions:  []Transaction{},
	}

	revenueByCategory := map[domain.Category]float64{}
	eventsByCategory := map[domain.Category]int{}
	bandCounts := map[string]int{}
	monthly := map[string]*MonthlySales{}
	var transactions []Transaction

	for _, event := range events {
		attendees := event.TicketsSold()
		var revenue float64
		for _, a := range event.Attendees {
			revenue += a.TotalAmount
		}

		d.TotalAttendees += attendees
		d.TotalRevenue += revenue
		d.RevenueByEvent = append(d.RevenueByEvent, EventRevenue{
			EventTitle: event.Title,
			Revenue:    revenue,
			Attendees:  attendees,
			Price:      event.Price,
		})
		d.RevenueByEventPie = append(d.RevenueByEventPie, NameValue{Name: event.Title, Value: revenue})

		revenueByCategory[event.Category] += revenue
		eventsByCategory[event.Category]++
		bandCounts[priceBand(event.Price)]++

		for _, a := range event.Attendees {
			month := a.PurchaseDate.Format("2006-01")
			if m, ok := monthly[month]; ok {
				m.Tickets += a.Quantity
				m.Revenue += a.TotalAmount
			} else {
				monthly[month] = &MonthlySales{Month: month, Tickets: a.Quantity, Revenue: a.TotalAmount}
			}

			transactions = append(transactions, Transaction{
				TicketNumber:  a.TicketNumber,
				EventTitle:    event.Title,
				Quantity:      a.Quantity,
				Amount:        a.TotalAmount,
				PurchaseDate:  a.PurchaseDate,
				ReceiptNumber: a.ReceiptNumber,
			})
		}
	}

	for category, revenue := range revenueByCategory {
		color, ok := categoryColors[category]
		if !ok {
			color = categoryColors[domain.CategoryOther]
		}
		d.CategoryData = append(d.CategoryData, CategorySlice{
			Name:  capitalize(string(category)),
			Value: revenue,
			Count: eventsByCategory[category],
			Color: color,
		})
	}
	sort.Slice(d.CategoryData, func(i, j int) bool {
		return d.CategoryData[i].Name < d.CategoryData[j].Name
	})

	for _, name := range priceBandOrder {
		if count := bandCounts[name]; count > 0 {
			d.PriceRangeData = append(d.PriceRangeData, NameValue{Name: name, Value: float64(count)})
		}
	}

	for _, m := range monthly {
		d.TicketsSoldOverTime = append(d.TicketsSoldOverTime, *m)
	}
	sort.Slice(d.TicketsSoldOverTime, func(i, j int) bool {
		return d.TicketsSoldOverTime[i].Month < d.TicketsSoldOverTime[j].Month
	})

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].PurchaseDate.After(transactions[j].PurchaseDate)
	})
	if len(transactions) > 10 {
		transactions = transactions[:10]
	}
	d.RecentTransactions = append(d.RecentTransactions, transactions...)

	return d, nil
}

// ForEvent returns the analytics for a single event, scoped to its organizer.
func (s *AnalyticsService) ForEvent(ctx context.Context, organizerID, eventID string) (*EventAnalytics, error) {
	event, err := s.events.FindOne(ctx, ports.EventFilter{ID: eventID, Organizer: organizerID})
	if err != nil {
		return nil, err
	}

	sold := event.TicketsSold()
	var revenue float64
	for _, a := range event.Attendees {
		revenue += a.TotalAmount
	}

	occupancy := 0.0
	if event.Capacity > 0 {
		occupancy = float64(sold) / float64(event.Capacity) * 100
	}

	attendees := event.Attendees
	if attendees == nil {
		attendees = []domain.Attendee{}
	}

	return &EventAnalytics{
		EventTitle:       event.Title,
		TotalTicketsSold: sold,
		TotalRevenue:     revenue,
		AvailableTickets: event.AvailableTickets(),
		OccupancyRate:    fmt.Sprintf("%.2f", occupancy),
		Attendees:        attendees,
	}, nil
}

// capitalize uppercases the first letter. Tolerates the empty string so a
// stored event with a blank category cannot take the dashboard down.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func priceBand(price float64) string {
	switch {
	case price == 0:
		return "Free"
	case price <= 500:
		return "KES 1-500"
	case price <= 2000:
		return "KES 501-2000"
	case price <= 5000:
		return "KES 2001-5000"
	default:
		return "KES 5000+"
	}
}
