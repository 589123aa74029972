package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub-ke/eventhub/internal/adapter/handler"
	"github.com/eventhub-ke/eventhub/internal/adapter/payment"
	"github.com/eventhub-ke/eventhub/internal/adapter/repository/memory"
	"github.com/eventhub-ke/eventhub/internal/core/services"
)

// newTestServer wires the full router against a fresh in-memory store and a
// deterministic payment simulator.
func newTestServer(t *testing.T, successRate float64) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := memory.NewStore()
	events := memory.NewEventRepository(store)
	users := memory.NewUserRepository(store)

	provider := payment.NewSimulator(0, successRate, payment.WithRandom(func() float64 { return 0.5 }))

	auth := services.NewAuthService(users, "test-secret", time.Hour)
	eventSvc := services.NewEventService(events)
	bookings := services.NewBookingService(events, users, provider)
	analytics := services.NewAnalyticsService(events)

	srv := httptest.NewServer(handler.NewRouter(log, auth, eventSvc, bookings, analytics))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && resp.Header.Get("Content-Type") == "application/json" && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func registerUser(t *testing.T, srv *httptest.Server, name, email, role string) string {
	t.Helper()
	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"phone":    "0712345678",
		"password": "s3cret-pass",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["token"].(string)
}

func createEvent(t *testing.T, srv *httptest.Server, token string, price float64, capacity int) string {
	t.Helper()
	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/events/", token, map[string]any{
		"title":    "Jazz Night",
		"date":     time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
		"time":     "20:00",
		"location": "Nairobi",
		"price":    price,
		"category": "concert",
		"capacity": capacity,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, 1)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body["status"])
}

func TestPurchaseFlow(t *testing.T) {
	srv := newTestServer(t, 1)

	organizer := registerUser(t, srv, "Organizer", "org@example.com", "organizer")
	buyer := registerUser(t, srv, "Buyer", "buyer@example.com", "")
	eventID := createEvent(t, srv, organizer, 1500, 3)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/payments/process", buyer, map[string]any{
		"eventId":     eventID,
		"quantity":    2,
		"phoneNumber": "0712345678",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Payment successful", body["message"])

	ticket := body["ticket"].(map[string]any)
	assert.Equal(t, "Jazz Night", ticket["eventTitle"])
	assert.Equal(t, 3000.0, ticket["totalAmount"])
	ticketNumber := ticket["ticketNumber"].(string)

	// Availability is reflected on the public event view, and reading twice
	// without a mutation in between returns the same count.
	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/events/"+eventID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, body["availableTickets"])
	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/events/"+eventID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, body["availableTickets"])

	// Overselling the single remaining ticket reports the exact count.
	resp, body = doRequest(t, http.MethodPost, srv.URL+"/api/payments/process", buyer, map[string]any{
		"eventId":  eventID,
		"quantity": 2,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Only 1 tickets available", body["message"])

	// The purchase shows up in history and renders as a receipt.
	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/payments/history", buyer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/payments/ticket/"+ticketNumber, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+buyer)
	receiptResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer receiptResp.Body.Close()
	require.Equal(t, http.StatusOK, receiptResp.StatusCode)
	assert.Equal(t, "text/plain", receiptResp.Header.Get("Content-Type"))
	assert.Contains(t, receiptResp.Header.Get("Content-Disposition"), ticketNumber)
	receipt, err := io.ReadAll(receiptResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(receipt), "EVENT TICKET")
	assert.Contains(t, string(receipt), ticketNumber)
}

func TestPurchase_EventNotFound(t *testing.T) {
	srv := newTestServer(t, 1)
	buyer := registerUser(t, srv, "Buyer", "buyer@example.com", "")

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/payments/process", buyer, map[string]any{
		"eventId":  "999",
		"quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", body["message"])
}

func TestPurchase_PaymentDeclined(t *testing.T) {
	// Success rate 0: every charge is declined.
	srv := newTestServer(t, 0)

	organizer := registerUser(t, srv, "Organizer", "org@example.com", "organizer")
	buyer := registerUser(t, srv, "Buyer", "buyer@example.com", "")
	eventID := createEvent(t, srv, organizer, 1500, 10)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/payments/process", buyer, map[string]any{
		"eventId":  eventID,
		"quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Payment failed. Please try again.", body["message"])

	// The decline left no attendee record behind.
	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/events/"+eventID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10.0, body["availableTickets"])
}

func TestAuthCodes(t *testing.T) {
	srv := newTestServer(t, 1)

	t.Run("no token", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/auth/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Not authorized, no token", body["message"])
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/auth/profile", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_TOKEN", body["code"])
	})

	t.Run("duplicate email conflict", func(t *testing.T) {
		registerUser(t, srv, "First", "dup@example.com", "")
		resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]any{
			"name": "Second", "email": "dup@example.com", "password": "s3cret-pass",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "User already exists with this email", body["message"])
	})

	t.Run("bad login", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]any{
			"email": "dup@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid email or password", body["message"])
	})
}

func TestOrganizerOnlyRoutes(t *testing.T) {
	srv := newTestServer(t, 1)
	buyer := registerUser(t, srv, "Buyer", "buyer@example.com", "")

	for _, route := range []struct {
		method, path string
	}{
		{http.MethodPost, "/api/events/"},
		{http.MethodGet, "/api/events/my-events"},
		{http.MethodGet, "/api/analytics/dashboard"},
	} {
		t.Run(fmt.Sprintf("%s %s", route.method, route.path), func(t *testing.T) {
			resp, body := doRequest(t, route.method, srv.URL+route.path, buyer, nil)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.Equal(t, "Not authorized as organizer", body["message"])
		})
	}
}

func TestEventOwnership(t *testing.T) {
	srv := newTestServer(t, 1)

	owner := registerUser(t, srv, "Owner", "owner@example.com", "organizer")
	rival := registerUser(t, srv, "Rival", "rival@example.com", "organizer")
	eventID := createEvent(t, srv, owner, 1000, 50)

	resp, body := doRequest(t, http.MethodPut, srv.URL+"/api/events/"+eventID, rival, map[string]any{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Not authorized to modify this resource", body["message"])

	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/events/"+eventID, rival, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/events/"+eventID, owner, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAnalyticsDashboard(t *testing.T) {
	srv := newTestServer(t, 1)

	organizer := registerUser(t, srv, "Organizer", "org@example.com", "organizer")
	buyer := registerUser(t, srv, "Buyer", "buyer@example.com", "")
	eventID := createEvent(t, srv, organizer, 1500, 100)

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/api/payments/process", buyer, map[string]any{
		"eventId": eventID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/analytics/dashboard", organizer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, body["totalEvents"])
	assert.Equal(t, 2.0, body["totalAttendees"])
	assert.Equal(t, 3000.0, body["totalRevenue"])

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/analytics/event/"+eventID, organizer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2.00", body["occupancyRate"])
	assert.Equal(t, 98.0, body["availableTickets"])
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, 1)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/events/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
