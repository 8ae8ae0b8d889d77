package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/argonath-events/convention-assistant/internal/storage"
)

type stubLister struct {
	bookings []storage.BookingDetail
	lastQ    storage.BookingSearch
}

func (s *stubLister) SearchBookings(_ context.Context, q storage.BookingSearch) ([]storage.BookingDetail, error) {
	s.lastQ = q
	return s.bookings, nil
}

func (s *stubLister) ListAllBookings(context.Context) ([]storage.BookingDetail, error) {
	return s.bookings, nil
}

func sampleBooking() storage.BookingDetail {
	return storage.BookingDetail{
		Booking: storage.Booking{
			ID:         "ticket-1",
			TicketType: "vip",
		},
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
	}
}

func TestListBookings(t *testing.T) {
	h := NewAdminHandler(&stubLister{bookings: []storage.BookingDetail{sampleBooking()}}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
	rec := httptest.NewRecorder()
	h.ListBookings(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got struct {
		Bookings []storage.BookingDetail `json:"bookings"`
		Total    int                     `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Total != 1 || got.Bookings[0].ID != "ticket-1" {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestSearchBookingsForwardsFilters(t *testing.T) {
	lister := &stubLister{}
	h := NewAdminHandler(lister, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/search?name=John&email=john@&date=2026-10-01", nil)
	rec := httptest.NewRecorder()
	h.SearchBookings(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if lister.lastQ.Name != "John" || lister.lastQ.Email != "john@" {
		t.Errorf("filters = %+v", lister.lastQ)
	}
	want := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if lister.lastQ.Date == nil || !lister.lastQ.Date.Equal(want) {
		t.Errorf("date = %v, want %v", lister.lastQ.Date, want)
	}
}

func TestSearchBookingsBadDate(t *testing.T) {
	h := NewAdminHandler(&stubLister{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/search?date=next-week", nil)
	rec := httptest.NewRecorder()
	h.SearchBookings(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
