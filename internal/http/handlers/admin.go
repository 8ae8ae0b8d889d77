package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/argonath-events/convention-assistant/internal/storage"
	"github.com/argonath-events/convention-assistant/pkg/logging"
)

// BookingLister is the read surface the admin endpoints need.
type BookingLister interface {
	SearchBookings(ctx context.Context, q storage.BookingSearch) ([]storage.BookingDetail, error)
	ListAllBookings(ctx context.Context) ([]storage.BookingDetail, error)
}

// AdminHandler serves the organizer-facing booking views.
type AdminHandler struct {
	store  BookingLister
	logger *logging.Logger
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(store BookingLister, logger *logging.Logger) *AdminHandler {
	if store == nil {
		panic("handlers: booking store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{store: store, logger: logger}
}

// ListBookings handles GET /api/v1/admin/bookings.
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.store.ListAllBookings(r.Context())
	if err != nil {
		h.logger.Error("list bookings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if bookings == nil {
		bookings = []storage.BookingDetail{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// SearchBookings handles GET /api/v1/admin/bookings/search with optional
// name, email, and date (YYYY-MM-DD) filters.
func (h *AdminHandler) SearchBookings(w http.ResponseWriter, r *http.Request) {
	q := storage.BookingSearch{
		Name:  r.URL.Query().Get("name"),
		Email: r.URL.Query().Get("email"),
	}
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		q.Date = &date
	}

	bookings, err := h.store.SearchBookings(r.Context(), q)
	if err != nil {
		h.logger.Error("search bookings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if bookings == nil {
		bookings = []storage.BookingDetail{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bookings": bookings,
		"total":    len(bookings),
	})
}
