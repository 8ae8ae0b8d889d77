package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/argonath-events/convention-assistant/internal/conversation"
	"github.com/argonath-events/convention-assistant/internal/http/handlers"
	"github.com/argonath-events/convention-assistant/internal/storage"
)

type nopLister struct{}

func (nopLister) SearchBookings(context.Context, storage.BookingSearch) ([]storage.BookingDetail, error) {
	return nil, nil
}

func (nopLister) ListAllBookings(context.Context) ([]storage.BookingDetail, error) {
	return nil, nil
}

type stubService struct{}

func (stubService) ProcessMessage(context.Context, conversation.MessageRequest) (conversation.MessageResponse, error) {
	return conversation.MessageResponse{Response: "hi", Status: conversation.StatusInfo}, nil
}

func (stubService) ResetConversation(context.Context, string) error { return nil }

func (stubService) History(context.Context, string) ([]conversation.ChatMessage, error) {
	return nil, nil
}

func newTestRouter() http.Handler {
	return New(&Config{
		ChatHandler:     handlers.NewChatHandler(stubService{}, nil),
		AdminAuthSecret: "secret",
	})
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestChatMessageRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/message",
		strings.NewReader(`{"session_id":"s1","message":"hello"}`))
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"hi"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router := New(&Config{
		ChatHandler:     handlers.NewChatHandler(stubService{}, nil),
		AdminHandler:    handlers.NewAdminHandler(nopLister{}, nil),
		AdminAuthSecret: "secret",
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
