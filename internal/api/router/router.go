// Package router wires the HTTP surface of the convention assistant.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/argonath-events/convention-assistant/internal/http/handlers"
	httpmiddleware "github.com/argonath-events/convention-assistant/internal/http/middleware"
	"github.com/argonath-events/convention-assistant/internal/webchat"
	"github.com/argonath-events/convention-assistant/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *handlers.ChatHandler
	KnowledgeHandler   *handlers.KnowledgeHandler
	AdminHandler       *handlers.AdminHandler
	WebchatHandler     *webchat.Handler
	MetricsHandler     http.Handler
	AdminAuthSecret    string
	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.ChatHandler != nil {
			api.Route("/chat", func(chat chi.Router) {
				chat.Post("/message", cfg.ChatHandler.ProcessMessage)
				chat.Post("/reset", cfg.ChatHandler.ResetConversation)
				chat.Get("/history", cfg.ChatHandler.History)
			})
		}
		if cfg.KnowledgeHandler != nil {
			api.Post("/knowledge/upload", cfg.KnowledgeHandler.Upload)
		}
		if cfg.AdminHandler != nil {
			api.Route("/admin", func(admin chi.Router) {
				admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
				admin.Get("/bookings", cfg.AdminHandler.ListBookings)
				admin.Get("/bookings/search", cfg.AdminHandler.SearchBookings)
			})
		}
	})

	if cfg.WebchatHandler != nil {
		r.Get("/ws/chat", cfg.WebchatHandler.HandleWebSocket)
	}

	return r
}
