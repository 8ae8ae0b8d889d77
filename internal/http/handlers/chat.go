package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/argonath-events/convention-assistant/internal/conversation"
	"github.com/argonath-events/convention-assistant/pkg/logging"
)

// ChatHandler exposes the conversation engine over HTTP.
type ChatHandler struct {
	service conversation.Service
	logger  *logging.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(service conversation.Service, logger *logging.Logger) *ChatHandler {
	if service == nil {
		panic("handlers: conversation service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatHandler{service: service, logger: logger}
}

// ProcessMessage handles POST /api/v1/chat/message.
func (h *ChatHandler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	var req conversation.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.service.ProcessMessage(r.Context(), req)
	if err != nil {
		if errors.Is(err, conversation.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		h.logger.Error("process message failed", "session_id", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type resetRequest struct {
	SessionID string `json:"session_id"`
}

// ResetConversation handles POST /api/v1/chat/reset.
func (h *ChatHandler) ResetConversation(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.service.ResetConversation(r.Context(), req.SessionID); err != nil {
		h.logger.Error("reset conversation failed", "session_id", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// History handles GET /api/v1/chat/history.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	messages, err := h.service.History(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("load history failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if messages == nil {
		messages = []conversation.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}
