package conversation

import "context"

// Status tags a reply for the UI: plain dialogue, a confirmed booking, a
// confirmed booking whose email failed, or a failed turn.
type Status string

const (
	StatusInfo    Status = "info"
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// MessageRequest is one inbound chat turn.
type MessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// MessageResponse is the assistant's reply for one turn.
type MessageResponse struct {
	Response  string `json:"response"`
	ToolUsed  string `json:"tool_used,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
	EmailSent bool   `json:"email_sent,omitempty"`
	Status    Status `json:"status"`
}

// Service is the conversation orchestrator consumed by the HTTP and
// websocket layers.
type Service interface {
	ProcessMessage(ctx context.Context, req MessageRequest) (MessageResponse, error)
	ResetConversation(ctx context.Context, sessionID string) error
	History(ctx context.Context, sessionID string) ([]ChatMessage, error)
}
