package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/argonath-events/convention-assistant/internal/booking"
	"github.com/argonath-events/convention-assistant/internal/notify"
	"github.com/argonath-events/convention-assistant/internal/observability/metrics"
	"github.com/argonath-events/convention-assistant/internal/rag"
	"github.com/argonath-events/convention-assistant/internal/storage"
	"github.com/argonath-events/convention-assistant/internal/websearch"
	"github.com/argonath-events/convention-assistant/pkg/logging"
)

// ErrEmptyMessage is returned when a turn carries no text.
var ErrEmptyMessage = errors.New("conversation: message required")

const generalSystemPrompt = `You are a helpful AI assistant for Gates Of Argonath gaming convention.
Gates Of Argonath is a 3-day gaming convention where attendees can:
- Enjoy new games and LAN gaming sessions
- Learn about technology used in the gaming industry
- Upload government IDs (PDFs) to become beta testers for unreleased games

Answer questions based on the provided context. If context is not available or the question is about current events, use web search results.
Be friendly, concise, and helpful. Always mention the convention name when relevant.`

// BookingStore is the persistence surface the engine needs to finalize a
// booking.
type BookingStore interface {
	CreateCustomer(ctx context.Context, name, email, phone string) (*storage.Customer, error)
	CreateBooking(ctx context.Context, customerID int64, ticketType, daysAttending string, betaTester bool) (*storage.Booking, error)
}

// ConfirmationSender emails ticket confirmations.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, draft booking.Draft, ticketID string) notify.SendResult
}

// WebSearcher answers general queries from the public web.
type WebSearcher interface {
	Search(ctx context.Context, query string) (*websearch.Result, error)
}

// session is the per-conversation state. Its mutex serializes turns so two
// concurrent messages for one session never interleave.
type session struct {
	mu     sync.Mutex
	state  booking.State
	draft  booking.Draft
	memory *Memory
}

// Engine routes each turn to the booking dialogue or the general Q&A path
// and owns all side effects of confirmation.
type Engine struct {
	llm         LLMClient
	llmModel    string
	temperature float32
	retriever   rag.Retriever
	searcher    WebSearcher
	store       BookingStore
	mailer      ConfirmationSender
	transcripts *TranscriptStore
	metrics     *metrics.ConversationMetrics
	logger      *logging.Logger
	maxMemory   int

	sessions sync.Map // sessionID -> *session
}

// EngineConfig wires the engine's collaborators. Transcripts and Metrics
// are optional.
type EngineConfig struct {
	LLM         LLMClient
	LLMModel    string
	Temperature float32
	Retriever   rag.Retriever
	Searcher    WebSearcher
	Store       BookingStore
	Mailer      ConfirmationSender
	Transcripts *TranscriptStore
	Metrics     *metrics.ConversationMetrics
	Logger      *logging.Logger
	MaxMemory   int
}

// NewEngine validates the wiring and returns a ready engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.LLM == nil {
		return nil, errors.New("conversation: llm client required")
	}
	if cfg.Retriever == nil {
		return nil, errors.New("conversation: retriever required")
	}
	if cfg.Store == nil {
		return nil, errors.New("conversation: booking store required")
	}
	if cfg.Mailer == nil {
		return nil, errors.New("conversation: confirmation sender required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.MaxMemory <= 0 {
		cfg.MaxMemory = 25
	}
	return &Engine{
		llm:         cfg.LLM,
		llmModel:    cfg.LLMModel,
		temperature: cfg.Temperature,
		retriever:   cfg.Retriever,
		searcher:    cfg.Searcher,
		store:       cfg.Store,
		mailer:      cfg.Mailer,
		transcripts: cfg.Transcripts,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		maxMemory:   cfg.MaxMemory,
	}, nil
}

// ProcessMessage handles one chat turn synchronously: by the time it
// returns, all persistence and email work for the turn has happened.
func (e *Engine) ProcessMessage(ctx context.Context, req MessageRequest) (resp MessageResponse, err error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return MessageResponse{}, ErrEmptyMessage
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	sess := e.session(ctx, sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// A panic anywhere below must not leak a broken turn to the caller.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("conversation turn panicked", "session_id", sessionID, "panic", r)
			resp = MessageResponse{
				Response: fmt.Sprintf("I encountered an error: %v. Please try again.", r),
				Status:   StatusError,
			}
			err = nil
		}
	}()

	sess.memory.Add(ChatRoleUser, message)

	var path string
	if booking.DetectIntent(message) == booking.IntentBooking || sess.state != booking.StateIdle {
		path = "booking"
		resp = e.handleBookingTurn(ctx, sess, message)
	} else {
		path = "general"
		resp = e.handleGeneralTurn(ctx, sess, message)
	}

	sess.memory.Add(ChatRoleAssistant, resp.Response)
	e.saveTranscript(ctx, sessionID, sess)
	e.metrics.ObserveTurn(path, string(resp.Status))
	return resp, nil
}

// ResetConversation drops the session state and its stored transcript.
func (e *Engine) ResetConversation(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		sessionID = "default"
	}
	e.sessions.Delete(sessionID)
	if e.transcripts != nil {
		if err := e.transcripts.Delete(ctx, sessionID); err != nil {
			return err
		}
	}
	return nil
}

// History returns the session transcript.
func (e *Engine) History(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	if sessionID == "" {
		sessionID = "default"
	}
	sess := e.session(ctx, sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.memory.Messages(), nil
}

func (e *Engine) session(ctx context.Context, sessionID string) *session {
	if existing, ok := e.sessions.Load(sessionID); ok {
		return existing.(*session)
	}
	fresh := &session{state: booking.StateIdle, memory: NewMemory(e.maxMemory)}
	if e.transcripts != nil {
		if transcript, err := e.transcripts.Load(ctx, sessionID); err != nil {
			e.logger.Warn("transcript load failed", "session_id", sessionID, "error", err)
		} else if len(transcript) > 0 {
			fresh.memory.Restore(transcript)
		}
	}
	actual, _ := e.sessions.LoadOrStore(sessionID, fresh)
	return actual.(*session)
}

func (e *Engine) saveTranscript(ctx context.Context, sessionID string, sess *session) {
	if e.transcripts == nil {
		return
	}
	if err := e.transcripts.Save(ctx, sessionID, sess.memory.Messages()); err != nil {
		e.logger.Warn("transcript save failed", "session_id", sessionID, "error", err)
	}
}

func (e *Engine) handleBookingTurn(ctx context.Context, sess *session, message string) MessageResponse {
	out := booking.Advance(sess.state, sess.draft, message)

	if out.Finalize {
		return e.finalizeBooking(ctx, sess, out.Draft)
	}

	sess.state = out.State
	sess.draft = out.Draft
	return MessageResponse{Response: out.Reply, Status: StatusInfo}
}

// finalizeBooking persists the draft, sends the confirmation email, and
// resets the dialogue. A failed email downgrades the reply to a warning; a
// failed insert keeps the confirming state so the user can retry.
func (e *Engine) finalizeBooking(ctx context.Context, sess *session, draft booking.Draft) MessageResponse {
	customer, err := e.store.CreateCustomer(ctx, draft.Name, draft.Email, draft.Phone)
	if err != nil {
		return bookingErrorResponse(err)
	}
	bk, err := e.store.CreateBooking(ctx, customer.ID, draft.TicketType, draft.DaysAttending, draft.BetaTester == "yes")
	if err != nil {
		return bookingErrorResponse(err)
	}
	e.metrics.ObserveBookingConfirmed()

	sendResult := e.mailer.SendConfirmation(ctx, draft, bk.ID)

	betaNote := ""
	if draft.BetaTester == "yes" {
		betaNote = " Don't forget to upload your government ID (PDF) in the 'Upload PDFs' section to complete your beta tester registration!"
	}

	var reply string
	status := StatusSuccess
	if sendResult.Sent {
		reply = fmt.Sprintf("✅ Ticket booking confirmed! Your Ticket ID is %s. A confirmation email has been sent to %s.%s", bk.ID, draft.Email, betaNote)
	} else {
		reply = fmt.Sprintf("✅ Ticket booking confirmed! Your Ticket ID is %s. However, I couldn't send the confirmation email (%v). Your booking has been saved.%s", bk.ID, sendResult.Err, betaNote)
		status = StatusWarning
	}

	e.logger.Info("booking confirmed",
		"ticket_id", bk.ID,
		"customer_id", customer.ID,
		"email_sent", sendResult.Sent,
	)

	sess.state = booking.StateIdle
	sess.draft.Reset()

	return MessageResponse{
		Response:  reply,
		ToolUsed:  "booking",
		BookingID: bk.ID,
		EmailSent: sendResult.Sent,
		Status:    status,
	}
}

func bookingErrorResponse(err error) MessageResponse {
	return MessageResponse{
		Response: fmt.Sprintf("I encountered an error: %v. Please try again.", err),
		ToolUsed: "booking",
		Status:   StatusError,
	}
}

func (e *Engine) handleGeneralTurn(ctx context.Context, sess *session, message string) MessageResponse {
	ragContext, err := e.retriever.RelevantContext(ctx, message)
	if err != nil {
		e.logger.Warn("knowledge lookup failed", "error", err)
		ragContext = ""
	}

	useRAG := strings.TrimSpace(ragContext) != ""
	lower := strings.ToLower(message)
	useWeb := !useRAG || strings.Contains(lower, "search") || strings.Contains(lower, "latest")

	promptParts := []string{generalSystemPrompt}
	if memoryContext := sess.memory.Context(); memoryContext != "" {
		promptParts = append(promptParts, "Recent conversation context:\n"+memoryContext)
	}
	if useRAG {
		promptParts = append(promptParts, "Relevant information from uploaded documents:\n"+ragContext)
	}

	webUsed := false
	if useWeb && e.searcher != nil {
		if result, err := e.searcher.Search(ctx, message); err != nil {
			e.logger.Warn("web search failed", "error", err)
		} else if result.Text != "" {
			promptParts = append(promptParts, "Web search results:\n"+result.Text)
			webUsed = true
		}
	}

	promptParts = append(promptParts, "\nUser question: "+message)
	fullPrompt := strings.Join(promptParts, "\n\n")

	start := time.Now()
	completion, err := e.llm.Complete(ctx, LLMRequest{
		Model:       e.llmModel,
		Temperature: e.temperature,
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: fullPrompt}},
	})
	e.metrics.ObserveLLMLatency(time.Since(start).Seconds())
	if err != nil {
		e.logger.Error("llm completion failed", "error", err)
		return MessageResponse{
			Response: fmt.Sprintf("I encountered an error: %v. Please try again.", err),
			Status:   StatusError,
		}
	}

	var tools []string
	if useRAG {
		tools = append(tools, "rag")
	}
	if webUsed {
		tools = append(tools, "web_search")
	}

	return MessageResponse{
		Response: completion.Text,
		ToolUsed: strings.Join(tools, ", "),
		Status:   StatusInfo,
	}
}
