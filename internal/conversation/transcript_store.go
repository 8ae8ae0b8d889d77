package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const transcriptTTL = 24 * time.Hour

// TranscriptStore persists session transcripts in Redis so conversations
// survive process restarts.
type TranscriptStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewTranscriptStore creates a Redis-backed transcript store.
func NewTranscriptStore(rdb *redis.Client, tracer trace.Tracer) *TranscriptStore {
	if rdb == nil {
		panic("conversation: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("argonath.internal.conversation.transcript")
	}
	return &TranscriptStore{redis: rdb, tracer: tracer}
}

// Save stores the transcript for a session.
func (s *TranscriptStore) Save(ctx context.Context, sessionID string, transcript []ChatMessage) error {
	ctx, span := s.tracer.Start(ctx, "conversation.save_transcript")
	defer span.End()

	data, err := json.Marshal(transcript)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: marshal transcript: %w", err)
	}
	if err := s.redis.Set(ctx, transcriptKey(sessionID), data, transcriptTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: persist transcript: %w", err)
	}
	return nil
}

// Load returns the stored transcript, or nil when the session is unknown.
func (s *TranscriptStore) Load(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.load_transcript")
	defer span.End()

	data, err := s.redis.Get(ctx, transcriptKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: load transcript: %w", err)
	}

	var transcript []ChatMessage
	if err := json.Unmarshal(data, &transcript); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: decode transcript: %w", err)
	}
	return transcript, nil
}

// Delete removes a session's transcript.
func (s *TranscriptStore) Delete(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "conversation.delete_transcript")
	defer span.End()

	if err := s.redis.Del(ctx, transcriptKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: delete transcript: %w", err)
	}
	return nil
}

func transcriptKey(sessionID string) string {
	return fmt.Sprintf("transcript:%s", sessionID)
}
