package conversation

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestTranscriptStore(t *testing.T) *TranscriptStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTranscriptStore(client, nil)
}

func TestTranscriptStoreRoundTrip(t *testing.T) {
	store := newTestTranscriptStore(t)
	ctx := context.Background()

	transcript := []ChatMessage{
		{Role: ChatRoleUser, Content: "hello"},
		{Role: ChatRoleAssistant, Content: "hi there"},
	}
	if err := store.Save(ctx, "s1", transcript); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].Content != "hello" || got[1].Role != ChatRoleAssistant {
		t.Errorf("unexpected transcript: %+v", got)
	}
}

func TestTranscriptStoreUnknownSession(t *testing.T) {
	store := newTestTranscriptStore(t)
	got, err := store.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("unknown session must yield nil, got %+v", got)
	}
}

func TestTranscriptStoreDelete(t *testing.T) {
	store := newTestTranscriptStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", []ChatMessage{{Role: ChatRoleUser, Content: "hello"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("deleted session must yield nil, got %+v", got)
	}
}
