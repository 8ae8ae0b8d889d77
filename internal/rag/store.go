package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/argonath-events/convention-assistant/pkg/logging"
)

// Retriever exposes the query capability needed by the conversation engine.
type Retriever interface {
	RelevantContext(ctx context.Context, query string) (string, error)
}

// Ingestor describes how knowledge documents are ingested.
type Ingestor interface {
	AddDocuments(ctx context.Context, source string, contents []string) error
}

// MemoryStore keeps embeddings in memory and supports simple cosine
// retrieval.
type MemoryStore struct {
	embedder Embedder
	topK     int
	logger   *logging.Logger

	mu   sync.RWMutex
	docs []document
}

type document struct {
	source    string
	content   string
	embedding []float32
}

// StoreOption configures a MemoryStore.
type StoreOption func(*MemoryStore)

// WithTopK sets how many chunks a query returns.
func WithTopK(k int) StoreOption {
	return func(s *MemoryStore) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) StoreOption {
	return func(s *MemoryStore) {
		s.logger = logger
	}
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(embedder Embedder, opts ...StoreOption) *MemoryStore {
	if embedder == nil {
		panic("rag: embedder cannot be nil")
	}
	s := &MemoryStore{
		embedder: embedder,
		topK:     3,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddDocuments embeds and stores the provided chunks under a source name.
func (s *MemoryStore) AddDocuments(ctx context.Context, source string, contents []string) error {
	if len(contents) == 0 {
		return nil
	}

	vectors, err := s.embedder.Embed(ctx, contents)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i, content := range contents {
		s.docs = append(s.docs, document{
			source:    source,
			content:   content,
			embedding: vectors[i],
		})
	}
	total := len(s.docs)
	s.mu.Unlock()

	s.logger.Info("knowledge ingested", "source", source, "chunks", len(contents), "total", total)
	return nil
}

// Query returns the topK most similar chunks for the query.
func (s *MemoryStore) Query(ctx context.Context, query string) ([]string, error) {
	s.mu.RLock()
	empty := len(s.docs) == 0
	s.mu.RUnlock()
	if empty {
		return nil, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("rag: embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, nil
	}
	queryVec := vectors[0]

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		score   float64
		content string
	}
	results := make([]scored, 0, len(s.docs))
	for _, doc := range s.docs {
		results = append(results, scored{
			score:   cosineSimilarity(queryVec, doc.embedding),
			content: doc.content,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	limit := s.topK
	if len(results) < limit {
		limit = len(results)
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = results[i].content
	}
	return out, nil
}

// RelevantContext joins the best-matching chunks into one prompt block.
// Returns "" when no documents have been ingested.
func (s *MemoryStore) RelevantContext(ctx context.Context, query string) (string, error) {
	chunks, err := s.Query(ctx, query)
	if err != nil {
		return "", err
	}
	return strings.Join(chunks, "\n\n"), nil
}

// DocumentCount reports how many chunks are stored.
func (s *MemoryStore) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
