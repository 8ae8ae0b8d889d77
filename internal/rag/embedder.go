// Package rag retrieves convention knowledge from uploaded documents.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// Embedder turns texts into vectors for similarity search.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// GeminiEmbedder implements Embedder using Google's embedding models.
type GeminiEmbedder struct {
	client  *genai.Client
	modelID string
}

// NewGeminiEmbedder wraps an existing genai client.
func NewGeminiEmbedder(client *genai.Client, modelID string) (*GeminiEmbedder, error) {
	if client == nil {
		return nil, errors.New("rag: genai client required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-embedding-001"
	}
	return &GeminiEmbedder{client: client, modelID: modelID}, nil
}

// Embed returns one vector per input text, in order.
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := e.client.EmbeddingModel(e.modelID)
	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("rag: embed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, errors.New("rag: embedding response size mismatch")
	}

	out := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		out[i] = emb.Values
	}
	return out, nil
}
