package rag

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/tmc/langchaingo/textsplitter"
)

// ErrEmptyDocument is returned when a PDF yields no extractable text.
var ErrEmptyDocument = errors.New("rag: document contains no extractable text")

// ExtractPDFText pulls the plain text out of a PDF.
func ExtractPDFText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("rag: open pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("rag: extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", fmt.Errorf("rag: read pdf text: %w", err)
	}
	return buf.String(), nil
}

// SplitText breaks document text into overlapping chunks sized for
// embedding.
func SplitText(text string, chunkSize, chunkOverlap int) ([]string, error) {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 200
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)
	chunks, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("rag: split text: %w", err)
	}
	return chunks, nil
}

// IngestPDF extracts, chunks, and embeds one uploaded PDF into the store.
// Returns the number of chunks stored.
func (s *MemoryStore) IngestPDF(ctx context.Context, source string, r io.ReaderAt, size int64, chunkSize, chunkOverlap int) (int, error) {
	text, err := ExtractPDFText(r, size)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyDocument
	}

	chunks, err := SplitText(text, chunkSize, chunkOverlap)
	if err != nil {
		return 0, err
	}
	if err := s.AddDocuments(ctx, source, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}
