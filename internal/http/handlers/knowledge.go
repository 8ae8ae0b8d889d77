package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/argonath-events/convention-assistant/internal/rag"
	"github.com/argonath-events/convention-assistant/pkg/logging"
)

// maxUploadBytes caps PDF uploads at 25 MiB.
const maxUploadBytes = 25 << 20

// PDFIngestor is the knowledge-base surface the upload endpoint needs.
type PDFIngestor interface {
	IngestPDF(ctx context.Context, source string, r io.ReaderAt, size int64, chunkSize, chunkOverlap int) (int, error)
	DocumentCount() int
}

// KnowledgeHandler ingests uploaded PDFs into the retrieval store.
type KnowledgeHandler struct {
	ingestor     PDFIngestor
	chunkSize    int
	chunkOverlap int
	logger       *logging.Logger
}

// NewKnowledgeHandler creates a knowledge upload handler.
func NewKnowledgeHandler(ingestor PDFIngestor, chunkSize, chunkOverlap int, logger *logging.Logger) *KnowledgeHandler {
	if ingestor == nil {
		panic("handlers: pdf ingestor required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &KnowledgeHandler{
		ingestor:     ingestor,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       logger,
	}
}

// Upload handles POST /api/v1/knowledge/upload with a multipart "file"
// field.
func (h *KnowledgeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "only PDF uploads are supported")
		return
	}

	chunks, err := h.ingestor.IngestPDF(r.Context(), header.Filename, file, header.Size, h.chunkSize, h.chunkOverlap)
	if err != nil {
		if errors.Is(err, rag.ErrEmptyDocument) {
			writeError(w, http.StatusUnprocessableEntity, "document contains no extractable text")
			return
		}
		h.logger.Error("pdf ingestion failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to process document")
		return
	}

	h.logger.Info("pdf ingested", "filename", header.Filename, "chunks", chunks)
	writeJSON(w, http.StatusOK, map[string]any{
		"filename":        header.Filename,
		"chunks":          chunks,
		"total_documents": h.ingestor.DocumentCount(),
	})
}
