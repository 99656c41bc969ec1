package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fedutinova/xpb3parser/internal/auth"
	"github.com/fedutinova/xpb3parser/internal/common"
	"github.com/fedutinova/xpb3parser/internal/config"
	"github.com/fedutinova/xpb3parser/internal/llm"
	"github.com/fedutinova/xpb3parser/internal/pdftext"
	"github.com/fedutinova/xpb3parser/internal/validation"
)

const (
	StatusMessage = "XP B3 Parser ativo"
	DocsPath      = "/docs"

	// multipart parts above this size are spooled to disk by net/http
	formMemory = 32 << 20
)

//go:embed openapi.json
var openAPISpec []byte

type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (*pdftext.Document, error)
}

type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (*llm.Result, error)
}

type Handlers struct {
	Extractor TextExtractor
	Fields    FieldExtractor
	Config    config.Config
}

func (h *Handlers) Routers(r chi.Router) {
	r.Get("/", h.root)
	r.Get(DocsPath, h.docs)
	r.Get("/health", h.Health)

	// everything under /predict sits behind the shared secret
	r.Route("/predict", func(r chi.Router) {
		r.Use(auth.APIKeyMiddleware(h.Config.APIKey))
		r.Post("/", h.predict)
	})
}

func (h *Handlers) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": StatusMessage,
		"docs":   DocsPath,
	})
}

func (h *Handlers) docs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPISpec)
}

func (h *Handlers) predict(w http.ResponseWriter, r *http.Request) {
	if limit := h.Config.MaxUploadBytes; limit > 0 {
		if r.ContentLength > limit {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"detail": fmt.Sprintf("upload exceeds %d bytes", limit),
			})
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"detail": fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		slog.Warn("failed to parse predict form", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": validation.ValidationErrors{{Field: validation.FileField, Message: "invalid multipart body"}},
		})
		return
	}
	defer r.MultipartForm.RemoveAll()

	if errs := validation.ValidatePredictUpload(r.MultipartForm); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": errs})
		return
	}

	fileHeader := r.MultipartForm.File[validation.FileField][0]
	data, err := readUpload(fileHeader)
	if err != nil {
		h.fail(w, err)
		return
	}

	doc, err := h.Extractor.Extract(r.Context(), data)
	if err != nil {
		h.fail(w, err)
		return
	}

	result, err := h.Fields.ExtractFields(r.Context(), doc.Text)
	if err != nil {
		h.fail(w, err)
		return
	}

	slog.Info("nota processed",
		"filename", fileHeader.Filename,
		"size_bytes", len(data),
		"pages", doc.Pages,
		"model", result.Model,
		"tokens_used", result.TokensUsed,
		"processing_time_ms", result.ProcessingTimeMs)

	resp := map[string]any{"resultado": result.Content}
	if h.Config.IncludeParsedFields && result.Fields.Parsed() {
		resp["campos"] = result.Fields.Note
	}
	writeJSON(w, http.StatusOK, resp)
}

// fail reports err in-band. Every failure past the gatekeeper is a 200 with
// an "error" body.
func (h *Handlers) fail(w http.ResponseWriter, err error) {
	switch {
	case common.IsEmptyText(err):
		slog.Info("pdf has no extractable text")
	case common.IsInvalidPDF(err):
		slog.Warn("predict rejected upload", "error", err)
	default:
		slog.Error("predict failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "err", err)
	}
}
