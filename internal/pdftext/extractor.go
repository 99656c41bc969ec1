// Package pdftext turns uploaded PDF bytes into plain text.
//
// Text comes from github.com/ledongthuc/pdf, a pure Go reader. It handles
// the text layer only; scanned pages without one produce no text.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"github.com/fedutinova/xpb3parser/internal/common"
	"github.com/fedutinova/xpb3parser/internal/storage"
)

// Document is the text recovered from one upload.
type Document struct {
	Text     string
	Pages    int
	MIMEType string
}

type Extractor struct {
	store storage.TempStore
}

func NewExtractor(store storage.TempStore) *Extractor {
	return &Extractor{store: store}
}

// Extract spools data to a temporary file, reads every page in order and
// returns the trimmed concatenation of their text. The temporary file is
// removed before Extract returns.
func (e *Extractor) Extract(ctx context.Context, data []byte) (*Document, error) {
	start := time.Now()
	mt := mimetype.Detect(data).String()

	f, err := e.store.Write(ctx, "upload.pdf", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	defer func() {
		if err := e.store.Remove(context.WithoutCancel(ctx), f); err != nil {
			slog.Warn("failed to remove spooled upload", "key", f.Key, "error", err)
		}
	}()

	text, pages, err := readFile(f.Path)
	if err != nil {
		slog.Warn("pdf rejected", "mime", mt, "size", len(data), "error", err)
		return nil, common.WrapInvalidPDF(fmt.Sprintf("detected %s", mt), err)
	}

	slog.Info("pdf text extracted",
		"pages", pages,
		"text_length", len(text),
		"mime", mt,
		"duration_ms", time.Since(start).Milliseconds())

	return &Document{Text: text, Pages: pages, MIMEType: mt}, nil
}

// ExtractText is Extract without the metadata.
func (e *Extractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	doc, err := e.Extract(ctx, data)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func readFile(path string) (text string, pages int, err error) {
	// the reader panics on some malformed object graphs
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	file, reader, err := pdf.Open(path)
	if file != nil {
		defer file.Close()
	}
	if err != nil {
		return "", 0, err
	}

	pages = reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		sb.WriteString(pageText(reader.Page(i), i))
	}

	return strings.TrimSpace(sb.String()), pages, nil
}

// pageText never fails: a page without a usable text layer contributes "".
func pageText(p pdf.Page, n int) string {
	if p.V.IsNull() {
		return ""
	}
	s, err := p.GetPlainText(nil)
	if err != nil {
		slog.Debug("page text unavailable", "page", n, "error", err)
		return ""
	}
	return s
}
