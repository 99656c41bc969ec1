package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type LocalSpool struct {
	baseDir string
}

func NewLocalSpool(baseDir string) (*LocalSpool, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create spool directory: %w", err)
	}

	return &LocalSpool{baseDir: baseDir}, nil
}

func (s *LocalSpool) Write(ctx context.Context, filename string, content io.Reader) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := s.generateKey(filename)
	filePath := filepath.Join(s.baseDir, key)

	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}

	n, copyErr := io.Copy(f, content)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(filePath)
		return nil, fmt.Errorf("failed to write spool file: %w", err)
	}

	slog.Debug("upload spooled", "key", key, "path", filePath, "size", n)

	return &File{
		Key:  key,
		Path: filePath,
		Size: n,
	}, nil
}

// Remove deletes the spooled file. Removing an already removed file is not an error.
func (s *LocalSpool) Remove(ctx context.Context, f *File) error {
	if f == nil {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete spool file: %w", err)
	}

	slog.Debug("spool file removed", "key", f.Key)
	return nil
}

func (s *LocalSpool) generateKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	return fmt.Sprintf("nota_%s%s", uuid.New().String(), ext)
}
