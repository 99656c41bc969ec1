package storage

import (
	"context"
	"io"
)

// TempStore materializes upload bytes as short-lived files. Callers own the
// returned File and must Remove it when done.
type TempStore interface {
	Write(ctx context.Context, filename string, content io.Reader) (*File, error)
	Remove(ctx context.Context, f *File) error
}

type File struct {
	Key  string
	Path string
	Size int64
}
