package ports

import (
	"context"
	"io"
)

// FileStorage : хранилище тел файлов (S3 либо локальный диск)
type FileStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
