package storage

import (
	"context"
	"io"
)

// Service stores uploaded media objects and returns the URL they are
// reachable at.
type Service interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
