package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports that no value exists under the requested key.
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable string-keyed, string-valued persistence slot.
// Implementations are best-effort: callers recover from failures locally.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
