package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is the client side key/value state a session lives in. It plays the
// role browser local storage plays for a web front end: every key is process
// wide, Set overwrites atomically and Clear wipes everything.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
	Close() error
}
