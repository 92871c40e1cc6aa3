// Package storage provides the durable key/value "local storage" the event
// store is mirrored to. Every backend stores opaque byte values under string
// keys and overwrites a key as a whole.
package storage

import (
	"context"
	"errors"
)

var ErrItemNotFound = errors.New("storage item not found")

type LocalStorage interface {
	// GetItem returns the value stored under key or ErrItemNotFound.
	GetItem(ctx context.Context, key string) ([]byte, error)
	// SetItem replaces the value stored under key atomically.
	SetItem(ctx context.Context, key string, value []byte) error
	Close() error
}
