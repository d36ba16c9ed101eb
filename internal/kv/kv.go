package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound indicates the key has no stored value.
var ErrKeyNotFound = errors.New("key not found")

// Store is a persistent key-value collaborator: named string keys mapping
// to opaque string values. The docstore layer keeps whole JSON documents
// under fixed well-known keys, so implementations only need atomic
// whole-value get/set/remove semantics.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
