// Package storage is a key-addressed object store backed by the local filesystem.
package storage

import (
	"context"

	"github.com/JaimeStill/regdesk/pkg/lifecycle"
)

// System stores binary objects under slash-separated keys.
type System interface {
	// Create writes data at key only if key does not exist yet.
	// Returns ErrExists when it does. Readers never observe a partial object.
	Create(ctx context.Context, key string, data []byte) error

	// Store writes data at key, replacing any existing object.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the object at key or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// Keys lists every key under prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// PublicURL resolves the location clients fetch key from.
	PublicURL(key string) string

	// KeyFromURL is the inverse of PublicURL. ok is false for foreign URLs.
	KeyFromURL(url string) (key string, ok bool)

	Start(lc *lifecycle.Coordinator) error
}
