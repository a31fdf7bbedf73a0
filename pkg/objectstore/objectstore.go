// Package objectstore reads whole objects from remote or local stores.
package objectstore

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by stores when the bucket or object does not exist.
var ErrNotFound = errors.New("object not found")

// Store fetches the bytes of a single object.
type Store interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Close() error
}
