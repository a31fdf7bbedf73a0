package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore treats a local directory as a bucket and relative paths as keys.
type FileStore struct{}

func NewFileStore() *FileStore { return &FileStore{} }

func (FileStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("key %q escapes bucket directory", key)
	}

	data, err := os.ReadFile(filepath.Join(bucket, clean))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to read file, %w", err)
	}
	return data, nil
}

func (FileStore) Close() error { return nil }
