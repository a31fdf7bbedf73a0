package objectstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreGet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2021"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2021", "reviews.parquet"), []byte("PAR1"), 0o644))

	store := NewFileStore()
	defer store.Close()

	data, err := store.Get(context.Background(), dir, "2021/reviews.parquet")
	require.NoError(t, err)
	assert.Equal(t, []byte("PAR1"), data)
}

func TestFileStoreGetMissing(t *testing.T) {
	_, err := NewFileStore().Get(context.Background(), t.TempDir(), "nope.parquet")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRejectsEscapingKeys(t *testing.T) {
	store := NewFileStore()
	for _, key := range []string{"../secret", "a/../../secret"} {
		_, err := store.Get(context.Background(), t.TempDir(), key)
		assert.Error(t, err, key)
		assert.NotErrorIs(t, err, ErrNotFound, key)
	}
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileStore().Get(ctx, t.TempDir(), "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewS3StoreRequiresCredentials(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Options{Region: "eu-west-1"})
	assert.Error(t, err)
}

func TestNewGCSStoreRequiresCredentialsFile(t *testing.T) {
	_, err := NewGCSStore(context.Background(), "")
	assert.Error(t, err)
}
