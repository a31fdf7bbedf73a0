package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore reads objects from Google Cloud Storage.
type GCSStore struct {
	client *storage.Client
}

// NewGCSStore authenticates with the service-account key at credentialsFile.
func NewGCSStore(ctx context.Context, credentialsFile string) (*GCSStore, error) {
	if credentialsFile == "" {
		return nil, errors.New("gcs credentials file is required")
	}
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client, %w", err)
	}
	return &GCSStore{client: client}, nil
}

func (g *GCSStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	r, err := g.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to open object, %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read object, %w", err)
	}
	return data, nil
}

func (g *GCSStore) Close() error {
	return g.client.Close()
}
