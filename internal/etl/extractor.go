package etl

import (
	"context"
	"time"

	"github.com/BartekS5/review-etl/pkg/logger"
	"github.com/BartekS5/review-etl/pkg/models"
	"github.com/BartekS5/review-etl/pkg/objectstore"
)

// ParquetExtractor fetches one Parquet object and decodes it. It makes a
// single attempt; there is no retry.
type ParquetExtractor struct {
	Store   objectstore.Store
	Bucket  string
	Key     string
	Timeout time.Duration
}

func NewParquetExtractor(store objectstore.Store, bucket, key string, timeout time.Duration) *ParquetExtractor {
	return &ParquetExtractor{Store: store, Bucket: bucket, Key: key, Timeout: timeout}
}

// Extract returns the decoded table and its row count.
func (e *ParquetExtractor) Extract(ctx context.Context) (*models.Table, int, error) {
	logger.Infof("Extracting %s/%s", e.Bucket, e.Key)

	fetchCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	data, err := e.Store.Get(fetchCtx, e.Bucket, e.Key)
	if err != nil {
		return nil, 0, &TransferError{Bucket: e.Bucket, Key: e.Key, Err: err}
	}

	tbl, err := DecodeParquet(ctx, data)
	if err != nil {
		return nil, 0, &DecodeError{Key: e.Key, Err: err}
	}

	logger.Infof("Extracted %d rows (%d columns, %d bytes) from %s", tbl.Len(), len(tbl.Columns), len(data), e.Key)
	return tbl, tbl.Len(), nil
}
