package etl

import (
	"context"

	"github.com/BartekS5/review-etl/pkg/models"
)

// Extractor fetches the source dataset.
type Extractor interface {
	Extract(ctx context.Context) (*models.Table, int, error)
}

// Stage is a pure table-to-table step. Implementations must not modify their input.
type Stage interface {
	Name() string
	Apply(in *models.Table) (*models.Table, error)
}

// Loader replaces the destination contents with a table.
type Loader interface {
	Load(ctx context.Context, data *models.Table) (int, error)
}
