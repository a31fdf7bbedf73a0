package etl

import (
	"errors"

	"github.com/BartekS5/review-etl/pkg/models"
	"github.com/BartekS5/review-etl/pkg/utils"
)

var errMissingReviewID = errors.New("missing review_id")

// Validator checks structural requirements at stage boundaries.
type Validator struct {
	Stage string
}

func NewValidator(stage string) *Validator {
	return &Validator{Stage: stage}
}

// RequireColumns returns a SchemaError for the first column t does not declare.
func (v *Validator) RequireColumns(t *models.Table, columns ...string) error {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return &SchemaError{Stage: v.Stage, Column: c}
		}
	}
	return nil
}

// ValidateUniqueIDs returns a ConstraintError for the first row whose
// review_id is missing or already seen.
func (v *Validator) ValidateUniqueIDs(t *models.Table) error {
	if err := v.RequireColumns(t, models.ColReviewID); err != nil {
		return err
	}
	seen := make(map[string]struct{}, t.Len())
	for _, row := range t.Rows {
		raw := row[models.ColReviewID]
		if raw == nil {
			return &ConstraintError{Err: errMissingReviewID}
		}
		id := utils.ConvertToString(raw)
		if id == "" {
			return &ConstraintError{Err: errMissingReviewID}
		}
		if _, dup := seen[id]; dup {
			return &ConstraintError{ReviewID: id}
		}
		seen[id] = struct{}{}
	}
	return nil
}
