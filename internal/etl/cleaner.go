package etl

import (
	"fmt"
	"strings"

	"github.com/BartekS5/review-etl/pkg/logger"
	"github.com/BartekS5/review-etl/pkg/models"
	"github.com/BartekS5/review-etl/pkg/utils"
)

const (
	DefaultHeadline = "No headline"
	DefaultBody     = "No review"
)

// Cleaner deduplicates rows, fills missing headline/body text, coerces
// review_date and star_rating, and normalizes product_category. Malformed
// values are coerced, never dropped.
type Cleaner struct {
	validator *Validator
}

func NewCleaner() *Cleaner {
	return &Cleaner{validator: NewValidator("clean")}
}

func (c *Cleaner) Name() string { return "clean" }

func (c *Cleaner) Apply(in *models.Table) (*models.Table, error) {
	if err := c.validator.RequireColumns(in,
		models.ColReviewDate,
		models.ColStarRating,
		models.ColProductCategory,
		models.ColReviewHeadline,
		models.ColReviewBody,
	); err != nil {
		return nil, err
	}

	out := dedupe(in)
	var badDates int
	for _, row := range out.Rows {
		if row[models.ColReviewHeadline] == nil {
			row[models.ColReviewHeadline] = DefaultHeadline
		}
		if row[models.ColReviewBody] == nil {
			row[models.ColReviewBody] = DefaultBody
		}

		raw := row[models.ColReviewDate]
		if d, ok := utils.ParseDate(raw); ok {
			row[models.ColReviewDate] = d
		} else {
			if raw != nil {
				badDates++
			}
			row[models.ColReviewDate] = nil
		}

		row[models.ColStarRating] = utils.CoerceRating(row[models.ColStarRating])

		if s, ok := row[models.ColProductCategory].(string); ok {
			row[models.ColProductCategory] = strings.ToLower(strings.TrimSpace(s))
		}
	}

	if badDates > 0 {
		logger.Warnf("Cleaning: %d unparsable review_date values set to null", badDates)
	}
	logger.Infof("Cleaned data with %d rows remaining (%d duplicates removed)", out.Len(), in.Len()-out.Len())
	return out, nil
}

// dedupe returns a copy of t without exact-duplicate rows, keeping the first
// occurrence of each.
func dedupe(t *models.Table) *models.Table {
	out := models.NewTable(t.Columns...)
	seen := make(map[string]struct{}, t.Len())
	var b strings.Builder
	for _, row := range t.Rows {
		b.Reset()
		for _, col := range t.Columns {
			// length-prefixed so cell contents cannot forge a boundary
			v := fmt.Sprint(row[col])
			fmt.Fprintf(&b, "%T:%d:%s", row[col], len(v), v)
		}
		key := b.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.Append(row)
	}
	return out
}
