package etl

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/golang-sql/civil"

	"github.com/BartekS5/review-etl/pkg/logger"
	"github.com/BartekS5/review-etl/pkg/models"
	"github.com/BartekS5/review-etl/pkg/utils"
)

// Transformer adds review_month and normalizes review_body. It does no I/O.
type Transformer struct {
	validator *Validator
}

func NewTransformer() *Transformer {
	return &Transformer{validator: NewValidator("transform")}
}

func (t *Transformer) Name() string { return "transform" }

// Apply expects cleaned input. A null review_date yields a null review_month.
func (t *Transformer) Apply(in *models.Table) (*models.Table, error) {
	if err := t.validator.RequireColumns(in, models.ColReviewDate, models.ColReviewBody); err != nil {
		return nil, err
	}

	out := in.Clone()
	out.AddColumn(models.ColReviewMonth)
	for _, row := range out.Rows {
		row[models.ColReviewMonth] = ReviewMonth(row[models.ColReviewDate])
		if body := row[models.ColReviewBody]; body != nil {
			row[models.ColReviewBody] = NormalizeText(utils.ConvertToString(body))
		}
	}

	logger.Info("Data transformation complete.")
	return out, nil
}

// ReviewMonth formats a review date as "YYYY-MM", or returns nil when the
// date is missing or unreadable.
func ReviewMonth(date interface{}) interface{} {
	var d civil.Date
	switch v := date.(type) {
	case nil:
		return nil
	case civil.Date:
		d = v
	default:
		parsed, ok := utils.ParseDate(v)
		if !ok {
			return nil
		}
		d = parsed
	}
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// NormalizeText lowercases s and drops every rune that is not a-z, 0-9 or whitespace.
func NormalizeText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, strings.ToLower(s))
}
