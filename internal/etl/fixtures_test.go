package etl

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/review-etl/pkg/database"
	"github.com/BartekS5/review-etl/pkg/models"
)

func strp(s string) *string { return &s }

// review is one source row as it would appear in the raw dataset, where
// several numeric-looking fields arrive as text.
type review struct {
	Date     *string
	Customer int64
	ID       string
	Title    string
	Category string
	Rating   *string
	Vine     string
	Headline *string
	Body     *string
}

func sampleReviews() []review {
	return []review{
		{Date: strp("2021-07-15"), Customer: 11, ID: "R1", Title: "Kettle", Category: "  Kitchen ", Rating: strp("4.0"), Vine: "N", Headline: strp("Nice"), Body: strp("Great Product!! 5/5")},
		{Date: strp("2021-07-15"), Customer: 11, ID: "R1", Title: "Kettle", Category: "  Kitchen ", Rating: strp("4.0"), Vine: "N", Headline: strp("Nice"), Body: strp("Great Product!! 5/5")},
		{Date: strp("not a date"), Customer: 12, ID: "R2", Title: "Toaster", Category: "KITCHEN", Rating: strp("five"), Vine: "Y", Headline: nil, Body: nil},
		{Date: nil, Customer: 13, ID: "R3", Title: "Pan", Category: "Home", Rating: nil, Vine: "N", Headline: strp("Meh"), Body: strp("It's OK.")},
	}
}

var reviewSchema = arrow.NewSchema([]arrow.Field{
	{Name: models.ColReviewDate, Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: models.ColMarketplace, Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: models.ColCustomerID, Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	{Name: models.ColReviewID, Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: models.ColProductID, Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: models.ColProductParent, Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	{Name: models.ColProductTitle, Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: models.ColProductCategory, Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: models.ColStarRating, Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: models.ColHelpfulVotes, Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	{Name: models.ColTotalVotes, Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	{Name: models.ColVine, Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: models.ColVerifiedPurchase, Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: models.ColReviewHeadline, Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: models.ColReviewBody, Type: arrow.BinaryTypes.String, Nullable: true},
}, nil)

func appendOptional(b *array.StringBuilder, s *string) {
	if s == nil {
		b.AppendNull()
		return
	}
	b.Append(*s)
}

// encodeParquet writes reviews with the raw review schema.
func encodeParquet(t *testing.T, reviews []review) []byte {
	t.Helper()
	b := array.NewRecordBuilder(memory.DefaultAllocator, reviewSchema)
	defer b.Release()

	for _, r := range reviews {
		appendOptional(b.Field(0).(*array.StringBuilder), r.Date)
		b.Field(1).(*array.StringBuilder).Append("US")
		b.Field(2).(*array.Int64Builder).Append(r.Customer)
		b.Field(3).(*array.StringBuilder).Append(r.ID)
		b.Field(4).(*array.StringBuilder).Append("P-" + r.ID)
		b.Field(5).(*array.Float64Builder).Append(float64(r.Customer) * 10)
		b.Field(6).(*array.StringBuilder).Append(r.Title)
		b.Field(7).(*array.StringBuilder).Append(r.Category)
		appendOptional(b.Field(8).(*array.StringBuilder), r.Rating)
		b.Field(9).(*array.Int64Builder).Append(1)
		b.Field(10).(*array.Int64Builder).Append(2)
		b.Field(11).(*array.StringBuilder).Append(r.Vine)
		b.Field(12).(*array.StringBuilder).Append("Y")
		appendOptional(b.Field(13).(*array.StringBuilder), r.Headline)
		appendOptional(b.Field(14).(*array.StringBuilder), r.Body)
	}

	rec := b.NewRecord()
	defer rec.Release()
	return writeRecord(t, rec)
}

func writeRecord(t *testing.T, rec arrow.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := pqarrow.NewFileWriter(rec.Schema(), &buf, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	require.NoError(t, err)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// writeSource places a Parquet object under a fresh bucket directory and
// returns the bucket.
func writeSource(t *testing.T, key string, data []byte) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, key), data, 0o644))
	return dir
}

func openSQLite(t *testing.T, path string) *sql.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := database.ConnectSQL(ctx, database.DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+models.TableName).Scan(&n))
	return n
}

// reviewTable builds a cleaned, transformed-shaped table directly.
func reviewTable(ids ...string) *models.Table {
	cols := make([]string, len(models.ReviewFields))
	for i, f := range models.ReviewFields {
		cols[i] = f.Column
	}
	t := models.NewTable(cols...)
	for i, id := range ids {
		t.Append(models.Row{
			models.ColReviewID:       id,
			models.ColCustomerID:     int64(100 + i),
			models.ColProductTitle:   "Title " + id,
			models.ColStarRating:     int64(5),
			models.ColVine:           "N",
			models.ColReviewHeadline: "No headline",
			models.ColReviewBody:     "fine",
		})
	}
	return t
}
