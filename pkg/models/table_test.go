package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableCloneIsIndependent(t *testing.T) {
	src := NewTable(ColReviewID, ColReviewBody)
	src.Append(Row{ColReviewID: "R1", ColReviewBody: "hello"})

	dup := src.Clone()
	dup.Rows[0][ColReviewBody] = "changed"
	dup.AddColumn(ColReviewMonth)

	assert.Equal(t, "hello", src.Rows[0][ColReviewBody])
	assert.False(t, src.HasColumn(ColReviewMonth))
	assert.NotContains(t, src.Rows[0], ColReviewMonth)
	assert.Contains(t, dup.Rows[0], ColReviewMonth)
}

func TestTableAppendFillsDeclaredColumns(t *testing.T) {
	tbl := NewTable(ColReviewID, ColReviewHeadline)
	tbl.Append(Row{ColReviewID: "R1", "unexpected": 1})

	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, Row{ColReviewID: "R1", ColReviewHeadline: nil}, tbl.Rows[0])
	assert.Equal(t, []interface{}{"R1"}, tbl.Column(ColReviewID))
}

func TestNilTableLen(t *testing.T) {
	var tbl *Table
	assert.Zero(t, tbl.Len())
}

func TestReviewSchema(t *testing.T) {
	f, ok := Field(ColReviewID)
	assert.True(t, ok)
	assert.True(t, f.PrimaryKey)

	var keys int
	for _, f := range ReviewFields {
		if f.PrimaryKey {
			keys++
		}
	}
	assert.Equal(t, 1, keys)
	assert.Len(t, ReviewFields, 16)

	for _, idx := range ReviewIndexes {
		_, ok := Field(idx.Column)
		assert.True(t, ok, idx.Column)
	}
	_, ok = Field("nope")
	assert.False(t, ok)
}
