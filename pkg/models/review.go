package models

// TableName is the destination relation (or collection) every run replaces.
const TableName = "amazon_reviews"

// Review record columns.
const (
	ColReviewDate       = "review_date"
	ColMarketplace      = "marketplace"
	ColCustomerID       = "customer_id"
	ColReviewID         = "review_id"
	ColProductID        = "product_id"
	ColProductParent    = "product_parent"
	ColProductTitle     = "product_title"
	ColProductCategory  = "product_category"
	ColStarRating       = "star_rating"
	ColHelpfulVotes     = "helpful_votes"
	ColTotalVotes       = "total_votes"
	ColVine             = "vine"
	ColVerifiedPurchase = "verified_purchase"
	ColReviewHeadline   = "review_headline"
	ColReviewBody       = "review_body"
	ColReviewMonth      = "review_month"
)

// FieldType is the semantic type of a review column.
type FieldType string

const (
	TypeDate   FieldType = "date"
	TypeString FieldType = "string"
	TypeInt    FieldType = "int"
	TypeFloat  FieldType = "float"
	TypeBool   FieldType = "bool"
)

// FieldConfig describes one column of the destination relation.
type FieldConfig struct {
	Column     string
	Type       FieldType
	PrimaryKey bool
}

// IndexConfig describes a secondary index on the destination relation.
type IndexConfig struct {
	Name   string
	Column string
}

// ReviewFields is the fixed destination schema, in column order.
var ReviewFields = []FieldConfig{
	{Column: ColReviewDate, Type: TypeDate},
	{Column: ColMarketplace, Type: TypeString},
	{Column: ColCustomerID, Type: TypeInt},
	{Column: ColReviewID, Type: TypeString, PrimaryKey: true},
	{Column: ColProductID, Type: TypeString},
	{Column: ColProductParent, Type: TypeFloat},
	{Column: ColProductTitle, Type: TypeString},
	{Column: ColProductCategory, Type: TypeString},
	{Column: ColStarRating, Type: TypeInt},
	{Column: ColHelpfulVotes, Type: TypeInt},
	{Column: ColTotalVotes, Type: TypeInt},
	{Column: ColVine, Type: TypeBool},
	{Column: ColVerifiedPurchase, Type: TypeBool},
	{Column: ColReviewHeadline, Type: TypeString},
	{Column: ColReviewBody, Type: TypeString},
	{Column: ColReviewMonth, Type: TypeString},
}

// ReviewIndexes are created (if absent) after every load.
var ReviewIndexes = []IndexConfig{
	{Name: "idx_product_title", Column: ColProductTitle},
	{Name: "idx_customer_id", Column: ColCustomerID},
	{Name: "idx_review_date", Column: ColReviewDate},
}

// Field returns the schema entry for column.
func Field(column string) (FieldConfig, bool) {
	for _, f := range ReviewFields {
		if f.Column == column {
			return f, true
		}
	}
	return FieldConfig{}, false
}
