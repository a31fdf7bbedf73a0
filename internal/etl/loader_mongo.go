package etl

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BartekS5/review-etl/pkg/database"
	"github.com/BartekS5/review-etl/pkg/logger"
	"github.com/BartekS5/review-etl/pkg/models"
	"github.com/BartekS5/review-etl/pkg/utils"
)

// MongoLoader drops and reloads the reviews collection, keyed by review_id.
//
// Without a replica set MongoDB has no multi-document transactions, so the
// unchanged-on-collision guarantee comes only from validating review_id
// uniqueness before the collection is touched.
type MongoLoader struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration

	validator *Validator
}

func NewMongoLoader(uri, database string, timeout time.Duration) *MongoLoader {
	return &MongoLoader{
		URI:        uri,
		Database:   database,
		Collection: models.TableName,
		Timeout:    timeout,
		validator:  NewValidator("load"),
	}
}

func (m *MongoLoader) Load(ctx context.Context, data *models.Table) (int, error) {
	if err := m.validator.ValidateUniqueIDs(data); err != nil {
		return 0, err
	}

	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	client, err := database.ConnectMongo(ctx, m.URI)
	if err != nil {
		return 0, &StorageError{Op: "open", Err: err}
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	coll := client.Database(m.Database).Collection(m.Collection)
	if err := coll.Drop(ctx); err != nil {
		return 0, &StorageError{Op: "drop collection", Err: err}
	}

	docs := make([]interface{}, 0, data.Len())
	var coerced int
	for _, row := range data.Rows {
		doc, n := toDocument(row)
		coerced += n
		docs = append(docs, doc)
	}
	if coerced > 0 {
		logger.Warnf("%d values did not match their field type and were stored as null", coerced)
	}

	if len(docs) > 0 {
		res, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return 0, &ConstraintError{Err: err}
			}
			return 0, &StorageError{Op: "insert", Err: err}
		}
		logger.Infof("Mongo InsertMany: %d documents", len(res.InsertedIDs))
	}

	indexes := make([]mongo.IndexModel, len(models.ReviewIndexes))
	for i, idx := range models.ReviewIndexes {
		indexes[i] = mongo.IndexModel{
			Keys:    bson.D{{Key: idx.Column, Value: 1}},
			Options: options.Index().SetName(idx.Name),
		}
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return 0, &StorageError{Op: "create indexes", Err: err}
	}

	logger.Infof("Data successfully loaded into %s.%s", m.Database, m.Collection)
	return len(docs), nil
}

// toDocument maps a row to BSON in schema order with review_id as _id. It
// also returns how many values were nulled because they did not convert.
func toDocument(row models.Row) (bson.D, int) {
	doc := make(bson.D, 0, len(models.ReviewFields)+1)
	var coerced int
	for _, f := range models.ReviewFields {
		v, err := utils.ConvertToMongoType(row[f.Column], f)
		if err != nil {
			coerced++
			v = nil
		}
		if f.PrimaryKey {
			doc = append(doc, bson.E{Key: "_id", Value: v})
		}
		doc = append(doc, bson.E{Key: f.Column, Value: v})
	}
	return doc, coerced
}
