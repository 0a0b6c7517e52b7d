package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding notes.
const CollectionName = "notes"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// NewMongoRepositoryForCollection binds the repository to an explicit
// collection.
func NewMongoRepositoryForCollection(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// EnsureIndexes creates the lookup index and a TTL index that lets MongoDB
// drop expired notes on its own.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "lookup_hash", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Insert(ctx context.Context, n *models.Note) error {
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrDuplicateID
		}
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func activeFilter(now time.Time) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "expires_at", Value: bson.D{{Key: "$exists", Value: false}}}},
		bson.D{{Key: "expires_at", Value: nil}},
		bson.D{{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: now}}}},
	}}}
}

func (r *MongoRepository) FindByLookupHash(ctx context.Context, lookupHash []byte, now time.Time) (*models.Note, error) {
	filter := bson.D{
		{Key: "lookup_hash", Value: lookupHash},
		{Key: "$and", Value: bson.A{activeFilter(now)}},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	var n models.Note
	err := r.coll.FindOne(ctx, filter, opts).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}
	return normalize(&n), nil
}

func (r *MongoRepository) DeleteIfOneTime(ctx context.Context, id string) error {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "one_time", Value: true}}

	err := r.coll.FindOneAndDelete(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

func (r *MongoRepository) MarkViewed(ctx context.Context, id string) (int64, error) {
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "view_count", Value: 1}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n models.Note
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, common.ErrorNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("mark viewed %s: %w", id, err)
	}
	return n.ViewCount, nil
}

func (r *MongoRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lte", Value: now}}}})
	if err != nil {
		return 0, fmt.Errorf("delete expired: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoRepository) ListActive(ctx context.Context, now time.Time) ([]*models.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, activeFilter(now), opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*models.Note
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	for _, n := range result {
		normalize(n)
	}
	return result, nil
}

// normalize puts decoded timestamps in UTC; BSON dates carry millisecond
// precision and decode in local time.
func normalize(n *models.Note) *models.Note {
	n.CreatedAt = n.CreatedAt.UTC()
	if n.ExpiresAt != nil {
		t := n.ExpiresAt.UTC()
		n.ExpiresAt = &t
	}
	return n
}
