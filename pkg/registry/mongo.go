package registry

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glyphforge/glyphforge/pkg/errors"
)

// MongoRegistry implements the registry on MongoDB. The capsule ID is the
// document _id, so duplicate appends surface as duplicate-key errors and
// become skips.
type MongoRegistry struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures a MongoDB-backed registry.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoRegistry connects to MongoDB and verifies the connection.
func NewMongoRegistry(ctx context.Context, cfg MongoConfig) (*MongoRegistry, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryFailed, err, "connect to mongo at %s", cfg.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeRegistryFailed, err, "ping mongo at %s", cfg.URI)
	}

	return &MongoRegistry{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Append implements Registry.
func (r *MongoRegistry) Append(ctx context.Context, rec Record) (bool, error) {
	_, err := r.coll.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeRegistryFailed, err, "append record")
	}
	return true, nil
}

// Has implements Registry.
func (r *MongoRegistry) Has(ctx context.Context, capsuleID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": capsuleID})
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeRegistryFailed, err, "check record")
	}
	return n > 0, nil
}

// List implements Registry.
func (r *MongoRegistry) List(ctx context.Context) ([]Record, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryFailed, err, "list records")
	}
	defer cursor.Close(ctx)

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryFailed, err, "decode records")
	}
	return records, nil
}

// Close implements Registry.
func (r *MongoRegistry) Close() error {
	return r.client.Disconnect(context.Background())
}

// Ensure MongoRegistry implements Registry.
var _ Registry = (*MongoRegistry)(nil)
