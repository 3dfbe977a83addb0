package decoratorRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDecoratorRepo implements DecoratorRepository using MongoDB.
type MongoDecoratorRepo struct {
	coll *mongo.Collection
}

func NewMongoDecoratorRepo(db *mongo.Database) *MongoDecoratorRepo {
	return &MongoDecoratorRepo{coll: db.Collection("decorators")}
}

// EnsureIndexes creates the unique join key and the listing indexes.
func (r *MongoDecoratorRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "applicationStatus", Value: 1}, {Key: "experience", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create decorator indexes: %w", err)
	}
	return nil
}
