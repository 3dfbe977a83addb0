package decoratorRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoDecoratorRepo) GetByID(ctx context.Context, id string) (*models.Decorator, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoDecoratorRepo) GetByEmail(ctx context.Context, email string) (*models.Decorator, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoDecoratorRepo) findOne(ctx context.Context, filter bson.M) (*models.Decorator, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var d models.Decorator
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, database.MapError(err)
	}
	return &d, nil
}

func (r *MongoDecoratorRepo) List(ctx context.Context, applicationStatus string) ([]models.Decorator, error) {
	filter := bson.M{}
	if applicationStatus != "" {
		filter["applicationStatus"] = applicationStatus
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, filter, opts)
}

func (r *MongoDecoratorRepo) Top(ctx context.Context, limit int64) ([]models.Decorator, error) {
	filter := bson.M{"applicationStatus": models.ApplicationApproved}
	opts := options.Find().
		SetSort(bson.D{{Key: "experience", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, filter, opts)
}

func (r *MongoDecoratorRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Decorator, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve decorators: %w", err)
	}
	defer cursor.Close(ctx)

	decorators := []models.Decorator{}
	if err := cursor.All(ctx, &decorators); err != nil {
		return nil, fmt.Errorf("failed to decode decorators: %w", err)
	}
	return decorators, nil
}

func (r *MongoDecoratorRepo) Count(ctx context.Context, applicationStatus string) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if applicationStatus != "" {
		filter["applicationStatus"] = applicationStatus
	}
	return r.coll.CountDocuments(ctx, filter)
}
