package decoratorRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new decorator document.
func (r *MongoDecoratorRepo) Create(ctx context.Context, d *models.Decorator) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("failed to create decorator %s: %w", d.Email, database.MapError(err))
	}
	return nil
}

func (r *MongoDecoratorRepo) SetFields(ctx context.Context, id string, fields bson.M) (int64, error) {
	return r.setWhere(ctx, bson.M{"id": id}, fields)
}

func (r *MongoDecoratorRepo) SetFieldsByEmail(ctx context.Context, email string, fields bson.M) (int64, error) {
	return r.setWhere(ctx, bson.M{"email": email}, fields)
}

func (r *MongoDecoratorRepo) setWhere(ctx context.Context, filter bson.M, fields bson.M) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("failed to update decorator %v: %w", filter, err)
	}
	if result.MatchedCount == 0 {
		return 0, database.ErrNotFound
	}
	return result.ModifiedCount, nil
}

// Delete removes a decorator document by its ID.
func (r *MongoDecoratorRepo) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete decorator with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return 0, database.ErrNotFound
	}
	return result.DeletedCount, nil
}
