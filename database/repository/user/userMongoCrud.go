// File: database/repository/user/userMongoCrud.go
package userRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIfAbsent upserts on email with $setOnInsert, so concurrent registrations cannot create duplicates.
func (r *MongoUserRepo) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	filter := bson.M{"email": user.Email}
	update := bson.M{"$setOnInsert": user}
	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to register user %s: %w", user.Email, database.MapError(err))
	}
	return res.UpsertedCount == 1, nil
}

// SetFields modifies an existing user document.
func (r *MongoUserRepo) SetFields(ctx context.Context, id string, fields bson.M) (int64, error) {
	return r.setWhere(ctx, bson.M{"id": id}, fields)
}

// SetFieldsByEmail modifies the user document joined by email.
func (r *MongoUserRepo) SetFieldsByEmail(ctx context.Context, email string, fields bson.M) (int64, error) {
	return r.setWhere(ctx, bson.M{"email": email}, fields)
}

func (r *MongoUserRepo) setWhere(ctx context.Context, filter bson.M, fields bson.M) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("failed to update user %v: %w", filter, err)
	}
	if result.MatchedCount == 0 {
		return 0, database.ErrNotFound
	}
	return result.ModifiedCount, nil
}

// Delete removes a user document by its ID.
func (r *MongoUserRepo) Delete(ctx context.Context, id string) (int64, error) {
	return r.deleteWhere(ctx, bson.M{"id": id})
}

// DeleteByEmail removes a user document by its email.
func (r *MongoUserRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	return r.deleteWhere(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) deleteWhere(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user %v: %w", filter, err)
	}
	if result.DeletedCount == 0 {
		return 0, database.ErrNotFound
	}
	return result.DeletedCount, nil
}
