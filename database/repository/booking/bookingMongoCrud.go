package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create booking: %w", database.MapError(err))
	}
	return nil
}

func (r *MongoBookingRepo) UpdateIfStatus(ctx context.Context, id string, expected models.BookingStatus, fields bson.M) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": expected}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return 0, fmt.Errorf("failed to check booking %s: %w", id, err)
		}
		if n == 0 {
			return 0, database.ErrNotFound
		}
		return 0, database.ErrConflict
	}
	return result.ModifiedCount, nil
}
