package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&p); err != nil {
		return nil, database.MapError(err)
	}
	return &p, nil
}

func (r *MongoPaymentRepo) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if email != "" {
		filter["customerEmail"] = email
	}
	opts := options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

func (r *MongoPaymentRepo) Summary(ctx context.Context, email string) (models.RevenueSummary, error) {
	match := bson.M{}
	if email != "" {
		match["customerEmail"] = email
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
			{Key: "paymentCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	var rows []models.RevenueSummary
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return models.RevenueSummary{}, err
	}
	if len(rows) == 0 {
		return models.RevenueSummary{}, nil
	}
	return rows[0], nil
}

func (r *MongoPaymentRepo) Monthly(ctx context.Context) ([]models.MonthlyRevenue, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m"},
				{Key: "date", Value: "$paidAt"},
			}}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
			{Key: "payments", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	series := []models.MonthlyRevenue{}
	if err := r.aggregate(ctx, pipeline, &series); err != nil {
		return nil, err
	}
	return series, nil
}

func (r *MongoPaymentRepo) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("payment aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode payment aggregation: %w", err)
	}
	return nil
}
