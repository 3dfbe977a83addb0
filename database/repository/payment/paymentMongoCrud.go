package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"styledecor/database"
	"styledecor/models"

	"github.com/google/uuid"
)

func (r *MongoPaymentRepo) Insert(ctx context.Context, p *models.Payment) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to record payment %s: %w", p.TransactionID, database.MapError(err))
	}
	return nil
}
