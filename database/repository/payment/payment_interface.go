package paymentRepo

import (
	"context"

	"styledecor/models"
)

// PaymentRepository records confirmed gateway payments.
type PaymentRepository interface {
	// Insert stores p. A second payment with the same transactionId yields database.ErrDuplicate;
	// the unique index, not a prior lookup, is what enforces this.
	Insert(ctx context.Context, p *models.Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	// ListByEmail returns a customer's payments, newest first; empty email lists all.
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
	// Summary totals payments for a customer, or for everyone when email is empty.
	Summary(ctx context.Context, email string) (models.RevenueSummary, error)
	// Monthly returns revenue grouped by calendar month (UTC), oldest first.
	Monthly(ctx context.Context) ([]models.MonthlyRevenue, error)
}
