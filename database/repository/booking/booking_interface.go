package bookingRepo

import (
	"context"

	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository owns booking records and their status field.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// List returns bookings matching filter, newest first.
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	// UpdateIfStatus applies fields only while the stored status still equals expected.
	// It returns database.ErrNotFound for an unknown id and database.ErrConflict when the status moved.
	UpdateIfStatus(ctx context.Context, id string, expected models.BookingStatus, fields bson.M) (modified int64, err error)
	Count(ctx context.Context, filter models.BookingFilter) (int64, error)
	CountByStatus(ctx context.Context, filter models.BookingFilter) ([]models.StatusCount, error)
	// SumCost totals the cost of bookings matching filter.
	SumCost(ctx context.Context, filter models.BookingFilter) (float64, error)
	// DemandByPackage returns the most booked packages, excluding cancelled bookings.
	DemandByPackage(ctx context.Context, limit int64) ([]models.PackageDemand, error)
}
