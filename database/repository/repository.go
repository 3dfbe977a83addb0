package repository

import (
	"context"

	bookingRepo "styledecor/database/repository/booking"
	catalogRepo "styledecor/database/repository/catalog"
	decoratorRepo "styledecor/database/repository/decorator"
	paymentRepo "styledecor/database/repository/payment"
	userRepo "styledecor/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces.
type (
	UserRepository      = userRepo.UserRepository
	DecoratorRepository = decoratorRepo.DecoratorRepository
	BookingRepository   = bookingRepo.BookingRepository
	PaymentRepository   = paymentRepo.PaymentRepository
	CatalogRepository   = catalogRepo.CatalogRepository
)

// Repositories bundles every store built over one database handle.
type Repositories struct {
	Users      UserRepository
	Decorators DecoratorRepository
	Bookings   BookingRepository
	Payments   PaymentRepository
	Catalog    CatalogRepository
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// NewMongoRepositories builds all Mongo repositories and creates their indexes.
// Index creation failures are fatal: uniqueness constraints back the payment and identity invariants.
func NewMongoRepositories(ctx context.Context, db *mongo.Database) (*Repositories, error) {
	users := userRepo.NewMongoUserRepo(db)
	decorators := decoratorRepo.NewMongoDecoratorRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	payments := paymentRepo.NewMongoPaymentRepo(db)
	catalog := catalogRepo.NewMongoCatalogRepo(db)

	for _, ix := range []indexer{users, decorators, bookings, payments, catalog} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
	}

	return &Repositories{
		Users:      users,
		Decorators: decorators,
		Bookings:   bookings,
		Payments:   payments,
		Catalog:    catalog,
	}, nil
}
