package testutil

import (
	"context"
	"sort"
	"time"

	"styledecor/database"
	"styledecor/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingStore implements bookingRepo.BookingRepository.
type BookingStore struct{ s *Store }

func (s *Store) Bookings() *BookingStore { return &BookingStore{s: s} }

// Seed inserts b directly, assigning an ID when missing.
func (b *BookingStore) Seed(booking models.Booking) models.Booking {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if booking.ID == "" {
		booking.ID = newID()
	}
	b.s.bookings[booking.ID] = booking
	return booking
}

func (b *BookingStore) Create(_ context.Context, booking *models.Booking) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if err := b.s.takeFailure("bookings.Create"); err != nil {
		return err
	}
	b.s.bookings[booking.ID] = *booking
	return nil
}

func (b *BookingStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	booking, ok := b.s.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &booking, nil
}

func matches(booking models.Booking, f models.BookingFilter) bool {
	return (f.UserEmail == "" || booking.UserEmail == f.UserEmail) &&
		(f.DecoratorEmail == "" || booking.DecoratorEmail == f.DecoratorEmail) &&
		(f.Status == "" || booking.Status == f.Status) &&
		(f.PaymentStatus == "" || booking.PaymentStatus == f.PaymentStatus)
}

func (b *BookingStore) List(_ context.Context, f models.BookingFilter) ([]models.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	out := []models.Booking{}
	for _, booking := range b.s.bookings {
		if matches(booking, f) {
			out = append(out, booking)
		}
	}
	byCreatedDesc(out, func(x models.Booking) time.Time { return x.CreatedAt })
	return out, nil
}

func (b *BookingStore) UpdateIfStatus(_ context.Context, id string, expected models.BookingStatus, fields bson.M) (int64, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if err := b.s.takeFailure("bookings.UpdateIfStatus"); err != nil {
		return 0, err
	}
	booking, ok := b.s.bookings[id]
	if !ok {
		return 0, database.ErrNotFound
	}
	if booking.Status != expected {
		return 0, database.ErrConflict
	}
	changed, err := applySet(&booking, fields)
	if err != nil {
		return 0, err
	}
	b.s.bookings[id] = booking
	return modifiedCount(changed), nil
}

func (b *BookingStore) Count(ctx context.Context, f models.BookingFilter) (int64, error) {
	list, _ := b.List(ctx, f)
	return int64(len(list)), nil
}

func (b *BookingStore) CountByStatus(ctx context.Context, f models.BookingFilter) ([]models.StatusCount, error) {
	list, _ := b.List(ctx, f)
	counts := map[models.BookingStatus]int64{}
	for _, booking := range list {
		counts[booking.Status]++
	}
	out := []models.StatusCount{}
	for status, n := range counts {
		out = append(out, models.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (b *BookingStore) SumCost(ctx context.Context, f models.BookingFilter) (float64, error) {
	list, _ := b.List(ctx, f)
	var total float64
	for _, booking := range list {
		total += booking.Cost
	}
	return total, nil
}

func (b *BookingStore) DemandByPackage(ctx context.Context, limit int64) ([]models.PackageDemand, error) {
	list, _ := b.List(ctx, models.BookingFilter{})
	counts := map[string]int64{}
	for _, booking := range list {
		if booking.Status != models.StatusCancelled {
			counts[booking.PackageName]++
		}
	}
	out := []models.PackageDemand{}
	for name, n := range counts {
		out = append(out, models.PackageDemand{PackageName: name, Bookings: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bookings != out[j].Bookings {
			return out[i].Bookings > out[j].Bookings
		}
		return out[i].PackageName < out[j].PackageName
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
