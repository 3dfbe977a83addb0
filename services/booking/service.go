// Package booking coordinates the booking lifecycle: role-gated transitions, checkout and payment reconciliation.
package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"styledecor/database"
	"styledecor/database/repository"
	"styledecor/models"
	"styledecor/services/identity"
	"styledecor/services/payment"
	"styledecor/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Options carries the settings the coordinator needs from configuration.
type Options struct {
	SiteDomain string
	Currency   string
}

// Service is the lifecycle coordinator.
type Service struct {
	repos   *repository.Repositories
	tx      database.Transactor
	gateway payment.Gateway
	opts    Options
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(repos *repository.Repositories, tx database.Transactor, gateway payment.Gateway, opts Options, logger *zap.Logger) *Service {
	return &Service{
		repos:   repos,
		tx:      tx,
		gateway: gateway,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Create books a package for caller, or for any customer when caller is an admin.
func (s *Service) Create(ctx context.Context, caller models.Caller, in models.BookingInput) (*models.Booking, error) {
	in.UserEmail = identity.NormalizeEmail(in.UserEmail)
	in.PackageName = strings.TrimSpace(in.PackageName)
	if in.UserEmail == "" || in.PackageName == "" {
		return nil, utils.NewInvalidInput("userEmail and packageName are required")
	}
	if err := identity.RequireOwnerOrAdmin(caller, in.UserEmail); err != nil {
		return nil, err
	}

	now := s.now()
	b := &models.Booking{
		ID:            uuid.New().String(),
		UserEmail:     in.UserEmail,
		UserName:      in.UserName,
		PackageName:   in.PackageName,
		ServiceName:   in.ServiceName,
		Cost:          in.Cost,
		BookingDate:   in.BookingDate,
		Location:      in.Location,
		Status:        models.StatusRequested,
		PaymentStatus: models.PaymentUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repos.Bookings.Create(ctx, b); err != nil {
		return nil, storeError(err, msgBookingNotFound)
	}
	s.logger.Info("Booking created", zap.String("bookingId", b.ID), zap.String("userEmail", b.UserEmail))
	return b, nil
}

// Get returns a booking to its owner, its assigned decorator or an admin.
func (s *Service) Get(ctx context.Context, caller models.Caller, id string) (*models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.SameEmail(caller.Email, b.DecoratorEmail) {
		if err := identity.RequireDecoratorOrAdmin(caller); err == nil {
			return b, nil
		}
	}
	if err := identity.RequireOwnerOrAdmin(caller, b.UserEmail); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns bookings visible to caller. Without filters a non-admin sees their own bookings;
// a decorator may list the bookings assigned to them.
func (s *Service) List(ctx context.Context, caller models.Caller, filter models.BookingFilter) ([]models.Booking, error) {
	filter.UserEmail = identity.NormalizeEmail(filter.UserEmail)
	filter.DecoratorEmail = identity.NormalizeEmail(filter.DecoratorEmail)
	if filter.Status != "" {
		if _, ok := ParseStatus(string(filter.Status)); !ok {
			return nil, utils.NewInvalidInput("unknown status: " + string(filter.Status))
		}
	}

	switch {
	case caller.IsAdmin():
		if err := identity.RequireAdmin(caller); err != nil {
			return nil, err
		}
	case filter.DecoratorEmail != "" && filter.UserEmail == "":
		if err := identity.RequireDecoratorOrAdmin(caller); err != nil {
			return nil, err
		}
		if !identity.SameEmail(caller.Email, filter.DecoratorEmail) {
			return nil, utils.NewForbidden("access denied")
		}
	default:
		if filter.UserEmail == "" {
			filter.UserEmail = caller.Email
		}
		if err := identity.RequireOwnerOrAdmin(caller, filter.UserEmail); err != nil {
			return nil, err
		}
	}

	bookings, err := s.repos.Bookings.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, msgBookingNotFound)
	}
	return bookings, nil
}

// UpdateFields changes the schedule of a booking. A status of "cancelled" cancels it.
func (s *Service) UpdateFields(ctx context.Context, caller models.Caller, id string, upd models.BookingFieldsUpdate) (*models.BookingMutation, error) {
	if upd.Status != nil {
		if models.BookingStatus(*upd.Status) != models.StatusCancelled {
			return nil, utils.NewInvalidInput("status can only be changed to cancelled here")
		}
		if upd.BookingDate != nil || upd.Location != nil {
			return nil, utils.NewInvalidInput("cancel a booking without changing other fields")
		}
		return s.Cancel(ctx, caller, id)
	}
	if upd.BookingDate == nil && upd.Location == nil {
		return nil, utils.NewInvalidInput("nothing to update")
	}

	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.RequireOwnerOrAdmin(caller, b.UserEmail); err != nil {
		return nil, err
	}
	if err := checkTransition(b, EventUpdate); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if upd.BookingDate != nil {
		fields["bookingDate"] = *upd.BookingDate
	}
	if upd.Location != nil {
		fields["location"] = *upd.Location
	}
	return s.apply(ctx, b, fields)
}

// Assign hands a booking to an approved decorator. Reassignment resets acceptance.
func (s *Service) Assign(ctx context.Context, caller models.Caller, id, decoratorEmail string) (*models.BookingMutation, error) {
	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}
	decoratorEmail = identity.NormalizeEmail(decoratorEmail)
	if decoratorEmail == "" {
		return nil, utils.NewInvalidInput("decoratorEmail is required")
	}

	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(b, EventAssign); err != nil {
		return nil, err
	}

	d, err := s.repos.Decorators.GetByEmail(ctx, decoratorEmail)
	if err != nil {
		return nil, storeError(err, "decorator not found")
	}
	if d.ApplicationStatus != models.ApplicationApproved || d.Status == models.DecoratorStatusBanned {
		return nil, utils.NewConflict("decorator is not approved")
	}

	now := s.now()
	return s.apply(ctx, b, bson.M{
		"decoratorEmail": d.Email,
		"decoratorName":  "",
		"decoratorPhoto": "",
		"status":         models.StatusAssigned,
		"assignedAt":     now,
		"acceptedAt":     nil,
	})
}

// Accept is called by the assigned decorator.
func (s *Service) Accept(ctx context.Context, caller models.Caller, id string) (*models.BookingMutation, error) {
	b, err := s.loadForDecorator(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(b, EventAccept); err != nil {
		return nil, err
	}

	fields := bson.M{
		"status":     acceptTarget(b),
		"acceptedAt": s.now(),
	}
	d, err := s.repos.Decorators.GetByEmail(ctx, b.DecoratorEmail)
	switch {
	case err == nil:
		fields["decoratorName"] = d.Name
		fields["decoratorPhoto"] = d.PhotoURL
	case !errors.Is(err, database.ErrNotFound):
		return nil, storeError(err, "decorator not found")
	}
	return s.apply(ctx, b, fields)
}

// Reject returns the booking to the assignable pool.
func (s *Service) Reject(ctx context.Context, caller models.Caller, id string) (*models.BookingMutation, error) {
	b, err := s.loadForDecorator(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(b, EventReject); err != nil {
		return nil, err
	}
	return s.apply(ctx, b, bson.M{
		"status":         rejectTarget(b),
		"decoratorEmail": "",
		"decoratorName":  "",
		"decoratorPhoto": "",
		"assignedAt":     nil,
		"acceptedAt":     nil,
	})
}

// Cancel is available to the owner or an admin until the booking is finalized.
func (s *Service) Cancel(ctx context.Context, caller models.Caller, id string) (*models.BookingMutation, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := identity.RequireOwnerOrAdmin(caller, b.UserEmail); err != nil {
		return nil, err
	}
	if err := checkTransition(b, EventCancel); err != nil {
		return nil, err
	}
	return s.apply(ctx, b, bson.M{"status": models.StatusCancelled})
}

// AdvanceStatus moves a paid booking forward through the on-site progress statuses.
func (s *Service) AdvanceStatus(ctx context.Context, caller models.Caller, id, status string) (*models.BookingMutation, error) {
	target, ok := ParseStatus(status)
	if !ok {
		return nil, utils.NewInvalidInput("unknown status: " + status)
	}
	b, err := s.loadForDecorator(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := checkAdvance(b, target); err != nil {
		return nil, err
	}
	return s.apply(ctx, b, bson.M{"status": target})
}

func (s *Service) load(ctx context.Context, id string) (*models.Booking, error) {
	if id == "" {
		return nil, utils.NewInvalidInput("booking id is required")
	}
	b, err := s.repos.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgBookingNotFound)
	}
	return b, nil
}

// loadForDecorator applies the decorator-or-admin capability and, for decorators, requires the assignment.
func (s *Service) loadForDecorator(ctx context.Context, caller models.Caller, id string) (*models.Booking, error) {
	if err := identity.RequireDecoratorOrAdmin(caller); err != nil {
		return nil, err
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !identity.SameEmail(caller.Email, b.DecoratorEmail) {
		return nil, utils.NewForbidden("booking is not assigned to you")
	}
	return b, nil
}

// apply writes fields only if the booking still has the status the transition was checked against.
func (s *Service) apply(ctx context.Context, b *models.Booking, fields bson.M) (*models.BookingMutation, error) {
	fields["updatedAt"] = s.now()
	modified, err := s.repos.Bookings.UpdateIfStatus(ctx, b.ID, b.Status, fields)
	if err != nil {
		return nil, storeError(err, msgBookingNotFound)
	}
	updated, err := s.repos.Bookings.GetByID(ctx, b.ID)
	if err != nil {
		return nil, storeError(err, msgBookingNotFound)
	}
	if next, ok := fields["status"]; ok {
		s.logger.Info("Booking status changed",
			zap.String("bookingId", b.ID),
			zap.String("from", string(b.Status)),
			zap.Any("to", next),
		)
	}
	return &models.BookingMutation{
		ModifiedCount:  modified,
		PreviousStatus: b.Status,
		Booking:        updated,
	}, nil
}
