// Package stats computes revenue and role-specific dashboard summaries.
package stats

import (
	"context"

	"styledecor/database/repository"
	"styledecor/models"
	"styledecor/services/identity"
	"styledecor/utils"

	"go.uber.org/zap"
)

const demandLimit = 10

type Service struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewService(repos *repository.Repositories, logger *zap.Logger) *Service {
	return &Service{repos: repos, logger: logger}
}

func (s *Service) RevenueStats(ctx context.Context, caller models.Caller) (*models.RevenueStats, error) {
	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}
	summary, err := s.repos.Payments.Summary(ctx, "")
	if err != nil {
		return nil, utils.NewInternal("failed to aggregate revenue", err)
	}
	monthly, err := s.repos.Payments.Monthly(ctx)
	if err != nil {
		return nil, utils.NewInternal("failed to aggregate monthly revenue", err)
	}
	demand, err := s.repos.Bookings.DemandByPackage(ctx, demandLimit)
	if err != nil {
		return nil, utils.NewInternal("failed to aggregate package demand", err)
	}
	return &models.RevenueStats{RevenueSummary: summary, Monthly: monthly, Demand: demand}, nil
}

// DashboardStats summarizes the platform for admins, assignments for decorators and own bookings for customers.
func (s *Service) DashboardStats(ctx context.Context, caller models.Caller) (*models.DashboardStats, error) {
	if err := identity.RequireActive(caller); err != nil {
		return nil, err
	}

	var (
		out *models.DashboardStats
		err error
	)
	switch {
	case caller.IsAdmin():
		out, err = s.adminDashboard(ctx)
	case caller.IsDecorator():
		out, err = s.decoratorDashboard(ctx, caller.Email)
	default:
		out, err = s.userDashboard(ctx, caller.Email)
	}
	if err != nil {
		return nil, utils.NewInternal("failed to compute dashboard", err)
	}
	out.Role = caller.Role
	return out, nil
}

// bookingCounts fills the booking counters shared by every dashboard.
func (s *Service) bookingCounts(ctx context.Context, base models.BookingFilter, out *models.DashboardStats) error {
	var err error
	if out.TotalBookings, err = s.repos.Bookings.Count(ctx, base); err != nil {
		return err
	}
	paid := base
	paid.PaymentStatus = models.PaymentPaid
	if out.PaidBookings, err = s.repos.Bookings.Count(ctx, paid); err != nil {
		return err
	}
	completed := base
	completed.Status = models.StatusCompleted
	if out.CompletedBookings, err = s.repos.Bookings.Count(ctx, completed); err != nil {
		return err
	}
	out.ByStatus, err = s.repos.Bookings.CountByStatus(ctx, base)
	return err
}

func (s *Service) adminDashboard(ctx context.Context) (*models.DashboardStats, error) {
	out := &models.DashboardStats{}
	var err error
	if out.TotalUsers, err = s.repos.Users.Count(ctx); err != nil {
		return nil, err
	}
	if out.TotalDecorators, err = s.repos.Decorators.Count(ctx, models.ApplicationApproved); err != nil {
		return nil, err
	}
	if out.PendingDecorators, err = s.repos.Decorators.Count(ctx, models.ApplicationPending); err != nil {
		return nil, err
	}
	if err := s.bookingCounts(ctx, models.BookingFilter{}, out); err != nil {
		return nil, err
	}
	summary, err := s.repos.Payments.Summary(ctx, "")
	if err != nil {
		return nil, err
	}
	out.Revenue = summary.TotalRevenue
	return out, nil
}

func (s *Service) decoratorDashboard(ctx context.Context, email string) (*models.DashboardStats, error) {
	out := &models.DashboardStats{}
	base := models.BookingFilter{DecoratorEmail: email}
	if err := s.bookingCounts(ctx, base, out); err != nil {
		return nil, err
	}
	earned := base
	earned.Status = models.StatusCompleted
	earned.PaymentStatus = models.PaymentPaid
	var err error
	if out.Earnings, err = s.repos.Bookings.SumCost(ctx, earned); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) userDashboard(ctx context.Context, email string) (*models.DashboardStats, error) {
	out := &models.DashboardStats{}
	if err := s.bookingCounts(ctx, models.BookingFilter{UserEmail: email}, out); err != nil {
		return nil, err
	}
	summary, err := s.repos.Payments.Summary(ctx, email)
	if err != nil {
		return nil, err
	}
	out.TotalSpent = summary.TotalRevenue
	return out, nil
}
