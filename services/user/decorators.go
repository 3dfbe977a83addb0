package user

import (
	"context"
	"errors"
	"strings"

	"styledecor/database"
	"styledecor/models"
	"styledecor/services/identity"
	"styledecor/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// SubmitApplication files a pending decorator application for the email.
func (s *Service) SubmitApplication(ctx context.Context, in models.DecoratorApplication) (*models.Decorator, error) {
	in.Email = identity.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Name == "" {
		return nil, utils.NewInvalidInput("email and name are required")
	}
	if in.Experience < 0 {
		return nil, utils.NewInvalidInput("experience cannot be negative")
	}

	d := &models.Decorator{
		ID:                uuid.New().String(),
		Email:             in.Email,
		Name:              in.Name,
		PhotoURL:          in.PhotoURL,
		Phone:             in.Phone,
		District:          in.District,
		Specialties:       in.Specialties,
		Experience:        in.Experience,
		ApplicationStatus: models.ApplicationPending,
		Role:              models.RoleUser,
		Status:            models.DecoratorStatusInactive,
	}
	if err := s.decorators.Create(ctx, d); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.NewConflict("an application already exists for this email")
		}
		return nil, utils.NewInternal("failed to submit application", err)
	}
	s.logger.Info("Decorator application submitted", zap.String("email", d.Email))
	return d, nil
}

// ListDecorators shows approved decorators to everyone; only admins may see other application states.
func (s *Service) ListDecorators(ctx context.Context, caller *models.Caller, status string) ([]models.Decorator, error) {
	switch {
	case caller == nil || identity.RequireAdmin(*caller) != nil:
		status = models.ApplicationApproved
	case status != "" && !validApplicationStatus(status):
		return nil, utils.NewInvalidInput("unknown application status: " + status)
	}
	list, err := s.decorators.List(ctx, status)
	if err != nil {
		return nil, utils.NewInternal("failed to list decorators", err)
	}
	return list, nil
}

func (s *Service) TopDecorators(ctx context.Context) ([]models.Decorator, error) {
	list, err := s.decorators.Top(ctx, topDecoratorsLimit)
	if err != nil {
		return nil, utils.NewInternal("failed to list decorators", err)
	}
	return list, nil
}

// DecoratorRole reports the role stored on the decorator record. No record means a plain user.
func (s *Service) DecoratorRole(ctx context.Context, caller models.Caller, email string) (*models.RoleView, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		email = caller.Email
	}
	if err := identity.RequireOwnerOrAdmin(caller, email); err != nil {
		return nil, err
	}
	d, err := s.decorators.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return &models.RoleView{Email: email, Role: models.RoleUser}, nil
	case err != nil:
		return nil, utils.NewInternal("failed to load decorator", err)
	}
	return &models.RoleView{Email: d.Email, Role: d.Role, Status: d.Status}, nil
}

func (s *Service) PromoteDecoratorToAdmin(ctx context.Context, caller models.Caller, id string) (*models.UpdateResult, error) {
	return s.dualWrite(ctx, caller, id, nil, bson.M{"role": models.RoleAdmin}, bson.M{"role": models.RoleAdmin})
}

// SetApplicationStatus approves or rejects an application and aligns the user's role with the outcome.
// Banned accounts and admins are not subject to application decisions.
func (s *Service) SetApplicationStatus(ctx context.Context, caller models.Caller, id, status string) (*models.UpdateResult, error) {
	switch status {
	case models.ApplicationApproved:
		return s.dualWrite(ctx, caller, id, decidable,
			bson.M{"applicationStatus": status, "role": models.RoleDecorator, "status": models.DecoratorStatusAvailable},
			bson.M{"role": models.RoleDecorator},
		)
	case models.ApplicationRejected:
		return s.dualWrite(ctx, caller, id, decidable,
			bson.M{"applicationStatus": status, "role": models.RoleUser, "status": models.DecoratorStatusInactive},
			bson.M{"role": models.RoleUser},
		)
	}
	return nil, utils.NewInvalidInput("status must be approved or rejected")
}

func decidable(d *models.Decorator, u *models.User) error {
	if d.Status == models.DecoratorStatusBanned || u.Status == models.UserStatusBanned {
		return utils.NewConflict("decorator is banned")
	}
	if d.Role == models.RoleAdmin || u.Role == models.RoleAdmin {
		return utils.NewConflict("decorator is an admin")
	}
	return nil
}

func (s *Service) BanDecorator(ctx context.Context, caller models.Caller, id string) (*models.UpdateResult, error) {
	return s.dualWrite(ctx, caller, id, nil,
		bson.M{"status": models.DecoratorStatusBanned},
		bson.M{"status": models.UserStatusBanned},
	)
}

// dualWrite updates the decorator and then the user joined by email in one transaction.
// Both records are loaded and checked before either is written; a missing user aborts the whole transaction.
func (s *Service) dualWrite(ctx context.Context, caller models.Caller, id string, check func(*models.Decorator, *models.User) error, decoratorFields, userFields bson.M) (*models.UpdateResult, error) {
	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}

	var total int64
	var email string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		total = 0
		d, err := s.decorators.GetByID(ctx, id)
		if err != nil {
			return decoratorStoreError(err)
		}
		email = d.Email
		if identity.SameEmail(d.Email, caller.Email) {
			return utils.NewConflict("admins cannot change their own role or status")
		}

		u, err := s.users.GetByEmail(ctx, d.Email)
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFound("no user record for decorator " + d.Email)
		}
		if err != nil {
			return utils.NewInternal("failed to load user", err)
		}
		if check != nil {
			if err := check(d, u); err != nil {
				return err
			}
		}

		n, err := s.decorators.SetFields(ctx, id, copyFields(decoratorFields))
		if err != nil {
			return decoratorStoreError(err)
		}
		total += n

		m, err := s.users.SetFieldsByEmail(ctx, d.Email, copyFields(userFields))
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFound("no user record for decorator " + d.Email)
		}
		if err != nil {
			return utils.NewInternal("failed to update user", err)
		}
		total += m
		return nil
	})
	if err != nil {
		if utils.KindOf(err) == utils.KindNotFound {
			s.logger.Warn("Decorator dual-write aborted", zap.String("decoratorId", id), zap.Error(err))
		}
		return nil, txError(err)
	}

	s.roles.Invalidate(ctx, email)
	s.logger.Info("Decorator updated",
		zap.String("decoratorId", id),
		zap.Any("fields", decoratorFields),
		zap.String("by", caller.Email),
	)
	return &models.UpdateResult{ModifiedCount: total}, nil
}

// DeleteDecorator removes the decorator record and the user record joined by email, when one exists.
func (s *Service) DeleteDecorator(ctx context.Context, caller models.Caller, id string) (*models.DeleteResult, error) {
	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}

	var total int64
	var email string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		total = 0
		d, err := s.decorators.GetByID(ctx, id)
		if err != nil {
			return decoratorStoreError(err)
		}
		email = d.Email
		if identity.SameEmail(d.Email, caller.Email) {
			return utils.NewConflict("admins cannot delete themselves")
		}

		n, err := s.decorators.Delete(ctx, id)
		if err != nil {
			return decoratorStoreError(err)
		}
		total += n

		m, err := s.users.DeleteByEmail(ctx, d.Email)
		switch {
		case errors.Is(err, database.ErrNotFound):
		case err != nil:
			return utils.NewInternal("failed to delete user", err)
		}
		total += m
		return nil
	})
	if err != nil {
		return nil, txError(err)
	}

	s.roles.Invalidate(ctx, email)
	s.logger.Info("Decorator deleted", zap.String("decoratorId", id), zap.String("by", caller.Email))
	return &models.DeleteResult{DeletedCount: total}, nil
}

// SetAvailability lets an approved decorator toggle between available and inactive.
func (s *Service) SetAvailability(ctx context.Context, caller models.Caller, email, status string) (*models.UpdateResult, error) {
	if err := identity.RequireDecoratorOrAdmin(caller); err != nil {
		return nil, err
	}
	email = identity.NormalizeEmail(email)
	if !caller.IsAdmin() && !identity.SameEmail(caller.Email, email) {
		return nil, utils.NewForbidden("access denied")
	}
	if status != models.DecoratorStatusAvailable && status != models.DecoratorStatusInactive {
		return nil, utils.NewInvalidInput("status must be available or inactive")
	}

	d, err := s.decorators.GetByEmail(ctx, email)
	if err != nil {
		return nil, decoratorStoreError(err)
	}
	if d.Status == models.DecoratorStatusBanned {
		return nil, utils.NewConflict("decorator is banned")
	}
	if d.ApplicationStatus != models.ApplicationApproved {
		return nil, utils.NewConflict("decorator is not approved")
	}

	n, err := s.decorators.SetFieldsByEmail(ctx, d.Email, bson.M{"status": status})
	if err != nil {
		return nil, decoratorStoreError(err)
	}
	s.roles.Invalidate(ctx, d.Email)
	return &models.UpdateResult{ModifiedCount: n}, nil
}

func validApplicationStatus(status string) bool {
	switch status {
	case models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected:
		return true
	}
	return false
}

func decoratorStoreError(err error) error {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, database.ErrNotFound):
		return utils.NewNotFound("decorator not found")
	}
	return utils.NewInternal("decorator store failure", err)
}
