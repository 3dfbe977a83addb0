// Package user administers user and decorator identities. Role and status live on both records,
// so every change that touches one is mirrored onto the other inside a single transaction.
package user

import (
	"context"
	"errors"
	"time"

	"styledecor/database"
	"styledecor/database/repository"
	"styledecor/models"
	"styledecor/services/identity"
	"styledecor/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const topDecoratorsLimit = 3

// RoleInvalidator drops cached roles after a write.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, email string)
}

type Service struct {
	users      repository.UserRepository
	decorators repository.DecoratorRepository
	tx         database.Transactor
	roles      RoleInvalidator
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(repos *repository.Repositories, tx database.Transactor, roles RoleInvalidator, logger *zap.Logger) *Service {
	return &Service{
		users:      repos.Users,
		decorators: repos.Decorators,
		tx:         tx,
		roles:      roles,
		logger:     logger,
		now:        time.Now,
	}
}

// RegisterUser creates the user on first call and is a no-op afterwards.
func (s *Service) RegisterUser(ctx context.Context, in models.UserRegistration) (*models.RegistrationResult, error) {
	email := identity.NormalizeEmail(in.Email)
	if email == "" {
		return nil, utils.NewInvalidInput("email is required")
	}
	u := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      in.Name,
		PhotoURL:  in.PhotoURL,
		Role:      models.RoleUser,
		Status:    models.UserStatusActive,
		CreatedAt: s.now(),
	}
	created, err := s.users.CreateIfAbsent(ctx, u)
	if err != nil {
		return nil, utils.NewInternal("failed to register user", err)
	}
	if !created {
		return &models.RegistrationResult{Message: "user already exists"}, nil
	}
	s.logger.Info("User registered", zap.String("email", email))
	return &models.RegistrationResult{InsertedID: u.ID, Created: true}, nil
}

func (s *Service) ListUsers(ctx context.Context, caller models.Caller) ([]models.User, error) {
	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, utils.NewInternal("failed to list users", err)
	}
	return users, nil
}

// UserRole reports the role stored on the user record. An unregistered email is an active user.
func (s *Service) UserRole(ctx context.Context, caller models.Caller, email string) (*models.RoleView, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		email = caller.Email
	}
	if err := identity.RequireOwnerOrAdmin(caller, email); err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return &models.RoleView{Email: email, Role: models.RoleUser, Status: models.UserStatusActive}, nil
	case err != nil:
		return nil, utils.NewInternal("failed to load user", err)
	}
	return &models.RoleView{Email: u.Email, Role: u.Role, Status: u.Status}, nil
}

func (s *Service) PromoteUserToAdmin(ctx context.Context, caller models.Caller, id string) (*models.UpdateResult, error) {
	return s.updateUser(ctx, caller, id, bson.M{"role": models.RoleAdmin}, bson.M{"role": models.RoleAdmin})
}

func (s *Service) PromoteUserToDecorator(ctx context.Context, caller models.Caller, id string) (*models.UpdateResult, error) {
	return s.updateUser(ctx, caller, id, bson.M{"role": models.RoleDecorator}, bson.M{"role": models.RoleDecorator})
}

func (s *Service) BanUser(ctx context.Context, caller models.Caller, id string) (*models.UpdateResult, error) {
	return s.updateUser(ctx, caller, id,
		bson.M{"status": models.UserStatusBanned},
		bson.M{"status": models.DecoratorStatusBanned},
	)
}

// updateUser writes the user record and mirrors the change onto a decorator record with the same email, if any.
func (s *Service) updateUser(ctx context.Context, caller models.Caller, id string, userFields, decoratorFields bson.M) (*models.UpdateResult, error) {
	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}

	var total int64
	var email string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		total = 0
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			return userStoreError(err)
		}
		email = u.Email
		if identity.SameEmail(u.Email, caller.Email) {
			return utils.NewConflict("admins cannot change their own role or status")
		}

		n, err := s.users.SetFields(ctx, id, copyFields(userFields))
		if err != nil {
			return userStoreError(err)
		}
		total += n

		m, err := s.decorators.SetFieldsByEmail(ctx, u.Email, copyFields(decoratorFields))
		switch {
		case errors.Is(err, database.ErrNotFound):
		case err != nil:
			return utils.NewInternal("failed to update decorator", err)
		}
		total += m
		return nil
	})
	if err != nil {
		return nil, txError(err)
	}

	s.roles.Invalidate(ctx, email)
	s.logger.Info("User updated", zap.String("userId", id), zap.Any("fields", userFields), zap.String("by", caller.Email))
	return &models.UpdateResult{ModifiedCount: total}, nil
}

// DeleteUser removes the user and any decorator record joined by the same email.
func (s *Service) DeleteUser(ctx context.Context, caller models.Caller, id string) (*models.DeleteResult, error) {
	if err := identity.RequireAdmin(caller); err != nil {
		return nil, err
	}

	var total int64
	var email string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		total = 0
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			return userStoreError(err)
		}
		email = u.Email
		if identity.SameEmail(u.Email, caller.Email) {
			return utils.NewConflict("admins cannot delete themselves")
		}
		n, err := s.users.Delete(ctx, id)
		if err != nil {
			return userStoreError(err)
		}
		total += n

		d, err := s.decorators.GetByEmail(ctx, u.Email)
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil
		case err != nil:
			return utils.NewInternal("failed to load decorator", err)
		}
		m, err := s.decorators.Delete(ctx, d.ID)
		if err != nil {
			return utils.NewInternal("failed to delete decorator", err)
		}
		total += m
		return nil
	})
	if err != nil {
		return nil, txError(err)
	}

	s.roles.Invalidate(ctx, email)
	s.logger.Info("User deleted", zap.String("userId", id), zap.String("by", caller.Email))
	return &models.DeleteResult{DeletedCount: total}, nil
}

// copyFields gives each attempt of a retried transaction its own update document.
func copyFields(fields bson.M) bson.M {
	out := make(bson.M, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func userStoreError(err error) error {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, database.ErrNotFound):
		return utils.NewNotFound("user not found")
	}
	return utils.NewInternal("user store failure", err)
}

// txError passes classified errors through and wraps transaction infrastructure failures.
func txError(err error) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return utils.NewInternal("transaction failed", err)
}
