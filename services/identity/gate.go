// Package identity authenticates callers and answers the capability checks every mutating operation applies.
package identity

import (
	"context"
	"errors"
	"strings"

	"styledecor/database"
	decoratorRepo "styledecor/database/repository/decorator"
	userRepo "styledecor/database/repository/user"
	"styledecor/models"
	"styledecor/utils"

	"go.uber.org/zap"
)

// Gate resolves a bearer credential into a Caller.
type Gate struct {
	verifier   TokenVerifier
	users      userRepo.UserRepository
	decorators decoratorRepo.DecoratorRepository
	cache      RoleCache
	logger     *zap.Logger
}

// NewGate builds a Gate. cache may be nil.
func NewGate(verifier TokenVerifier, users userRepo.UserRepository, decorators decoratorRepo.DecoratorRepository, cache RoleCache, logger *zap.Logger) *Gate {
	return &Gate{
		verifier:   verifier,
		users:      users,
		decorators: decorators,
		cache:      cache,
		logger:     logger,
	}
}

// Authenticate verifies an Authorization header value of the form "Bearer <token>".
// A missing header and a rejected token produce the same error.
func (g *Gate) Authenticate(ctx context.Context, header string) (models.Caller, error) {
	token, ok := bearerToken(header)
	if !ok {
		return models.Caller{}, utils.NewUnauthorized(invalidCredentialMsg)
	}
	email, err := g.verifier.VerifyEmail(ctx, token)
	if err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			return models.Caller{}, err
		}
		return models.Caller{}, utils.NewUpstream("identity provider unavailable", err)
	}
	return g.ResolveRole(ctx, email)
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// ResolveRole looks the email up in users first, then decorators.
// An email with no record is an ordinary active user.
func (g *Gate) ResolveRole(ctx context.Context, email string) (models.Caller, error) {
	email = NormalizeEmail(email)
	if g.cache != nil {
		if caller, ok := g.cache.Get(ctx, email); ok {
			return caller, nil
		}
	}

	caller := models.Caller{Email: email, Role: models.RoleUser, Status: models.UserStatusActive}

	u, err := g.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		caller.Role, caller.Status = u.Role, u.Status
	case errors.Is(err, database.ErrNotFound):
		d, derr := g.decorators.GetByEmail(ctx, email)
		switch {
		case derr == nil:
			caller.Role, caller.Status = d.Role, d.Status
		case errors.Is(derr, database.ErrNotFound):
		default:
			return models.Caller{}, utils.NewInternal("failed to resolve role", derr)
		}
	default:
		return models.Caller{}, utils.NewInternal("failed to resolve role", err)
	}

	if caller.Role == "" {
		caller.Role = models.RoleUser
	}
	if g.cache != nil {
		g.cache.Set(ctx, caller)
	}
	return caller, nil
}

// Invalidate drops any cached role for email. Called after every role or status change.
func (g *Gate) Invalidate(ctx context.Context, email string) {
	email = NormalizeEmail(email)
	if g.cache == nil || email == "" {
		return
	}
	g.cache.Invalidate(ctx, email)
	g.logger.Debug("Role cache invalidated", zap.String("email", email))
}
