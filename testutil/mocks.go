package testutil

import (
	"context"

	"styledecor/models"
	"styledecor/services/payment"

	"github.com/stretchr/testify/mock"
)

// MockVerifier is a testify mock of identity.TokenVerifier.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	args := m.Called(ctx, idToken)
	return args.String(0), args.Error(1)
}

// MockGateway is a testify mock of payment.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*models.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutSession), args.Error(1)
}

func (m *MockGateway) GetSession(ctx context.Context, sessionID string) (*payment.SessionStatus, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.SessionStatus), args.Error(1)
}

// MemoryRoleCache is an in-process identity.RoleCache.
type MemoryRoleCache struct {
	entries     map[string]models.Caller
	Invalidated []string
}

func NewMemoryRoleCache() *MemoryRoleCache {
	return &MemoryRoleCache{entries: map[string]models.Caller{}}
}

func (c *MemoryRoleCache) Get(_ context.Context, email string) (models.Caller, bool) {
	caller, ok := c.entries[email]
	return caller, ok
}

func (c *MemoryRoleCache) Set(_ context.Context, caller models.Caller) {
	c.entries[caller.Email] = caller
}

func (c *MemoryRoleCache) Invalidate(_ context.Context, email string) {
	delete(c.entries, email)
	c.Invalidated = append(c.Invalidated, email)
}
