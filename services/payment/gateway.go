// Package payment adapts the hosted checkout gateway.
package payment

import (
	"context"

	"styledecor/models"
)

// CheckoutRequest describes one hosted checkout for a booking.
type CheckoutRequest struct {
	BookingID     string
	CustomerEmail string
	PackageName   string
	Amount        float64
	Currency      string
	SuccessURL    string
	CancelURL     string
}

// SessionStatus is the gateway's view of a checkout session.
type SessionStatus struct {
	SessionID     string
	TransactionID string
	PaymentStatus string
	Paid          bool
	Amount        float64
	Currency      string
	CustomerEmail string
	BookingID     string
	PackageName   string
}

// Gateway opens checkout sessions and reports whether they were paid.
// Implementations bound every call with a timeout and return utils.AppError values.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*models.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*SessionStatus, error)
}
