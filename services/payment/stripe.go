package payment

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"styledecor/models"
	"styledecor/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

const (
	metaBookingID   = "bookingId"
	metaPackageName = "packageName"
)

// StripeGateway implements Gateway with Stripe Checkout.
type StripeGateway struct {
	api     *client.API
	timeout time.Duration
	logger  *zap.Logger
}

// NewStripeGateway builds a gateway for secretKey. backends is nil outside tests.
func NewStripeGateway(secretKey string, timeout time.Duration, backends *stripe.Backends, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{
		api:     client.New(secretKey, backends),
		timeout: timeout,
		logger:  logger,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*models.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(toMinorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.PackageName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(metaBookingID, req.BookingID)
	params.AddMetadata(metaPackageName, req.PackageName)

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, g.mapError(ctx, "create checkout session", err)
	}
	g.logger.Info("Checkout session created", zap.String("sessionId", s.ID), zap.String("bookingId", req.BookingID))
	return &models.CheckoutSession{URL: s.URL, SessionID: s.ID}, nil
}

func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, g.mapError(ctx, "retrieve checkout session", err)
	}

	status := &SessionStatus{
		SessionID:     s.ID,
		PaymentStatus: string(s.PaymentStatus),
		Paid:          s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Amount:        fromMinorUnits(s.AmountTotal),
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		BookingID:     s.Metadata[metaBookingID],
		PackageName:   s.Metadata[metaPackageName],
	}
	if status.CustomerEmail == "" && s.CustomerDetails != nil {
		status.CustomerEmail = s.CustomerDetails.Email
	}
	if s.PaymentIntent != nil {
		status.TransactionID = s.PaymentIntent.ID
	}
	return status, nil
}

func (g *StripeGateway) mapError(ctx context.Context, op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
		return utils.NewNotFound("payment session not found")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		g.logger.Warn("Payment gateway timed out", zap.String("op", op))
		return utils.NewUpstream("payment gateway timed out", err)
	}
	g.logger.Error("Payment gateway call failed", zap.String("op", op), zap.Error(err))
	return utils.NewUpstream("payment gateway unavailable", err)
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
