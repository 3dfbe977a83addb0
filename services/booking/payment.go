package booking

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"styledecor/database"
	"styledecor/models"
	"styledecor/services/identity"
	"styledecor/services/payment"
	"styledecor/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateCheckoutSession opens a hosted checkout for an unpaid booking owned by caller.
func (s *Service) CreateCheckoutSession(ctx context.Context, caller models.Caller, in models.CheckoutInput) (*models.CheckoutSession, error) {
	amount, err := parseAmount(in.Cost)
	if err != nil {
		return nil, err
	}
	b, err := s.load(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if err := identity.RequireOwnerOrAdmin(caller, b.UserEmail); err != nil {
		return nil, err
	}
	if IsTerminal(b.Status) {
		return nil, utils.NewConflict(msgFinalized)
	}
	if b.PaymentStatus == models.PaymentPaid {
		return nil, utils.NewConflict("booking is already paid")
	}
	if b.Cost > 0 && math.Abs(b.Cost-amount) > 0.005 {
		return nil, utils.NewInvalidInput("amount does not match the booking cost")
	}

	packageName := strings.TrimSpace(in.PackageName)
	if packageName == "" {
		packageName = b.PackageName
	}
	site := strings.TrimRight(s.opts.SiteDomain, "/")
	return s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		BookingID:     b.ID,
		CustomerEmail: b.UserEmail,
		PackageName:   packageName,
		Amount:        amount,
		Currency:      s.opts.Currency,
		SuccessURL:    site + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     site + "/dashboard/payment-cancelled",
	})
}

// parseAmount accepts a JSON number or a numeric string.
func parseAmount(v interface{}) (float64, error) {
	var amount float64
	switch t := v.(type) {
	case float64:
		amount = t
	case int:
		amount = float64(t)
	case int64:
		amount = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, utils.NewInvalidInput("invalid amount")
		}
		amount = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, utils.NewInvalidInput("invalid amount")
		}
		amount = f
	default:
		return 0, utils.NewInvalidInput("invalid amount")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, utils.NewInvalidInput("amount must be greater than zero")
	}
	return amount, nil
}

// ConfirmPayment reconciles a checkout session into the booking and payment records.
// Repeating it for the same session returns the recorded tracking ID without writing again.
func (s *Service) ConfirmPayment(ctx context.Context, caller models.Caller, sessionID string) (*models.PaymentConfirmation, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, utils.NewInvalidInput("session_id is required")
	}
	if err := identity.RequireActive(caller); err != nil {
		return nil, err
	}

	sess, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, utils.NewUpstream("payment gateway unavailable", err)
	}
	if !sess.Paid {
		return &models.PaymentConfirmation{
			Success:       false,
			PaymentStatus: sess.PaymentStatus,
			BookingID:     sess.BookingID,
			Message:       "payment not completed",
		}, nil
	}
	if sess.BookingID == "" || sess.TransactionID == "" {
		return nil, utils.NewUpstream("payment session is missing booking or transaction reference", nil)
	}

	b, err := s.load(ctx, sess.BookingID)
	if err != nil {
		return nil, err
	}
	if err := identity.RequireOwnerOrAdmin(caller, b.UserEmail); err != nil {
		return nil, err
	}

	existing, err := s.repos.Payments.GetByTransactionID(ctx, sess.TransactionID)
	switch {
	case err == nil:
		return s.alreadyRecorded(ctx, b, existing)
	case !errors.Is(err, database.ErrNotFound):
		return nil, utils.NewPaymentNotRecorded(sess.TransactionID, err)
	}

	trackingID := b.TrackingID
	if trackingID == "" {
		if trackingID, err = NewTrackingID(s.now()); err != nil {
			return nil, utils.NewPaymentNotRecorded(sess.TransactionID, err)
		}
	}

	p := &models.Payment{
		TransactionID: sess.TransactionID,
		SessionID:     sess.SessionID,
		BookingID:     b.ID,
		CustomerEmail: b.UserEmail,
		PackageName:   b.PackageName,
		Amount:        sess.Amount,
		Currency:      sess.Currency,
		PaymentStatus: sess.PaymentStatus,
		TrackingID:    trackingID,
		PaidAt:        s.now(),
	}
	if p.Currency == "" {
		p.Currency = s.opts.Currency
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repos.Payments.Insert(ctx, p); err != nil {
			return err
		}
		return s.markPaid(ctx, b, trackingID, sess.TransactionID)
	})
	if errors.Is(err, database.ErrDuplicate) {
		existing, gerr := s.repos.Payments.GetByTransactionID(ctx, sess.TransactionID)
		if gerr != nil {
			return nil, utils.NewPaymentNotRecorded(sess.TransactionID, gerr)
		}
		fresh, lerr := s.load(ctx, b.ID)
		if lerr != nil {
			return nil, utils.NewPaymentNotRecorded(sess.TransactionID, lerr)
		}
		return s.alreadyRecorded(ctx, fresh, existing)
	}
	if err != nil {
		s.logger.Error("Payment confirmed by gateway but not recorded",
			zap.String("transactionId", sess.TransactionID),
			zap.String("bookingId", b.ID),
			zap.Error(err),
		)
		return nil, utils.NewPaymentNotRecorded(sess.TransactionID, err)
	}

	s.logger.Info("Payment recorded",
		zap.String("transactionId", p.TransactionID),
		zap.String("bookingId", b.ID),
		zap.String("trackingId", trackingID),
	)
	return &models.PaymentConfirmation{
		Success:       true,
		PaymentStatus: models.PaymentPaid,
		TrackingID:    trackingID,
		TransactionID: p.TransactionID,
		BookingID:     b.ID,
	}, nil
}

// alreadyRecorded repairs a booking left unpaid by an earlier partial confirmation, then reports the recorded payment.
func (s *Service) alreadyRecorded(ctx context.Context, b *models.Booking, p *models.Payment) (*models.PaymentConfirmation, error) {
	if b.PaymentStatus != models.PaymentPaid {
		if err := s.markPaid(ctx, b, p.TrackingID, p.TransactionID); err != nil {
			return nil, utils.NewPaymentNotRecorded(p.TransactionID, err)
		}
	}
	return &models.PaymentConfirmation{
		Success:         true,
		AlreadyRecorded: true,
		PaymentStatus:   models.PaymentPaid,
		TrackingID:      p.TrackingID,
		TransactionID:   p.TransactionID,
		BookingID:       p.BookingID,
	}, nil
}

// markPaid stamps the payment onto the booking. A booking finalized before the payment landed keeps its status.
func (s *Service) markPaid(ctx context.Context, b *models.Booking, trackingID, transactionID string) error {
	if b.PaymentStatus == models.PaymentPaid {
		return nil
	}
	if IsTerminal(b.Status) {
		s.logger.Warn("Payment recorded for a finalized booking",
			zap.String("bookingId", b.ID),
			zap.String("status", string(b.Status)),
			zap.String("transactionId", transactionID),
		)
		return nil
	}
	now := s.now()
	_, err := s.repos.Bookings.UpdateIfStatus(ctx, b.ID, b.Status, bson.M{
		"status":        paidStatus(b),
		"paymentStatus": models.PaymentPaid,
		"trackingId":    trackingID,
		"transactionId": transactionID,
		"paidAt":        now,
		"updatedAt":     now,
	})
	return err
}

// PaymentHistory lists payments for email. Admins may omit email to list every payment.
func (s *Service) PaymentHistory(ctx context.Context, caller models.Caller, email string) ([]models.Payment, error) {
	email = identity.NormalizeEmail(email)
	if email == "" && !caller.IsAdmin() {
		email = caller.Email
	}
	if email == "" {
		if err := identity.RequireAdmin(caller); err != nil {
			return nil, err
		}
	} else if err := identity.RequireOwnerOrAdmin(caller, email); err != nil {
		return nil, err
	}

	payments, err := s.repos.Payments.ListByEmail(ctx, email)
	if err != nil {
		return nil, utils.NewInternal("failed to list payments", err)
	}
	return payments, nil
}
