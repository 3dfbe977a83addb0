package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"styledecor/database"
	"styledecor/models"
	"styledecor/services/payment"
	"styledecor/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingID(t *testing.T) {
	id, err := NewTrackingID(time.Now())
	require.NoError(t, err)
	assert.Regexp(t, `^SDC-\d{8}-[0-9A-F]{6}$`, id)

	orig := randReader
	t.Cleanup(func() { randReader = orig })

	randReader = bytes.NewReader([]byte{0xab, 0x01, 0xff})
	local := time.Date(2025, 1, 1, 1, 0, 0, 0, time.FixedZone("UTC+6", 6*3600))
	id, err = NewTrackingID(local)
	require.NoError(t, err)
	assert.Equal(t, "SDC-20241231-AB01FF", id)

	randReader = bytes.NewReader(nil)
	_, err = NewTrackingID(time.Now())
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	valid := map[string]interface{}{
		"float":  49.5,
		"int":    50,
		"string": " 49.50 ",
		"number": json.Number("12"),
	}
	for name, v := range valid {
		t.Run(name, func(t *testing.T) {
			amount, err := parseAmount(v)
			require.NoError(t, err)
			assert.Greater(t, amount, 0.0)
		})
	}

	invalid := map[string]interface{}{
		"nil":      nil,
		"zero":     0.0,
		"negative": "-3",
		"garbage":  "twelve",
		"bool":     true,
		"nan":      "NaN",
	}
	for name, v := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := parseAmount(v)
			assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
		})
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.create(t)

	f.gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req payment.CheckoutRequest) bool {
		return req.BookingID == b.ID &&
			req.Amount == 120 &&
			req.PackageName == "Gold" &&
			req.CustomerEmail == customer.Email &&
			req.SuccessURL == "https://styledecor.example/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}" &&
			req.CancelURL == "https://styledecor.example/dashboard/payment-cancelled"
	})).Return(&models.CheckoutSession{URL: "https://pay/cs_1", SessionID: "cs_1"}, nil)

	s, err := f.svc.CreateCheckoutSession(ctx, customer, models.CheckoutInput{BookingID: b.ID, Cost: "120"})
	require.NoError(t, err)
	assert.Equal(t, "https://pay/cs_1", s.URL)

	_, err = f.svc.CreateCheckoutSession(ctx, customer, models.CheckoutInput{BookingID: b.ID, Cost: "abc"})
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	_, err = f.svc.CreateCheckoutSession(ctx, customer, models.CheckoutInput{BookingID: b.ID, Cost: 5.0})
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	f.gateway.AssertNumberOfCalls(t, "CreateCheckoutSession", 1)
}

func TestCheckoutRejectsPaidBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.create(t)
	f.paidSession("cs_1", b.ID, "pi_1")
	_, err := f.svc.ConfirmPayment(ctx, customer, "cs_1")
	require.NoError(t, err)

	_, err = f.svc.CreateCheckoutSession(ctx, customer, models.CheckoutInput{BookingID: b.ID, Cost: 120.0})
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}

func TestConfirmPaymentOutcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("NotPaidIsNotAnError", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t)
		f.gateway.On("GetSession", mock.Anything, "cs_open").Return(&payment.SessionStatus{
			SessionID: "cs_open", PaymentStatus: "unpaid", BookingID: b.ID,
		}, nil)

		res, err := f.svc.ConfirmPayment(ctx, customer, "cs_open")
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "unpaid", res.PaymentStatus)
		assert.Equal(t, 0, f.store.Payments().Count())
	})

	t.Run("GatewayFailureIsUpstream", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("GetSession", mock.Anything, "cs_1").Return(nil, utils.NewUpstream("payment gateway timed out", context.DeadlineExceeded))

		res, err := f.svc.ConfirmPayment(ctx, customer, "cs_1")
		assert.Nil(t, res)
		assert.Equal(t, utils.KindUpstream, utils.KindOf(err))
	})

	t.Run("UnclassifiedGatewayErrorIsUpstream", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("GetSession", mock.Anything, "cs_1").Return(nil, errors.New("tls handshake timeout"))

		_, err := f.svc.ConfirmPayment(ctx, customer, "cs_1")
		assert.Equal(t, utils.KindUpstream, utils.KindOf(err))
	})

	t.Run("MissingSessionID", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ConfirmPayment(ctx, customer, " ")
		assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
	})

	t.Run("OtherCustomerIsForbidden", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t)
		f.paidSession("cs_1", b.ID, "pi_1")

		_, err := f.svc.ConfirmPayment(ctx, stranger, "cs_1")
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
		assert.Equal(t, 0, f.store.Payments().Count())
	})

	t.Run("RecordingFailureIsDistinct", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t)
		f.paidSession("cs_1", b.ID, "pi_1")
		f.store.FailNext("bookings.UpdateIfStatus", errors.New("write concern timeout"))

		_, err := f.svc.ConfirmPayment(ctx, customer, "cs_1")
		require.Error(t, err)
		assert.Equal(t, utils.KindPaymentNotRecorded, utils.KindOf(err))
		var appErr *utils.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "pi_1", appErr.TransactionID)

		assert.Equal(t, 0, f.store.Payments().Count(), "payment insert rolled back with the booking write")
		stored, _ := f.store.Bookings().GetByID(ctx, b.ID)
		assert.Equal(t, models.PaymentUnpaid, stored.PaymentStatus)

		res, err := f.svc.ConfirmPayment(ctx, customer, "cs_1")
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 1, f.store.Payments().Count())
	})

	t.Run("InsertFailureIsDistinct", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t)
		f.paidSession("cs_1", b.ID, "pi_1")
		f.store.FailNext("payments.Insert", errors.New("primary stepped down"))

		_, err := f.svc.ConfirmPayment(ctx, customer, "cs_1")
		assert.Equal(t, utils.KindPaymentNotRecorded, utils.KindOf(err))
		stored, _ := f.store.Bookings().GetByID(ctx, b.ID)
		assert.Equal(t, models.StatusRequested, stored.Status)
	})

	t.Run("RacingInsertResolvesToRecorded", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t)
		f.paidSession("cs_1", b.ID, "pi_1")
		require.NoError(t, f.store.Payments().Insert(ctx, &models.Payment{
			TransactionID: "pi_1", BookingID: b.ID, CustomerEmail: customer.Email, TrackingID: "SDC-20250314-000001", PaidAt: fixedNow,
		}))
		f.store.FailNext("payments.GetByTransactionID", database.ErrNotFound)

		res, err := f.svc.ConfirmPayment(ctx, customer, "cs_1")
		require.NoError(t, err)
		assert.True(t, res.AlreadyRecorded)
		assert.Equal(t, "SDC-20250314-000001", res.TrackingID)
		assert.Equal(t, 1, f.store.Payments().Count())

		stored, _ := f.store.Bookings().GetByID(ctx, b.ID)
		assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
		assert.Equal(t, "SDC-20250314-000001", stored.TrackingID)
	})

	t.Run("TrackingIDIsNeverRegenerated", func(t *testing.T) {
		f := newFixture(t)
		b := f.store.Bookings().Seed(models.Booking{
			UserEmail: customer.Email, PackageName: "Gold", Status: models.StatusRequested,
			PaymentStatus: models.PaymentUnpaid, TrackingID: "SDC-20250101-C0FFEE",
		})
		f.paidSession("cs_1", b.ID, "pi_1")

		res, err := f.svc.ConfirmPayment(ctx, customer, "cs_1")
		require.NoError(t, err)
		assert.Equal(t, "SDC-20250101-C0FFEE", res.TrackingID)
	})
}

func TestPaymentHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i, email := range []string{customer.Email, customer.Email, stranger.Email} {
		require.NoError(t, f.store.Payments().Insert(ctx, &models.Payment{
			TransactionID: "pi_" + string(rune('a'+i)), CustomerEmail: email, Amount: 10, PaidAt: fixedNow,
		}))
	}

	own, err := f.svc.PaymentHistory(ctx, customer, "")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	_, err = f.svc.PaymentHistory(ctx, customer, stranger.Email)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	all, err := f.svc.PaymentHistory(ctx, admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
