package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"styledecor/handlers"
	"styledecor/models"
	"styledecor/services/booking"
	"styledecor/services/catalog"
	"styledecor/services/identity"
	"styledecor/services/payment"
	"styledecor/services/stats"
	"styledecor/services/user"
	"styledecor/testutil"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
}

type app struct {
	router  *gin.Engine
	store   *testutil.Store
	gateway *testutil.MockGateway
}

func newApp(t *testing.T) *app {
	t.Helper()
	store := testutil.NewStore()
	store.Users().Seed(models.User{Email: "admin@x.com", Role: models.RoleAdmin, Status: models.UserStatusActive})
	store.Users().Seed(models.User{Email: "d@x.com", Role: models.RoleDecorator, Status: models.DecoratorStatusAvailable})
	store.Decorators().Seed(models.Decorator{
		Email:             "d@x.com",
		Name:              "Dana",
		Experience:        4,
		ApplicationStatus: models.ApplicationApproved,
		Role:              models.RoleDecorator,
		Status:            models.DecoratorStatusAvailable,
	})
	store.Catalog().SeedPackage(models.Package{Name: "Gold", Service: "wedding", Price: 120})

	verifier := &testutil.MockVerifier{}
	verifier.On("VerifyEmail", mock.Anything, "alice-token").Return("a@x.com", nil)
	verifier.On("VerifyEmail", mock.Anything, "admin-token").Return("admin@x.com", nil)
	verifier.On("VerifyEmail", mock.Anything, "dana-token").Return("d@x.com", nil)
	verifier.On("VerifyEmail", mock.Anything, mock.Anything).Return("", utils.NewUnauthorized("missing or invalid credential"))

	repos := store.Repositories()
	logger := zap.NewNop()
	gate := identity.NewGate(verifier, repos.Users, repos.Decorators, testutil.NewMemoryRoleCache(), logger)
	gateway := &testutil.MockGateway{}

	userHandler := handlers.NewUserHandler(user.NewService(repos, store.Transactor(), gate, logger))
	catalogHandler := handlers.NewCatalogHandler(catalog.NewService(repos, logger))
	bookingHandler := handlers.NewBookingHandler(booking.NewService(repos, store.Transactor(), gateway,
		booking.Options{SiteDomain: "https://styledecor.example", Currency: "usd"}, logger))
	statsHandler := handlers.NewStatsHandler(stats.NewService(repos, logger))

	hb := &handlers.HandlerBundle{
		Gate: gate,

		RegisterUserHandler:           userHandler.RegisterUserHandler,
		ListUsersHandler:              userHandler.ListUsersHandler,
		GetUserRoleHandler:            userHandler.GetUserRoleHandler,
		PromoteUserToAdminHandler:     userHandler.PromoteUserToAdminHandler,
		PromoteUserToDecoratorHandler: userHandler.PromoteUserToDecoratorHandler,
		BanUserHandler:                userHandler.BanUserHandler,
		DeleteUserHandler:             userHandler.DeleteUserHandler,

		SubmitApplicationHandler:       userHandler.SubmitApplicationHandler,
		ListDecoratorsHandler:          userHandler.ListDecoratorsHandler,
		TopDecoratorsHandler:           userHandler.TopDecoratorsHandler,
		GetDecoratorRoleHandler:        userHandler.GetDecoratorRoleHandler,
		PromoteDecoratorToAdminHandler: userHandler.PromoteDecoratorToAdminHandler,
		SetApplicationStatusHandler:    userHandler.SetApplicationStatusHandler,
		BanDecoratorHandler:            userHandler.BanDecoratorHandler,
		DeleteDecoratorHandler:         userHandler.DeleteDecoratorHandler,
		SetAvailabilityHandler:         userHandler.SetAvailabilityHandler,

		CoverageAreasHandler:   catalogHandler.CoverageAreasHandler,
		ListServicesHandler:    catalogHandler.ListServicesHandler,
		CreateServiceHandler:   catalogHandler.CreateServiceHandler,
		ListPackagesHandler:    catalogHandler.ListPackagesHandler,
		PopularPackagesHandler: catalogHandler.PopularPackagesHandler,

		CreateBookingHandler: bookingHandler.CreateBookingHandler,
		ListBookingsHandler:  bookingHandler.ListBookingsHandler,
		GetBookingHandler:    bookingHandler.GetBookingHandler,
		UpdateBookingHandler: bookingHandler.UpdateBookingHandler,
		AssignBookingHandler: bookingHandler.AssignBookingHandler,
		AcceptBookingHandler: bookingHandler.AcceptBookingHandler,
		RejectBookingHandler: bookingHandler.RejectBookingHandler,
		AdvanceStatusHandler: bookingHandler.AdvanceStatusHandler,

		CheckoutSessionHandler: bookingHandler.CheckoutSessionHandler,
		VerifyPaymentHandler:   bookingHandler.VerifyPaymentHandler,
		PaymentHistoryHandler:  bookingHandler.PaymentHistoryHandler,

		RevenueStatsHandler:   statsHandler.RevenueStatsHandler,
		DashboardStatsHandler: statsHandler.DashboardStatsHandler,
	}

	r := gin.New()
	RegisterRoutes(r, hb, Options{AllowedOrigins: "*", MaxRequestsPerMin: 1000, Logger: logger})
	return &app{router: r, store: store, gateway: gateway}
}

func (a *app) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func TestBannerAndHealth(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Style Decor is Decorating....!!!", w.Body.String())

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", "", nil).Code)
}

func TestRouteAuthorization(t *testing.T) {
	a := newApp(t)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/bookings", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/bookings", "forged", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/users", "alice-token", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/users", "admin-token", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/revenue-stats", "alice-token", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/services", "dana-token", models.ServiceInput{Name: "Home"}).Code)

	// Public catalog and decorator listings need no credential.
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/packages?service=wedding", "", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/decorators", "", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/decorators", "forged", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/decorators/top", "", nil).Code)
}

func TestBookingToPaymentFlow(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/users", "", models.UserRegistration{Email: "a@x.com", Name: "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(http.MethodPost, "/bookings", "alice-token", models.BookingInput{UserEmail: "a@x.com", PackageName: "Gold", Cost: 120})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		InsertedID string `json:"insertedId"`
	}
	decode(t, w, &created)
	id := created.InsertedID
	require.NotEmpty(t, id)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPatch, "/bookings/assign/"+id, "alice-token", models.AssignInput{DecoratorEmail: "d@x.com"}).Code)
	require.Equal(t, http.StatusOK, a.do(http.MethodPatch, "/bookings/assign/"+id, "admin-token", models.AssignInput{DecoratorEmail: "d@x.com"}).Code)

	w = a.do(http.MethodPatch, "/bookings/"+id+"/accept", "dana-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mutation models.BookingMutation
	decode(t, w, &mutation)
	assert.Equal(t, models.StatusAccepted, mutation.Booking.Status)
	assert.Equal(t, "Dana", mutation.Booking.DecoratorName)

	a.gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req payment.CheckoutRequest) bool {
		return req.BookingID == id && req.Amount == 120 && req.CustomerEmail == "a@x.com"
	})).Return(&models.CheckoutSession{URL: "https://checkout.stripe.test/cs_1", SessionID: "cs_1"}, nil).Once()
	a.gateway.On("GetSession", mock.Anything, "cs_1").Return(&payment.SessionStatus{
		SessionID:     "cs_1",
		TransactionID: "pi_1",
		PaymentStatus: "paid",
		Paid:          true,
		Amount:        120,
		Currency:      "usd",
		CustomerEmail: "a@x.com",
		BookingID:     id,
	}, nil)

	w = a.do(http.MethodPost, "/StyleDecor-checkout-session", "alice-token", map[string]interface{}{"bookingId": id, "cost": "120"})
	require.Equal(t, http.StatusOK, w.Code)
	var session models.CheckoutSession
	decode(t, w, &session)
	assert.Equal(t, "https://checkout.stripe.test/cs_1", session.URL)

	w = a.do(http.MethodPatch, "/verify-payment-success?session_id=cs_1", "alice-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var first models.PaymentConfirmation
	decode(t, w, &first)
	assert.True(t, first.Success)
	assert.Equal(t, "pi_1", first.TransactionID)
	assert.Regexp(t, `^SDC-\d{8}-[0-9A-F]{6}$`, first.TrackingID)

	w = a.do(http.MethodPatch, "/verify-payment-success?session_id=cs_1", "alice-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var second models.PaymentConfirmation
	decode(t, w, &second)
	assert.True(t, second.Success)
	assert.Equal(t, first.TrackingID, second.TrackingID)
	assert.Equal(t, 1, a.store.Payments().Count())

	w = a.do(http.MethodGet, "/bookings/"+id, "alice-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var paid models.Booking
	decode(t, w, &paid)
	assert.Equal(t, models.StatusPaymentDone, paid.Status)
	assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)
	assert.Equal(t, first.TrackingID, paid.TrackingID)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPatch, "/bookings/"+id+"/status", "alice-token", models.StatusInput{Status: "planning"}).Code)
	w = a.do(http.MethodPatch, "/bookings/"+id+"/status", "dana-token", models.StatusInput{Status: "planning"})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/payments?email=a@x.com", "alice-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []models.Payment
	decode(t, w, &history)
	require.Len(t, history, 1)
	assert.Equal(t, first.TrackingID, history[0].TrackingID)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/payments?email=a@x.com", "dana-token", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/revenue-stats", "admin-token", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/dashboard-stats", "dana-token", nil).Code)

	a.gateway.AssertExpectations(t)
}

func TestBannedCallerIsRejected(t *testing.T) {
	a := newApp(t)
	a.store.Users().Seed(models.User{Email: "a@x.com", Role: models.RoleUser, Status: models.UserStatusBanned})

	w := a.do(http.MethodPost, "/bookings", "alice-token", models.BookingInput{UserEmail: "a@x.com", PackageName: "Gold"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCorsConfig(t *testing.T) {
	cfg := corsConfig("*")
	assert.True(t, cfg.AllowAllOrigins)
	assert.Empty(t, cfg.AllowOrigins)

	cfg = corsConfig("https://a.example, https://b.example")
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
}
