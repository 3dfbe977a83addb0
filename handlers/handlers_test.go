package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"styledecor/middleware"
	"styledecor/models"
	"styledecor/services/booking"
	"styledecor/services/user"
	"styledecor/testutil"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
}

var (
	customer = models.Caller{Email: "a@x.com", Role: models.RoleUser, Status: models.UserStatusActive}
	admin    = models.Caller{Email: "admin@x.com", Role: models.RoleAdmin, Status: models.UserStatusActive}
)

// as injects caller the way AuthMiddleware would.
func as(caller *models.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller != nil {
			middleware.SetCaller(c, *caller)
		}
		c.Next()
	}
}

func request(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func newUserHandler(store *testutil.Store) *UserHandler {
	return NewUserHandler(user.NewService(store.Repositories(), store.Transactor(), testutil.NewMemoryRoleCache(), zap.NewNop()))
}

func TestRegisterUserHandler(t *testing.T) {
	h := newUserHandler(testutil.NewStore())
	r := gin.New()
	r.POST("/users", h.RegisterUserHandler)

	w := request(r, http.MethodPost, "/users", models.UserRegistration{Email: "a@x.com", Name: "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	var res models.RegistrationResult
	decode(t, w, &res)
	assert.True(t, res.Created)
	assert.NotEmpty(t, res.InsertedID)

	w = request(r, http.MethodPost, "/users", models.UserRegistration{Email: "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	res = models.RegistrationResult{}
	decode(t, w, &res)
	assert.False(t, res.Created)

	assert.Equal(t, http.StatusBadRequest, request(r, http.MethodPost, "/users", `{"email":"not-an-email"}`).Code)
	assert.Equal(t, http.StatusBadRequest, request(r, http.MethodPost, "/users", `{`).Code)
}

func TestHandlersRequireCaller(t *testing.T) {
	h := newUserHandler(testutil.NewStore())
	r := gin.New()
	r.GET("/users", h.ListUsersHandler)

	w := request(r, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body utils.ErrorResponse
	decode(t, w, &body)
	assert.Equal(t, string(utils.KindUnauthorized), body.Code)
}

func TestListUsersHandler(t *testing.T) {
	store := testutil.NewStore()
	store.Users().Seed(models.User{Email: "a@x.com", Role: models.RoleUser, Status: models.UserStatusActive})
	h := newUserHandler(store)

	forUser := gin.New()
	forUser.GET("/users", as(&customer), h.ListUsersHandler)
	assert.Equal(t, http.StatusForbidden, request(forUser, http.MethodGet, "/users", nil).Code)

	forAdmin := gin.New()
	forAdmin.GET("/users", as(&admin), h.ListUsersHandler)
	w := request(forAdmin, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.User
	decode(t, w, &users)
	assert.Len(t, users, 1)
}

func TestListDecoratorsHandlerAnonymous(t *testing.T) {
	store := testutil.NewStore()
	store.Decorators().Seed(models.Decorator{Email: "d@x.com", Name: "Dana", ApplicationStatus: models.ApplicationApproved})
	store.Decorators().Seed(models.Decorator{Email: "p@x.com", Name: "Pat", ApplicationStatus: models.ApplicationPending})
	h := newUserHandler(store)

	anon := gin.New()
	anon.GET("/decorators", as(nil), h.ListDecoratorsHandler)
	w := request(anon, http.MethodGet, "/decorators?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Decorator
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "d@x.com", list[0].Email)

	asAdmin := gin.New()
	asAdmin.GET("/decorators", as(&admin), h.ListDecoratorsHandler)
	w = request(asAdmin, http.MethodGet, "/decorators?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = nil
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "p@x.com", list[0].Email)
}

func TestCreateBookingHandler(t *testing.T) {
	store := testutil.NewStore()
	svc := booking.NewService(store.Repositories(), store.Transactor(), &testutil.MockGateway{},
		booking.Options{SiteDomain: "https://styledecor.example", Currency: "usd"}, zap.NewNop())
	h := NewBookingHandler(svc)

	r := gin.New()
	r.Use(as(&customer))
	r.POST("/bookings", h.CreateBookingHandler)
	r.PATCH("/bookings/:id", h.UpdateBookingHandler)

	w := request(r, http.MethodPost, "/bookings", models.BookingInput{UserEmail: customer.Email, PackageName: "Gold", Cost: 120})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		InsertedID string         `json:"insertedId"`
		Booking    models.Booking `json:"booking"`
	}
	decode(t, w, &created)
	assert.Equal(t, created.Booking.ID, created.InsertedID)
	assert.Equal(t, models.StatusRequested, created.Booking.Status)
	assert.Equal(t, models.PaymentUnpaid, created.Booking.PaymentStatus)

	w = request(r, http.MethodPost, "/bookings", models.BookingInput{UserEmail: "b@x.com", PackageName: "Gold"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, http.MethodPatch, "/bookings/"+created.InsertedID, `{"location":"Dhaka"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var mutation models.BookingMutation
	decode(t, w, &mutation)
	assert.Equal(t, int64(1), mutation.ModifiedCount)
	assert.Equal(t, "Dhaka", mutation.Booking.Location)

	assert.Equal(t, http.StatusNotFound, request(r, http.MethodPatch, "/bookings/missing", `{"location":"x"}`).Code)
}
