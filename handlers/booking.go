package handlers

import (
	"net/http"

	"styledecor/models"
	"styledecor/services/booking"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves bookings and payments.
type BookingHandler struct {
	Service *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var in models.BookingInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.Service.Create(c.Request.Context(), caller, in)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": b.ID, "booking": b})
}

func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	filter := models.BookingFilter{
		UserEmail:      c.Query("email"),
		DecoratorEmail: c.Query("decoratorEmail"),
		Status:         models.BookingStatus(c.Query("status")),
		PaymentStatus:  c.Query("paymentStatus"),
	}
	bookings, err := h.Service.List(c.Request.Context(), caller, filter)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	b, err := h.Service.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var upd models.BookingFieldsUpdate
	if !bindJSON(c, &upd) {
		return
	}
	h.respond(c, func() (*models.BookingMutation, error) {
		return h.Service.UpdateFields(c.Request.Context(), caller, c.Param("id"), upd)
	})
}

func (h *BookingHandler) AssignBookingHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var in models.AssignInput
	if !bindJSON(c, &in) {
		return
	}
	h.respond(c, func() (*models.BookingMutation, error) {
		return h.Service.Assign(c.Request.Context(), caller, c.Param("id"), in.DecoratorEmail)
	})
}

func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	h.respond(c, func() (*models.BookingMutation, error) {
		return h.Service.Accept(c.Request.Context(), caller, c.Param("id"))
	})
}

func (h *BookingHandler) RejectBookingHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	h.respond(c, func() (*models.BookingMutation, error) {
		return h.Service.Reject(c.Request.Context(), caller, c.Param("id"))
	})
}

func (h *BookingHandler) AdvanceStatusHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var in models.StatusInput
	if !bindJSON(c, &in) {
		return
	}
	h.respond(c, func() (*models.BookingMutation, error) {
		return h.Service.AdvanceStatus(c.Request.Context(), caller, c.Param("id"), in.Status)
	})
}

func (h *BookingHandler) respond(c *gin.Context, op func() (*models.BookingMutation, error)) {
	res, err := op()
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	getLogger(c).Debug("Booking mutated", zap.String("bookingId", res.Booking.ID), zap.Int64("modified", res.ModifiedCount))
	c.JSON(http.StatusOK, res)
}
