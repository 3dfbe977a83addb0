package handlers

import (
	"net/http"

	"styledecor/models"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

func (h *BookingHandler) CheckoutSessionHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var in models.CheckoutInput
	if !bindJSON(c, &in) {
		return
	}
	session, err := h.Service.CreateCheckoutSession(c.Request.Context(), caller, in)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// VerifyPaymentHandler is safe to call repeatedly for the same session.
func (h *BookingHandler) VerifyPaymentHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	res, err := h.Service.ConfirmPayment(c.Request.Context(), caller, c.Query("session_id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) PaymentHistoryHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	payments, err := h.Service.PaymentHistory(c.Request.Context(), caller, c.Query("email"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
