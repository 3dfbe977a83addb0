package handlers

import (
	"net/http"

	"styledecor/services/stats"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	Service *stats.Service
}

func NewStatsHandler(svc *stats.Service) *StatsHandler {
	return &StatsHandler{Service: svc}
}

func (h *StatsHandler) RevenueStatsHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	res, err := h.Service.RevenueStats(c.Request.Context(), caller)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *StatsHandler) DashboardStatsHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	res, err := h.Service.DashboardStats(c.Request.Context(), caller)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
