package handlers

import (
	"net/http"

	"styledecor/models"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

func (h *UserHandler) SubmitApplicationHandler(c *gin.Context) {
	var in models.DecoratorApplication
	if !bindJSON(c, &in) {
		return
	}
	d, err := h.Service.SubmitApplication(c.Request.Context(), in)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": d.ID, "decorator": d})
}

// ListDecoratorsHandler runs behind optional authentication so admins can filter by any status.
func (h *UserHandler) ListDecoratorsHandler(c *gin.Context) {
	list, err := h.Service.ListDecorators(c.Request.Context(), optionalCaller(c), c.Query("status"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *UserHandler) TopDecoratorsHandler(c *gin.Context) {
	list, err := h.Service.TopDecorators(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *UserHandler) GetDecoratorRoleHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	view, err := h.Service.DecoratorRole(c.Request.Context(), caller, c.Query("email"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *UserHandler) PromoteDecoratorToAdminHandler(c *gin.Context) {
	h.update(c, h.Service.PromoteDecoratorToAdmin)
}

func (h *UserHandler) SetApplicationStatusHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var in models.ApplicationDecision
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Service.SetApplicationStatus(c.Request.Context(), caller, c.Param("id"), in.Status)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) BanDecoratorHandler(c *gin.Context) {
	h.update(c, h.Service.BanDecorator)
}

func (h *UserHandler) DeleteDecoratorHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	res, err := h.Service.DeleteDecorator(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) SetAvailabilityHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var in models.AvailabilityInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Service.SetAvailability(c.Request.Context(), caller, c.Param("email"), in.Status)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
