package handlers

import (
	"styledecor/middleware"
	"styledecor/models"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

// requireCaller aborts with 401 when no authenticated caller is on the context.
func requireCaller(c *gin.Context) (models.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		utils.AbortWithError(c, utils.NewUnauthorized("missing or invalid credential"))
	}
	return caller, ok
}

// optionalCaller returns nil for anonymous requests.
func optionalCaller(c *gin.Context) *models.Caller {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return nil
	}
	return &caller
}

// bindJSON aborts with 400 when the body does not decode or validate.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("Invalid request body")
		utils.AbortWithError(c, utils.NewInvalidInput("invalid request body: "+err.Error()))
		return false
	}
	return true
}
