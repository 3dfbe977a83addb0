package middleware

import (
	"styledecor/models"
	"styledecor/services/identity"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return requireCapability(identity.RequireAdmin)
}

// DecoratorOrAdmin must run after AuthMiddleware.
func DecoratorOrAdmin() gin.HandlerFunc {
	return requireCapability(identity.RequireDecoratorOrAdmin)
}

func requireCapability(check func(models.Caller) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			utils.AbortWithError(c, utils.NewUnauthorized("missing or invalid credential"))
			return
		}
		if err := check(caller); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
