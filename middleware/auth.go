package middleware

import (
	"context"

	"styledecor/models"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const callerKey = "caller"

// Authenticator resolves an Authorization header into a Caller.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (models.Caller, error)
}

// AuthMiddleware authenticates the request through the identity gate.
// With optional set, requests without a valid credential continue anonymously.
func AuthMiddleware(gate Authenticator, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if optional && header == "" {
			c.Next()
			return
		}

		caller, err := gate.Authenticate(c.Request.Context(), header)
		if err != nil {
			if optional && utils.KindOf(err) == utils.KindUnauthorized {
				zap.L().Debug("Ignoring invalid optional credential", zap.String("path", c.FullPath()))
				c.Next()
				return
			}
			utils.AbortWithError(c, err)
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// CallerFrom returns the authenticated caller, if any.
func CallerFrom(c *gin.Context) (models.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok
}

// SetCaller stores caller on the context.
func SetCaller(c *gin.Context, caller models.Caller) {
	c.Set(callerKey, caller)
}
