package routes

import (
	"net/http"
	"strings"
	"time"

	"styledecor/handlers"
	"styledecor/middleware"
	"styledecor/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options tunes the global middleware chain.
type Options struct {
	AllowedOrigins    string
	MaxRequestsPerMin int
	Logger            *zap.Logger
}

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/users")
	{
		api.POST("", hb.RegisterUserHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.Gate, false))
		protected.GET("/role", hb.GetUserRoleHandler)

		admin := protected.Group("")
		admin.Use(middleware.AdminOnly())
		admin.GET("", hb.ListUsersHandler)
		admin.PATCH("/admin/:id", hb.PromoteUserToAdminHandler)
		admin.PATCH("/decorator/:id", hb.PromoteUserToDecoratorHandler)
		admin.PATCH("/ban/:id", hb.BanUserHandler)
		admin.DELETE("/:id", hb.DeleteUserHandler)
	}
}

// RegisterDecoratorRoutes registers decorator application and management endpoints.
func RegisterDecoratorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/decorators")
	{
		api.POST("", hb.SubmitApplicationHandler)
		api.GET("/top", hb.TopDecoratorsHandler)

		// Admins see every application status; anonymous callers only approved decorators.
		api.GET("", middleware.AuthMiddleware(hb.Gate, true), hb.ListDecoratorsHandler)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.Gate, false))
		protected.GET("/role", hb.GetDecoratorRoleHandler)
		protected.PATCH("/status-update-by-email/:email", middleware.DecoratorOrAdmin(), hb.SetAvailabilityHandler)

		admin := protected.Group("")
		admin.Use(middleware.AdminOnly())
		admin.PATCH("/admin/:id", hb.PromoteDecoratorToAdminHandler)
		admin.PATCH("/status/:id", hb.SetApplicationStatusHandler)
		admin.PATCH("/ban/:id", hb.BanDecoratorHandler)
		admin.DELETE("/:id", hb.DeleteDecoratorHandler)
	}
}

// RegisterCatalogRoutes registers the public catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/coverageAreas", hb.CoverageAreasHandler)
	r.GET("/services", hb.ListServicesHandler)
	r.POST("/services", middleware.AuthMiddleware(hb.Gate, false), middleware.AdminOnly(), hb.CreateServiceHandler)
	r.GET("/packages", hb.ListPackagesHandler)
	r.GET("/popular-packages", hb.PopularPackagesHandler)
}

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/bookings")
	{
		bookingGroup.Use(middleware.AuthMiddleware(hb.Gate, false))
		bookingGroup.POST("", hb.CreateBookingHandler)
		bookingGroup.GET("", hb.ListBookingsHandler)
		bookingGroup.GET("/:id", hb.GetBookingHandler)
		bookingGroup.PATCH("/:id", hb.UpdateBookingHandler)
		bookingGroup.PATCH("/assign/:id", middleware.AdminOnly(), hb.AssignBookingHandler)
		bookingGroup.PATCH("/:id/accept", middleware.DecoratorOrAdmin(), hb.AcceptBookingHandler)
		bookingGroup.PATCH("/:id/reject", middleware.DecoratorOrAdmin(), hb.RejectBookingHandler)
		bookingGroup.PATCH("/:id/status", middleware.DecoratorOrAdmin(), hb.AdvanceStatusHandler)
	}
}

// RegisterPaymentRoutes sets up checkout, confirmation and payment history.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.AuthMiddleware(hb.Gate, false)
	r.POST("/StyleDecor-checkout-session", auth, hb.CheckoutSessionHandler)
	r.PATCH("/verify-payment-success", auth, hb.VerifyPaymentHandler)
	r.GET("/payments", auth, hb.PaymentHistoryHandler)
}

// RegisterStatsRoutes sets up the reporting endpoints.
func RegisterStatsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.AuthMiddleware(hb.Gate, false)
	r.GET("/revenue-stats", auth, middleware.AdminOnly(), hb.RevenueStatsHandler)
	r.GET("/dashboard-stats", auth, hb.DashboardStatsHandler)
}

// RegisterHealthRoute registers the banner and health-check endpoints.
func RegisterHealthRoute(r *gin.Engine, health *utils.HealthMonitor) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Style Decor is Decorating....!!!")
	})
	r.GET("/health", func(c *gin.Context) {
		if health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status := health.Status()
		code := http.StatusOK
		if !status.Mongo {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}

	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	RegisterHealthRoute(r, hb.Health)
	RegisterUserRoutes(r, hb)
	RegisterDecoratorRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterStatsRoutes(r, hb)
}

func corsConfig(origins string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowOrigins = nil
			return cfg
		}
		cfg.AllowOrigins = append(cfg.AllowOrigins, o)
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}
