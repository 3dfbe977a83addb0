package handlers

import (
	"styledecor/middleware"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every endpoint handler and the middleware dependencies the routes need.
type HandlerBundle struct {
	Gate   middleware.Authenticator
	Health *utils.HealthMonitor

	// User endpoints
	RegisterUserHandler           gin.HandlerFunc
	ListUsersHandler              gin.HandlerFunc
	GetUserRoleHandler            gin.HandlerFunc
	PromoteUserToAdminHandler     gin.HandlerFunc
	PromoteUserToDecoratorHandler gin.HandlerFunc
	BanUserHandler                gin.HandlerFunc
	DeleteUserHandler             gin.HandlerFunc

	// Decorator endpoints
	SubmitApplicationHandler       gin.HandlerFunc
	ListDecoratorsHandler          gin.HandlerFunc
	TopDecoratorsHandler           gin.HandlerFunc
	GetDecoratorRoleHandler        gin.HandlerFunc
	PromoteDecoratorToAdminHandler gin.HandlerFunc
	SetApplicationStatusHandler    gin.HandlerFunc
	BanDecoratorHandler            gin.HandlerFunc
	DeleteDecoratorHandler         gin.HandlerFunc
	SetAvailabilityHandler         gin.HandlerFunc

	// Catalog endpoints
	CoverageAreasHandler   gin.HandlerFunc
	ListServicesHandler    gin.HandlerFunc
	CreateServiceHandler   gin.HandlerFunc
	ListPackagesHandler    gin.HandlerFunc
	PopularPackagesHandler gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	UpdateBookingHandler gin.HandlerFunc
	AssignBookingHandler gin.HandlerFunc
	AcceptBookingHandler gin.HandlerFunc
	RejectBookingHandler gin.HandlerFunc
	AdvanceStatusHandler gin.HandlerFunc

	// Payment endpoints
	CheckoutSessionHandler gin.HandlerFunc
	VerifyPaymentHandler   gin.HandlerFunc
	PaymentHistoryHandler  gin.HandlerFunc

	// Statistics endpoints
	RevenueStatsHandler   gin.HandlerFunc
	DashboardStatsHandler gin.HandlerFunc
}
