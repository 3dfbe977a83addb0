// File: styledecor/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"styledecor/config"
	"styledecor/database"
	"styledecor/database/repository"
	"styledecor/handlers"
	"styledecor/routes"
	"styledecor/services/booking"
	"styledecor/services/catalog"
	"styledecor/services/identity"
	"styledecor/services/payment"
	"styledecor/services/stats"
	"styledecor/services/user"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	mongoClient, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))

	repos, err := repository.NewMongoRepositories(ctx, mongoClient.Database(cfg.DatabaseName))
	if err != nil {
		logger.Fatal("main: failed to initialize repositories", zap.Error(err))
	}
	tx := database.NewMongoTransactor(mongoClient)

	redisClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisRoleCacheDB)
	if err != nil {
		logger.Warn("main: role cache disabled", zap.Error(err))
	}

	firebaseAuth, err := utils.NewFirebaseAuth(ctx, cfg.FirebaseCredentialsFile)
	if err != nil {
		logger.Fatal("main: failed to initialize Firebase auth", zap.Error(err))
	}

	// identity gate.
	roleCache := identity.NewRedisRoleCache(redisClient, cfg.RoleCacheTTL, logger)
	gate := identity.NewGate(
		identity.NewFirebaseVerifier(firebaseAuth, cfg.UpstreamTimeout),
		repos.Users,
		repos.Decorators,
		roleCache,
		logger,
	)

	// services.
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.UpstreamTimeout, nil, logger)
	bookingService := booking.NewService(repos, tx, gateway, booking.Options{
		SiteDomain: cfg.SiteDomain,
		Currency:   cfg.PaymentCurrency,
	}, logger)
	userService := user.NewService(repos, tx, gate, logger)
	catalogService := catalog.NewService(repos, logger)
	statsService := stats.NewService(repos, logger)

	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	statsHandler := handlers.NewStatsHandler(statsService)

	health := utils.NewHealthMonitor(mongoClient, redisClient)
	health.Start(ctx, 30*time.Second)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Gate:   gate,
		Health: health,

		// User endpoints.
		RegisterUserHandler:           userHandler.RegisterUserHandler,
		ListUsersHandler:              userHandler.ListUsersHandler,
		GetUserRoleHandler:            userHandler.GetUserRoleHandler,
		PromoteUserToAdminHandler:     userHandler.PromoteUserToAdminHandler,
		PromoteUserToDecoratorHandler: userHandler.PromoteUserToDecoratorHandler,
		BanUserHandler:                userHandler.BanUserHandler,
		DeleteUserHandler:             userHandler.DeleteUserHandler,

		// Decorator endpoints.
		SubmitApplicationHandler:       userHandler.SubmitApplicationHandler,
		ListDecoratorsHandler:          userHandler.ListDecoratorsHandler,
		TopDecoratorsHandler:           userHandler.TopDecoratorsHandler,
		GetDecoratorRoleHandler:        userHandler.GetDecoratorRoleHandler,
		PromoteDecoratorToAdminHandler: userHandler.PromoteDecoratorToAdminHandler,
		SetApplicationStatusHandler:    userHandler.SetApplicationStatusHandler,
		BanDecoratorHandler:            userHandler.BanDecoratorHandler,
		DeleteDecoratorHandler:         userHandler.DeleteDecoratorHandler,
		SetAvailabilityHandler:         userHandler.SetAvailabilityHandler,

		// Catalog endpoints.
		CoverageAreasHandler:   catalogHandler.CoverageAreasHandler,
		ListServicesHandler:    catalogHandler.ListServicesHandler,
		CreateServiceHandler:   catalogHandler.CreateServiceHandler,
		ListPackagesHandler:    catalogHandler.ListPackagesHandler,
		PopularPackagesHandler: catalogHandler.PopularPackagesHandler,

		// Booking endpoints.
		CreateBookingHandler: bookingHandler.CreateBookingHandler,
		ListBookingsHandler:  bookingHandler.ListBookingsHandler,
		GetBookingHandler:    bookingHandler.GetBookingHandler,
		UpdateBookingHandler: bookingHandler.UpdateBookingHandler,
		AssignBookingHandler: bookingHandler.AssignBookingHandler,
		AcceptBookingHandler: bookingHandler.AcceptBookingHandler,
		RejectBookingHandler: bookingHandler.RejectBookingHandler,
		AdvanceStatusHandler: bookingHandler.AdvanceStatusHandler,

		// Payment endpoints.
		CheckoutSessionHandler: bookingHandler.CheckoutSessionHandler,
		VerifyPaymentHandler:   bookingHandler.VerifyPaymentHandler,
		PaymentHistoryHandler:  bookingHandler.PaymentHistoryHandler,

		// Statistics endpoints.
		RevenueStatsHandler:   statsHandler.RevenueStatsHandler,
		DashboardStatsHandler: statsHandler.DashboardStatsHandler,
	}

	// Create the Gin router and register routes with the assembled handler bundle.
	router := gin.New()
	if cfg.TrustedProxies != "" {
		if err := router.SetTrustedProxies(strings.Split(cfg.TrustedProxies, ",")); err != nil {
			logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
		}
	}
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		AllowedOrigins:    cfg.CORSAllowOrigins,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
		Logger:            logger,
	})

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "3333"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("main: failed to close Redis", zap.Error(err))
		}
	}
	if err := database.Disconnect(mongoClient); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
