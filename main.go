// File: booklyo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v76"

	"booklyo/config"
	"booklyo/cron"
	"booklyo/database"
	auditRepoPkg "booklyo/database/repository/audit"
	bookingRepoPkg "booklyo/database/repository/booking"
	establishmentRepoPkg "booklyo/database/repository/establishment"
	"booklyo/handlers"
	"booklyo/middleware"
	"booklyo/routes"
	"booklyo/security/crypto"
	"booklyo/security/ratelimit"
	"booklyo/services/audit"
	"booklyo/services/booking"
	"booklyo/services/establishment"
	"booklyo/services/payment"
	"booklyo/utils"
)

func main() {
	_ = godotenv.Load()
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRateLimitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	db := database.DB()
	estRepo := establishmentRepoPkg.NewMongoEstablishmentRepo(db)
	bkRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	audRepo := auditRepoPkg.NewMongoAuditRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := estRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure establishment indexes: %v", err)
	}
	if err := bkRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	cancel()

	// The sliding-window limiter shares state via Redis when available
	// and falls back to process-local memory otherwise.
	var memStore *ratelimit.MemoryStore
	var limiterStore ratelimit.Store
	if client := utils.GetRateLimitClient(); client != nil {
		limiterStore = ratelimit.NewRedisStore(client)
	} else {
		memStore = ratelimit.NewMemoryStore()
		limiterStore = memStore
	}
	limiter := ratelimit.New(limiterStore)

	// services.
	auditService := &audit.DefaultAuditService{
		Repo:   audRepo,
		Logger: logger,
	}

	var fieldCipher *crypto.Cipher
	if passphrase := config.AppConfig.EncryptionPassphrase; passphrase != "" {
		var err error
		fieldCipher, err = crypto.New(passphrase)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize field cipher: %v", err)
		}
	}

	bookingService := &booking.DefaultBookingService{
		EstRepo:     estRepo,
		BookingRepo: bkRepo,
		Audit:       auditService,
		Logger:      logger,
		Cipher:      fieldCipher,
		Now:         time.Now,
	}

	establishmentService := &establishment.DefaultEstablishmentService{
		Repo:   estRepo,
		Audit:  auditService,
		Logger: logger,
	}

	paymentService := &payment.DefaultPaymentService{
		Audit:      auditService,
		Logger:     logger,
		SuccessURL: config.AppConfig.CheckoutSuccessURL,
		CancelURL:  config.AppConfig.CheckoutCancelURL,
		ReturnURL:  config.AppConfig.PortalReturnURL,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Availability.
		GetAvailabilityHandler: handlers.GetAvailability(bookingService),

		// Booking endpoints.
		BookingLimitMiddleware: middleware.ActionLimitMiddleware(limiter, ratelimit.ActionBooking, auditService),
		CreateBookingHandler:   handlers.CreateBooking(bookingService),
		CancelBookingHandler:   handlers.CancelBooking(bookingService),
		ListBookingsHandler:    handlers.ListBookings(bookingService),

		// Establishment endpoints.
		RegisterEstablishmentHandler: handlers.RegisterEstablishment(establishmentService),
		GetEstablishmentHandler:      handlers.GetEstablishment(establishmentService),
		GetMyEstablishmentHandler:    handlers.GetMyEstablishment(establishmentService),
		UpdateEstablishmentHandler:   handlers.UpdateEstablishment(establishmentService),
		DeleteEstablishmentHandler:   handlers.DeleteEstablishment(establishmentService),
		UpdateScheduleHandler:        handlers.UpdateSchedule(establishmentService),
		UpdateStaffScheduleHandler:   handlers.UpdateStaffSchedule(establishmentService),
		UpsertServiceOfferingHandler: handlers.UpsertServiceOffering(establishmentService),
		RemoveServiceOfferingHandler: handlers.RemoveServiceOffering(establishmentService),
		UpsertStaffHandler:           handlers.UpsertStaff(establishmentService),
		RemoveStaffHandler:           handlers.RemoveStaff(establishmentService),

		// Payment endpoints.
		CreateCheckoutSessionHandler: handlers.CreateCheckoutSession(paymentService),
		CreatePortalSessionHandler:   handlers.CreatePortalSession(paymentService, establishmentService),

		// Audit trail.
		ListAuditEventsHandler: handlers.ListAuditEvents(audRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background maintenance jobs.
	maintenance := cron.InitMaintenanceWorker(audRepo, memStore)
	defer maintenance.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
