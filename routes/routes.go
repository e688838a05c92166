package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"booklyo/handlers"
	"booklyo/middleware"
)

// RegisterEstablishmentRoutes registers the profile, catalogue, staff
// and schedule endpoints. Reads are public; writes require auth.
func RegisterEstablishmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/establishments")
	{
		// Public: the booking page needs the profile and catalogue.
		api.GET("/:id", hb.GetEstablishmentHandler)
		api.GET("/:id/availability", hb.GetAvailabilityHandler)

		// Protected routes (require authentication).
		protected := api.Group("")
		protected.Use(middleware.FirebaseAuthMiddleware())
		protected.POST("", hb.RegisterEstablishmentHandler)
		protected.GET("/me", hb.GetMyEstablishmentHandler)
		protected.PUT("/:id", hb.UpdateEstablishmentHandler)
		protected.DELETE("/:id", hb.DeleteEstablishmentHandler)
		protected.PUT("/:id/schedule", hb.UpdateScheduleHandler)
		protected.PUT("/:id/staff/:staffId/schedule", hb.UpdateStaffScheduleHandler)
		protected.POST("/:id/services", hb.UpsertServiceOfferingHandler)
		protected.DELETE("/:id/services/:serviceId", hb.RemoveServiceOfferingHandler)
		protected.POST("/:id/staff", hb.UpsertStaffHandler)
		protected.DELETE("/:id/staff/:staffId", hb.RemoveStaffHandler)
		protected.GET("/:id/bookings", hb.ListBookingsHandler)
	}
}

// RegisterBookingRoutes sets up the public booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.BookingLimitMiddleware, hb.CreateBookingHandler)
		api.DELETE("/:id", hb.BookingLimitMiddleware, hb.CancelBookingHandler)
	}
}

// RegisterPaymentRoutes sets up the subscription endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.FirebaseAuthMiddleware())
		api.POST("/checkout", hb.CreateCheckoutSessionHandler)
		api.POST("/portal", hb.CreatePortalSessionHandler)
	}
}

// RegisterAuditRoutes exposes the audit trail to authenticated callers.
func RegisterAuditRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/audit")
	{
		api.Use(middleware.FirebaseAuthMiddleware())
		api.GET("", hb.ListAuditEventsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Booklyo"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterEstablishmentRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAuditRoutes(r, hb)
	RegisterHealthRoute(r)
}
