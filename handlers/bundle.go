package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability
	GetAvailabilityHandler gin.HandlerFunc

	// Bookings
	BookingLimitMiddleware gin.HandlerFunc
	CreateBookingHandler   gin.HandlerFunc
	CancelBookingHandler   gin.HandlerFunc
	ListBookingsHandler    gin.HandlerFunc

	// Establishments
	RegisterEstablishmentHandler gin.HandlerFunc
	GetEstablishmentHandler      gin.HandlerFunc
	GetMyEstablishmentHandler    gin.HandlerFunc
	UpdateEstablishmentHandler   gin.HandlerFunc
	DeleteEstablishmentHandler   gin.HandlerFunc
	UpdateScheduleHandler        gin.HandlerFunc
	UpdateStaffScheduleHandler   gin.HandlerFunc
	UpsertServiceOfferingHandler gin.HandlerFunc
	RemoveServiceOfferingHandler gin.HandlerFunc
	UpsertStaffHandler           gin.HandlerFunc
	RemoveStaffHandler           gin.HandlerFunc


	// Payments
	CreateCheckoutSessionHandler gin.HandlerFunc
	CreatePortalSessionHandler   gin.HandlerFunc

	// Audit trail
	ListAuditEventsHandler gin.HandlerFunc
}
