package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booklyo/middleware"
	"booklyo/services/booking"
	"booklyo/utils"
)

// CreateBooking books one slot. Public endpoint: the client identifies
// themselves via the form fields, not an account.
func CreateBooking(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			EstablishmentID string `json:"establishmentId"`
			StaffID         string `json:"staffId"`
			ServiceID       string `json:"serviceId"`
			Date            string `json:"date"`
			Start           string `json:"start"`
			ClientName      string `json:"clientName"`
			ClientEmail     string `json:"clientEmail"`
			ClientPhone     string `json:"clientPhone"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		created, err := svc.CreateBooking(c.Request.Context(), booking.CreateBookingRequest{
			EstablishmentID: input.EstablishmentID,
			StaffID:         input.StaffID,
			ServiceID:       input.ServiceID,
			Date:            input.Date,
			Start:           input.Start,
			ClientName:      input.ClientName,
			ClientEmail:     input.ClientEmail,
			ClientPhone:     input.ClientPhone,
		})
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrSlotUnavailable):
				utils.JSONError(c, http.StatusConflict, "slot is no longer available", "")
			case errors.Is(err, booking.ErrEstablishmentNotFound),
				errors.Is(err, booking.ErrServiceNotFound):
				utils.JSONError(c, http.StatusNotFound, err.Error(), "")
			case errors.Is(err, booking.ErrInvalidInput):
				utils.JSONError(c, http.StatusBadRequest, "invalid booking input", err.Error())
			default:
				utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", err.Error())
			}
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// CancelBooking marks a booking cancelled, freeing its slot.
func CancelBooking(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		actor := middleware.UID(c)
		if actor == "" {
			actor = middleware.ClientIP(c)
		}

		if err := svc.CancelBooking(c.Request.Context(), id, actor); err != nil {
			if errors.Is(err, booking.ErrBookingNotFound) {
				utils.JSONError(c, http.StatusNotFound, "booking not found", "")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
	}
}

// ListBookings returns the bookings of one entity over a date range.
// Query params: staffId (optional), from, to (YYYY-MM-DD inclusive,
// optional; defaults to the coming week in the establishment's
// timezone).
func ListBookings(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svc.ListBookings(c.Request.Context(), booking.ListBookingsRequest{
			EstablishmentID: c.Param("id"),
			StaffID:         c.Query("staffId"),
			FromDate:        c.Query("from"),
			ToDate:          c.Query("to"),
		})
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrEstablishmentNotFound):
				utils.JSONError(c, http.StatusNotFound, err.Error(), "")
			case errors.Is(err, booking.ErrInvalidInput):
				utils.JSONError(c, http.StatusBadRequest, "invalid date range", err.Error())
			default:
				utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	}
}
