package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booklyo/services/booking"
	"booklyo/utils"
)

// GetAvailability returns the open start times for one entity, service
// and day. Query params: serviceId (required), date (required,
// YYYY-MM-DD), staffId (optional, empty targets the owner's pool).
func GetAvailability(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := booking.AvailabilityRequest{
			EstablishmentID: c.Param("id"),
			StaffID:         c.Query("staffId"),
			ServiceID:       c.Query("serviceId"),
			Date:            c.Query("date"),
		}
		if req.ServiceID == "" || req.Date == "" {
			utils.JSONError(c, http.StatusBadRequest, "serviceId and date are required", "")
			return
		}

		resp, err := svc.GetAvailability(c.Request.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrEstablishmentNotFound),
				errors.Is(err, booking.ErrServiceNotFound):
				utils.JSONError(c, http.StatusNotFound, err.Error(), "")
			case errors.Is(err, booking.ErrInvalidInput):
				utils.JSONError(c, http.StatusBadRequest, "invalid availability request", err.Error())
			default:
				utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
			}
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
