package booking

import (
	"context"

	"booklyo/models"
)

// AvailabilityRequest asks for the bookable start times of one entity
// (establishment owner, or one staff member) for one service on one day.
type AvailabilityRequest struct {
	EstablishmentID string
	StaffID         string // empty = the owner
	ServiceID       string
	Date            string // "2006-01-02" in the establishment's timezone
}

// AvailabilityResponse lists start times in the establishment's local
// clock, ascending.
type AvailabilityResponse struct {
	Date     string   `json:"date"`
	Timezone string   `json:"timezone"`
	Duration int      `json:"duration"`
	Slots    []string `json:"slots"` // "HH:MM"
}

// CreateBookingRequest is the booking form payload.
type CreateBookingRequest struct {
	EstablishmentID string
	StaffID         string
	ServiceID       string
	Date            string // "2006-01-02"
	Start           string // "HH:MM"
	ClientName      string
	ClientEmail     string
	ClientPhone     string
}

// ListBookingsRequest filters one entity's bookings by local date.
// Dates are inclusive and interpreted in the establishment's timezone,
// the same way availability dates are.
type ListBookingsRequest struct {
	EstablishmentID string
	StaffID         string
	FromDate        string // "2006-01-02"; empty = today
	ToDate          string // "2006-01-02"; empty = a week from FromDate
}

type BookingService interface {
	GetAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, actor string) error
	ListBookings(ctx context.Context, req ListBookingsRequest) ([]models.Booking, error)
}
