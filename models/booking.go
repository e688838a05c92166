package models

import "time"

// Booking statuses. Bookings are soft-cancelled, never deleted; a
// reschedule is a cancel plus a new booking.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a confirmed appointment. The service fields are a
// denormalized snapshot taken at booking time so later catalogue edits
// do not rewrite history.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	EstablishmentID string    `bson:"establishmentId" json:"establishmentId"`
	StaffID         string    `bson:"staffId,omitempty" json:"staffId,omitempty"` // empty when booked against the owner
	ServiceID       string    `bson:"serviceId" json:"serviceId"`
	ServiceName     string    `bson:"serviceName" json:"serviceName"`
	Price           float64   `bson:"price" json:"price"`
	Duration        int       `bson:"duration" json:"duration"` // minutes
	Date            time.Time `bson:"date" json:"date"`         // absolute start timestamp
	ClientName      string    `bson:"clientName" json:"clientName"`
	ClientEmail     string    `bson:"clientEmail" json:"clientEmail"`
	ClientPhone     string    `bson:"clientPhone,omitempty" json:"clientPhone,omitempty"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// End returns the booking's end timestamp.
func (b Booking) End() time.Time {
	return b.Date.Add(time.Duration(b.Duration) * time.Minute)
}
