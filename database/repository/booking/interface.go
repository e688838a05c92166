package bookingRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"booklyo/models"
)

// ErrNotFound is returned when no booking matches the filter.
var ErrNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// ConfirmedStartsForDay returns the start timestamps of confirmed
	// bookings for one entity pool on the given day. The owner pool and
	// each staff member's pool are separate; they are never merged.
	ConfirmedStartsForDay(ctx context.Context, establishmentID, staffID string, dayStart, dayEnd time.Time) ([]time.Time, error)

	ListForEntity(ctx context.Context, establishmentID, staffID string, from, to time.Time) ([]models.Booking, error)
	Cancel(ctx context.Context, id string) error

	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB-backed repository.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{coll: db.Collection("bookings")}
}
