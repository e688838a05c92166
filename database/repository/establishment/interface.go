package establishmentRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"booklyo/models"
)

// ErrNotFound is returned when no establishment matches the filter.
var ErrNotFound = errors.New("establishment not found")

type EstablishmentRepository interface {
	Create(ctx context.Context, est *models.Establishment) error
	GetByID(ctx context.Context, id string) (*models.Establishment, error)
	GetByOwnerUID(ctx context.Context, uid string) (*models.Establishment, error)
	Update(ctx context.Context, est *models.Establishment) error
	Delete(ctx context.Context, id string) error

	UpdateSchedule(ctx context.Context, id string, ws models.WeeklySchedule) error
	UpdateStaffSchedule(ctx context.Context, id, staffID string, ws models.WeeklySchedule) error
	UpsertService(ctx context.Context, id string, svc models.Service) error
	RemoveService(ctx context.Context, id, serviceID string) error
	UpsertStaff(ctx context.Context, id string, member models.StaffMember) error
	RemoveStaff(ctx context.Context, id, staffID string) error

	EnsureIndexes(ctx context.Context) error
}

type mongoEstablishmentRepo struct {
	coll *mongo.Collection
}

// NewMongoEstablishmentRepo constructs a MongoDB-backed repository.
func NewMongoEstablishmentRepo(db *mongo.Database) EstablishmentRepository {
	return &mongoEstablishmentRepo{coll: db.Collection("establishments")}
}
