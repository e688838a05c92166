package auditRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"booklyo/models"
)

type AuditRepository interface {
	Insert(ctx context.Context, event *models.AuditEvent) error
	ListRecent(ctx context.Context, limit int64) ([]models.AuditEvent, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type mongoAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditRepo constructs a MongoDB-backed repository over the
// append-only audit collection.
func NewMongoAuditRepo(db *mongo.Database) AuditRepository {
	return &mongoAuditRepo{coll: db.Collection("audit_events")}
}
