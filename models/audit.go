package models

import "time"

// Audit event severities.
const (
	AuditSeverityInfo     = "info"
	AuditSeverityWarning  = "warning"
	AuditSeverityCritical = "critical"
)

// Common audit event types.
const (
	AuditBookingCreated   = "booking_created"
	AuditBookingCancelled = "booking_cancelled"
	AuditScheduleUpdated  = "schedule_updated"
	AuditRateLimited      = "rate_limited"
	AuditCheckoutStarted  = "checkout_started"
)

// AuditEvent is one record in the append-only audit trail.
type AuditEvent struct {
	ID        string         `bson:"id" json:"id"`
	Type      string         `bson:"type" json:"type"`
	Severity  string         `bson:"severity" json:"severity"`
	Actor     string         `bson:"actor,omitempty" json:"actor,omitempty"` // uid, email or client IP
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}
