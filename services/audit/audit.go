// Package audit appends structured event records to the append-only
// audit collection. Logging is best-effort: a failure to write
// telemetry must never block the action being audited.
package audit

import (
	"context"

	"go.uber.org/zap"

	auditRepo "booklyo/database/repository/audit"
	"booklyo/models"
)

type AuditService interface {
	Log(ctx context.Context, eventType, severity, actor string, metadata map[string]any)
}

type DefaultAuditService struct {
	Repo   auditRepo.AuditRepository
	Logger *zap.Logger
}

// Log records one audit event. Failures are written to the local log
// and swallowed.
func (s *DefaultAuditService) Log(ctx context.Context, eventType, severity, actor string, metadata map[string]any) {
	event := &models.AuditEvent{
		Type:     eventType,
		Severity: severity,
		Actor:    actor,
		Metadata: metadata,
	}
	if err := s.Repo.Insert(ctx, event); err != nil {
		s.Logger.Warn("audit write failed",
			zap.String("type", eventType),
			zap.String("actor", actor),
			zap.Error(err))
	}
}

// Nop discards every event; used where audit wiring is optional.
type Nop struct{}

func (Nop) Log(context.Context, string, string, string, map[string]any) {}
