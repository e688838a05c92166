package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"booklyo/config"
	auditRepo "booklyo/database/repository/audit"
	"booklyo/security/ratelimit"
)

// InitMaintenanceWorker runs the scheduled housekeeping jobs in the
// background: the nightly audit retention sweep and the hourly rate
// limiter prune. Returns the scheduler so main can Stop it on shutdown.
func InitMaintenanceWorker(audit auditRepo.AuditRepository, memStore *ratelimit.MemoryStore) *cron.Cron {
	c := cron.New()

	// Nightly at 03:15: drop audit events past the retention window.
	if _, err := c.AddFunc("15 3 * * *", func() {
		retentionDays := config.AppConfig.AuditRetentionDays
		if retentionDays <= 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		deleted, err := audit.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			log.Printf("[RetentionWorker] audit sweep failed: %v", err)
			return
		}
		log.Printf("[RetentionWorker] removed %d audit events older than %s", deleted, cutoff.Format("2006-01-02"))
	}); err != nil {
		log.Printf("[RetentionWorker] failed to schedule audit sweep: %v", err)
	}

	// Hourly: drop stale in-memory rate limiter entries. Redis-backed
	// deployments expire keys on their own.
	if memStore != nil {
		if _, err := c.AddFunc("@hourly", func() {
			memStore.Prune(time.Now(), 24*time.Hour)
		}); err != nil {
			log.Printf("[RetentionWorker] failed to schedule limiter prune: %v", err)
		}
	}

	c.Start()
	return c
}
