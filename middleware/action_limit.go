package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booklyo/models"
	"booklyo/security/ratelimit"
	"booklyo/services/audit"
)

// ActionLimitMiddleware applies the sliding-window limiter to one route
// group, keyed by client IP. Store failures fail open: a broken cache
// must not take bookings down with it.
func ActionLimitMiddleware(limiter *ratelimit.Limiter, action ratelimit.Action, auditSvc audit.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)

		err := limiter.Allow(c.Request.Context(), action, ip)
		if err == nil {
			c.Next()
			return
		}

		var limitErr *ratelimit.LimitError
		if errors.As(err, &limitErr) {
			retrySecs := int(limitErr.RetryAfter.Round(time.Second).Seconds())
			if retrySecs < 1 {
				retrySecs = 1
			}
			auditSvc.Log(c.Request.Context(), models.AuditRateLimited, models.AuditSeverityWarning, ip, map[string]any{
				"action": string(action),
				"path":   c.FullPath(),
			})
			c.Header("Retry-After", strconv.Itoa(retrySecs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": limitErr.Error()})
			return
		}

		zap.L().Warn("rate limiter store failure, allowing request",
			zap.String("action", string(action)),
			zap.Error(err))
		c.Next()
	}
}
