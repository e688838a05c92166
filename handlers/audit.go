package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	auditRepo "booklyo/database/repository/audit"
	"booklyo/utils"
)

const maxAuditPage = 500

// ListAuditEvents returns the most recent audit trail entries, newest
// first. Query param: limit (default 50, capped at 500).
func ListAuditEvents(repo auditRepo.AuditRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := int64(50)
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 1 {
				utils.JSONError(c, http.StatusBadRequest, "invalid limit", "")
				return
			}
			limit = n
		}
		if limit > maxAuditPage {
			limit = maxAuditPage
		}

		events, err := repo.ListRecent(c.Request.Context(), limit)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to list audit events", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}
