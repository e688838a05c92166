package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"booklyo/config"
)

func getClientIP(c *gin.Context) string {
	// Forwarding headers are spoofable; only trust them behind a proxy
	// we control.
	if config.AppConfig.TrustProxy {
		// X-Forwarded-For may contain a comma-separated list of IPs.
		// Use the first one.
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			ips := strings.Split(xff, ",")
			if len(ips) > 0 && ips[0] != "" {
				return strings.TrimSpace(ips[0])
			}
		}
		if xri := c.GetHeader("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	// RemoteAddr might be in "ip:port" format; strip the port if present.
	ip := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}

// ClientIP exposes the resolved client address to handlers.
func ClientIP(c *gin.Context) string {
	return getClientIP(c)
}
