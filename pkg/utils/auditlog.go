package utils

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/internal/domain/syslog"
)

// RequestContext returns the request context carrying the caller IP and
// User-Agent for system log entries.
func RequestContext(c *gin.Context) context.Context {
	return syslog.WithMeta(c.Request.Context(), syslog.Meta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
}
