package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TenantParam is the route parameter naming the tenant.
const TenantParam = "tenant_id"

// TenantScope reads the tenant id from the route and stores it, and a tenant-aware logger,
// in the request context.
func TenantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := strings.TrimSpace(c.Param(TenantParam))
		if tenantID == "" {
			GetLoggerFromCtx(c.Request.Context()).Warn("Tenant id missing from path")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Tenant ID is required"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With(slog.String("tenant_id", tenantID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
