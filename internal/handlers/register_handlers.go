package handlers

import (
	portssvc "github.com/SscSPs/opening_balances/internal/core/ports/services"
	"github.com/SscSPs/opening_balances/internal/middleware"
	"github.com/SscSPs/opening_balances/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	health HealthChecker,
) {
	registerHealthRoutes(r, health)
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
// Every business route is scoped to a tenant taken from the path.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	tenant := v1.Group("/tenants/:"+middleware.TenantParam, middleware.TenantScope())

	RegisterOpeningPeriodRoutes(tenant, services.Period)
	RegisterOpeningBalanceRoutes(tenant, services.Balance, services.Detail)
}
