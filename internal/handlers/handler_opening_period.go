package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/opening_balances/internal/core/ports/services"
	"github.com/SscSPs/opening_balances/internal/dto"
	"github.com/SscSPs/opening_balances/internal/middleware"
	"github.com/gin-gonic/gin"
)

// openingPeriodHandler handles HTTP requests related to opening periods.
type openingPeriodHandler struct {
	periodService portssvc.OpeningPeriodSvcFacade
}

func newOpeningPeriodHandler(ps portssvc.OpeningPeriodSvcFacade) *openingPeriodHandler {
	return &openingPeriodHandler{periodService: ps}
}

// RegisterOpeningPeriodRoutes registers the period routes under a tenant-scoped group.
func RegisterOpeningPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.OpeningPeriodSvcFacade) {
	registerValidators()
	h := newOpeningPeriodHandler(periodService)

	periods := rg.Group("/opening-periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:period_id", h.getPeriod)
		periods.PUT("/:period_id", h.updatePeriod)
		periods.DELETE("/:period_id", h.deletePeriod)
		periods.POST("/:period_id/lock", h.lockPeriod)
		periods.POST("/:period_id/unlock", h.unlockPeriod)
		periods.GET("/:period_id/validation", h.validatePeriod)
		periods.GET("/:period_id/summary", h.getSummary)
	}
}

// createPeriod godoc
// @Summary Create an opening period
// @Tags opening-periods
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period body dto.CreateOpeningPeriodRequest true "Period"
// @Success 201 {object} dto.OpeningPeriodResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "Name already used"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-periods [post]
func (h *openingPeriodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	var req dto.CreateOpeningPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "CreateOpeningPeriod body")
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create opening period")
		return
	}

	logger.Info("Opening period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToOpeningPeriodResponse(period))
}

// listPeriods godoc
// @Summary List opening periods
// @Tags opening-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.ListOpeningPeriodsResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-periods [get]
func (h *openingPeriodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := actingUser(c, logger)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, logger, err, "Failed to list opening periods")
		return
	}
	c.JSON(http.StatusOK, dto.ListOpeningPeriodsResponse{Periods: dto.ToListOpeningPeriodResponse(periods)})
}

// getPeriod godoc
// @Summary Get an opening period
// @Tags opening-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.OpeningPeriodResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-periods/{period_id} [get]
func (h *openingPeriodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := actingUser(c, logger)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriod(c.Request.Context(), tenantID, c.Param("period_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve opening period")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpeningPeriodResponse(period))
}

// updatePeriod godoc
// @Summary Update an unlocked opening period
// @Tags opening-periods
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Param   period body dto.UpdateOpeningPeriodRequest true "Fields to update"
// @Success 200 {object} dto.OpeningPeriodResponse
// @Failure 403 {object} errorResponse "Period locked"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-periods/{period_id} [put]
func (h *openingPeriodHandler) updatePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateOpeningPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "UpdateOpeningPeriod body")
		return
	}

	period, err := h.periodService.UpdatePeriod(c.Request.Context(), tenantID, c.Param("period_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update opening period")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpeningPeriodResponse(period))
}

// deletePeriod godoc
// @Summary Delete an unlocked opening period with its balances and details
// @Tags opening-periods
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 204
// @Failure 403 {object} errorResponse "Period locked"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-periods/{period_id} [delete]
func (h *openingPeriodHandler) deletePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	if err := h.periodService.DeletePeriod(c.Request.Context(), tenantID, c.Param("period_id"), userID); err != nil {
		respondError(c, logger, err, "Failed to delete opening period")
		return
	}
	c.Status(http.StatusNoContent)
}

// lockPeriod godoc
// @Summary Validate and lock an opening period
// @Description Fails with 400 and the validation errors when any balance does not reconcile with its details.
// @Tags opening-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.OpeningPeriodResponse
// @Failure 400 {object} errorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-periods/{period_id}/lock [post]
func (h *openingPeriodHandler) lockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	period, err := h.periodService.LockPeriod(c.Request.Context(), tenantID, c.Param("period_id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to lock opening period")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpeningPeriodResponse(period))
}

// unlockPeriod godoc
// @Summary Unlock an opening period
// @Tags opening-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.OpeningPeriodResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-periods/{period_id}/unlock [post]
func (h *openingPeriodHandler) unlockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	period, err := h.periodService.UnlockPeriod(c.Request.Context(), tenantID, c.Param("period_id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to unlock opening period")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpeningPeriodResponse(period))
}

// validatePeriod godoc
// @Summary Run the lock checks without locking
// @Tags opening-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} domain.ValidationResult
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-periods/{period_id}/validation [get]
func (h *openingPeriodHandler) validatePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := actingUser(c, logger)
	if !ok {
		return
	}

	result, err := h.periodService.ValidatePeriod(c.Request.Context(), tenantID, c.Param("period_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to validate opening period")
		return
	}
	c.JSON(http.StatusOK, result)
}

// getSummary godoc
// @Summary Total the balances of a period
// @Tags opening-periods
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodSummaryResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-periods/{period_id}/summary [get]
func (h *openingPeriodHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := actingUser(c, logger)
	if !ok {
		return
	}

	summary, err := h.periodService.GetSummary(c.Request.Context(), tenantID, c.Param("period_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to summarize opening period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(summary))
}
