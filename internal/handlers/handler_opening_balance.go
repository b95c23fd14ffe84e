package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/opening_balances/internal/core/ports/services"
	"github.com/SscSPs/opening_balances/internal/dto"
	"github.com/SscSPs/opening_balances/internal/middleware"
	"github.com/gin-gonic/gin"
)

// openingBalanceHandler handles HTTP requests related to opening balances.
type openingBalanceHandler struct {
	balanceService portssvc.OpeningBalanceSvcFacade
}

func newOpeningBalanceHandler(bs portssvc.OpeningBalanceSvcFacade) *openingBalanceHandler {
	return &openingBalanceHandler{balanceService: bs}
}

// RegisterOpeningBalanceRoutes registers balance and balance-detail routes under a tenant-scoped group.
func RegisterOpeningBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.OpeningBalanceSvcFacade, detailService portssvc.OpeningBalanceDetailSvcFacade) {
	registerValidators()
	h := newOpeningBalanceHandler(balanceService)
	dh := newOpeningBalanceDetailHandler(detailService)

	balances := rg.Group("/opening-balances")
	{
		balances.POST("", h.createBalance)
		balances.GET("", h.listBalances)
		balances.POST("/batch", h.batchUpsertBalances)
		balances.GET("/:balance_id", h.getBalance)
		balances.PUT("/:balance_id", h.updateBalance)
		balances.DELETE("/:balance_id", h.deleteBalance)

		balances.GET("/:balance_id/details", dh.listDetails)
		balances.POST("/:balance_id/details", dh.createDetail)
		balances.POST("/:balance_id/details/batch", dh.batchUpsertDetails)
	}

	details := rg.Group("/opening-balance-details")
	{
		details.GET("/:detail_id", dh.getDetail)
		details.PUT("/:detail_id", dh.updateDetail)
		details.DELETE("/:detail_id", dh.deleteDetail)
	}
}

// createBalance godoc
// @Summary Create or update an opening balance
// @Description A balance is keyed by period, account number and currency; posting an existing key updates it.
// @Tags opening-balances
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   balance body dto.CreateOpeningBalanceRequest true "Balance"
// @Success 201 {object} dto.OpeningBalanceResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse "Period locked"
// @Failure 404 {object} errorResponse "Period not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balances [post]
func (h *openingBalanceHandler) createBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	var req dto.CreateOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "CreateOpeningBalance body")
		return
	}

	balance, err := h.balanceService.CreateBalance(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to save opening balance")
		return
	}

	logger.Info("Opening balance saved", slog.String("balance_id", balance.BalanceID))
	c.JSON(http.StatusCreated, dto.ToOpeningBalanceResponse(balance))
}

// listBalances godoc
// @Summary List opening balances
// @Tags opening-balances
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   periodId query string false "Period ID"
// @Param   currencyId query string false "Currency code"
// @Param   accountNumber query string false "Account number (substring, case-insensitive)"
// @Param   hasDetails query bool false "Has details"
// @Param   limit query int false "Limit" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListOpeningBalancesResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balances [get]
func (h *openingBalanceHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := actingUser(c, logger)
	if !ok {
		return
	}

	var params dto.ListOpeningBalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "ListOpeningBalances query")
		return
	}

	balances, total, err := h.balanceService.ListBalances(c.Request.Context(), tenantID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list opening balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOpeningBalancesResponse(balances, total, params))
}

// batchUpsertBalances godoc
// @Summary Import many opening balances in one transaction
// @Description In fail-fast mode the first failing item rolls back the whole batch.
// @Description In continue-on-error mode failing items are reported and the rest is committed.
// @Tags opening-balances
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   batch body dto.BatchOpeningBalancesRequest true "Batch"
// @Success 200 {object} domain.BatchResult
// @Failure 400 {object} errorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balances/batch [post]
func (h *openingBalanceHandler) batchUpsertBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	var req dto.BatchOpeningBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "BatchOpeningBalances body")
		return
	}

	result, err := h.balanceService.BatchUpsertBalances(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to import opening balances")
		return
	}
	c.JSON(http.StatusOK, result)
}

// getBalance godoc
// @Summary Get an opening balance with its details
// @Tags opening-balances
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   balance_id path string true "Balance ID"
// @Success 200 {object} dto.OpeningBalanceResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balances/{balance_id} [get]
func (h *openingBalanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := actingUser(c, logger)
	if !ok {
		return
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), tenantID, c.Param("balance_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve opening balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpeningBalanceResponse(balance))
}

// updateBalance godoc
// @Summary Update an opening balance
// @Tags opening-balances
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   balance_id path string true "Balance ID"
// @Param   balance body dto.UpdateOpeningBalanceRequest true "Fields to update"
// @Success 200 {object} dto.OpeningBalanceResponse
// @Failure 403 {object} errorResponse "Period locked"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balances/{balance_id} [put]
func (h *openingBalanceHandler) updateBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "UpdateOpeningBalance body")
		return
	}

	balance, err := h.balanceService.UpdateBalance(c.Request.Context(), tenantID, c.Param("balance_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update opening balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpeningBalanceResponse(balance))
}

// deleteBalance godoc
// @Summary Delete an opening balance and its details
// @Tags opening-balances
// @Param   tenant_id path string true "Tenant ID"
// @Param   balance_id path string true "Balance ID"
// @Success 204
// @Failure 403 {object} errorResponse "Period locked"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balances/{balance_id} [delete]
func (h *openingBalanceHandler) deleteBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	if err := h.balanceService.DeleteBalance(c.Request.Context(), tenantID, c.Param("balance_id"), userID); err != nil {
		respondError(c, logger, err, "Failed to delete opening balance")
		return
	}
	c.Status(http.StatusNoContent)
}
