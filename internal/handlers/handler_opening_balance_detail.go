package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/opening_balances/internal/core/ports/services"
	"github.com/SscSPs/opening_balances/internal/dto"
	"github.com/SscSPs/opening_balances/internal/middleware"
	"github.com/gin-gonic/gin"
)

// openingBalanceDetailHandler handles HTTP requests related to balance details.
type openingBalanceDetailHandler struct {
	detailService portssvc.OpeningBalanceDetailSvcFacade
}

func newOpeningBalanceDetailHandler(ds portssvc.OpeningBalanceDetailSvcFacade) *openingBalanceDetailHandler {
	return &openingBalanceDetailHandler{detailService: ds}
}

// listDetails godoc
// @Summary List the details of a balance
// @Tags opening-balance-details
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   balance_id path string true "Balance ID"
// @Success 200 {object} dto.ListOpeningBalanceDetailsResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balances/{balance_id}/details [get]
func (h *openingBalanceDetailHandler) listDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := actingUser(c, logger)
	if !ok {
		return
	}

	details, err := h.detailService.ListDetails(c.Request.Context(), tenantID, c.Param("balance_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list balance details")
		return
	}
	c.JSON(http.StatusOK, dto.ListOpeningBalanceDetailsResponse{Details: dto.ToListOpeningBalanceDetailResponse(details)})
}

// createDetail godoc
// @Summary Add a detail row to a balance
// @Tags opening-balance-details
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   balance_id path string true "Balance ID"
// @Param   detail body dto.OpeningBalanceDetailInput true "Detail"
// @Success 201 {object} dto.OpeningBalanceDetailResponse
// @Failure 403 {object} errorResponse "Period locked"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balances/{balance_id}/details [post]
func (h *openingBalanceDetailHandler) createDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	var req dto.OpeningBalanceDetailInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "CreateOpeningBalanceDetail body")
		return
	}

	detail, err := h.detailService.CreateDetail(c.Request.Context(), tenantID, c.Param("balance_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create balance detail")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOpeningBalanceDetailResponse(detail))
}

// batchUpsertDetails godoc
// @Summary Create or update many details of a balance
// @Tags opening-balance-details
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   balance_id path string true "Balance ID"
// @Param   batch body dto.BatchOpeningBalanceDetailsRequest true "Batch"
// @Success 200 {object} domain.BatchResult
// @Failure 400 {object} errorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balances/{balance_id}/details/batch [post]
func (h *openingBalanceDetailHandler) batchUpsertDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	var req dto.BatchOpeningBalanceDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "BatchOpeningBalanceDetails body")
		return
	}

	result, err := h.detailService.BatchUpsertDetails(c.Request.Context(), tenantID, c.Param("balance_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to import balance details")
		return
	}
	c.JSON(http.StatusOK, result)
}

// getDetail godoc
// @Summary Get a balance detail
// @Tags opening-balance-details
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   detail_id path string true "Detail ID"
// @Success 200 {object} dto.OpeningBalanceDetailResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balance-details/{detail_id} [get]
func (h *openingBalanceDetailHandler) getDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := actingUser(c, logger)
	if !ok {
		return
	}

	detail, err := h.detailService.GetDetail(c.Request.Context(), tenantID, c.Param("detail_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve balance detail")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpeningBalanceDetailResponse(detail))
}

// updateDetail godoc
// @Summary Update a balance detail
// @Tags opening-balance-details
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   detail_id path string true "Detail ID"
// @Param   detail body dto.UpdateOpeningBalanceDetailRequest true "Fields to update"
// @Success 200 {object} dto.OpeningBalanceDetailResponse
// @Failure 403 {object} errorResponse "Period locked"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balance-details/{detail_id} [put]
func (h *openingBalanceDetailHandler) updateDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateOpeningBalanceDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "UpdateOpeningBalanceDetail body")
		return
	}

	detail, err := h.detailService.UpdateDetail(c.Request.Context(), tenantID, c.Param("detail_id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update balance detail")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpeningBalanceDetailResponse(detail))
}

// deleteDetail godoc
// @Summary Delete a balance detail
// @Tags opening-balance-details
// @Param   tenant_id path string true "Tenant ID"
// @Param   detail_id path string true "Detail ID"
// @Success 204
// @Failure 403 {object} errorResponse "Period locked"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/opening-balance-details/{detail_id} [delete]
func (h *openingBalanceDetailHandler) deleteDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	if err := h.detailService.DeleteDetail(c.Request.Context(), tenantID, c.Param("detail_id"), userID); err != nil {
		respondError(c, logger, err, "Failed to delete balance detail")
		return
	}
	c.Status(http.StatusNoContent)
}
