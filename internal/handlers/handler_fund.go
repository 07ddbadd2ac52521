package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crickclub/club_funds_app/internal/apperrors"
	"github.com/crickclub/club_funds_app/internal/core/domain"
	portssvc "github.com/crickclub/club_funds_app/internal/core/ports/services"
	"github.com/crickclub/club_funds_app/internal/dto"
	"github.com/crickclub/club_funds_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fundHandler handles HTTP requests for funds and fund payments.
type fundHandler struct {
	fundService    portssvc.FundSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

func newFundHandler(fs portssvc.FundSvcFacade, ps portssvc.PaymentSvcFacade) *fundHandler {
	return &fundHandler{fundService: fs, paymentService: ps}
}

// registerFundRoutes registers routes related to funds. Mutations require the
// admin or fund-manager role.
func registerFundRoutes(rg *gin.RouterGroup, fundService portssvc.FundSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newFundHandler(fundService, paymentService)

	funds := rg.Group("/funds")
	{
		funds.GET("/penalties", h.playerPenalties)

		managed := funds.Group("", middleware.RequireRoles(domain.RoleFundManager))
		managed.POST("", h.saveFund)
		managed.DELETE("", h.deleteFund)
		managed.PUT("/payment", h.setPaymentStatus)
		managed.PUT("/payment/bulk", h.setPaymentStatusBulk)
	}
}

// saveFund godoc
// @Summary Create or modify a fund
// @Description Creates a recurring due; modifies it in place when id is present
// @Tags funds
// @Accept  json
// @Produce  json
// @Param   fund body dto.SaveFundRequest true "Fund details"
// @Success 200 {object} dto.SaveFundResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Fund not found"
// @Security BearerAuth
// @Router /funds [post]
func (h *fundHandler) saveFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveFund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	fund, doc, err := h.fundService.SaveFund(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error saving fund", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Fund not found for modify")
			c.JSON(http.StatusNotFound, gin.H{"error": "Fund not found"})
		} else {
			logger.Error("Failed to save fund in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save fund"})
		}
		return
	}

	logger.Info("Fund saved successfully", slog.String("fund_id", fund.FundID))
	c.JSON(http.StatusOK, dto.SaveFundResponse{
		Fund:  dto.ToFundResponse(fund),
		Funds: dto.ToFundResponses(doc.FundList),
	})
}

// deleteFund godoc
// @Summary Delete a fund
// @Description Removes a fund, optionally settling supplied amounts against the balance
// @Tags funds
// @Accept  json
// @Produce  json
// @Param   fund body dto.DeleteFundRequest true "Delete details"
// @Success 200 {object} dto.FundsBalanceResponse
// @Failure 404 {object} map[string]string "Fund not found"
// @Security BearerAuth
// @Router /funds [delete]
func (h *fundHandler) deleteFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DeleteFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DeleteFund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.fundService.DeleteFund(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Fund not found for delete")
			c.JSON(http.StatusNotFound, gin.H{"error": "Fund not found"})
		} else {
			logger.Error("Failed to delete fund in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fund"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FundsBalanceResponse{
		Funds:        dto.ToFundResponses(doc.FundList),
		TotalBalance: doc.TotalBalance,
	})
}

// setPaymentStatus godoc
// @Summary Set one player's fund payment status
// @Description Applies a balance delta only on an actual paid/unpaid transition
// @Tags funds
// @Accept  json
// @Produce  json
// @Param   payment body dto.SetPaymentStatusRequest true "Status change"
// @Success 200 {object} dto.FundsBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Fund not found"
// @Security BearerAuth
// @Router /funds/payment [put]
func (h *fundHandler) setPaymentStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetPaymentStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.paymentService.SetPaymentStatus(c.Request.Context(), req.FundID, req.PlayerID, domain.PaymentStatus(req.Status))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Fund not found for payment status change")
			c.JSON(http.StatusNotFound, gin.H{"error": "Fund not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error changing payment status", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to change payment status in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change payment status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FundsBalanceResponse{
		Funds:        dto.ToFundResponses(doc.FundList),
		TotalBalance: doc.TotalBalance,
	})
}

// setPaymentStatusBulk godoc
// @Summary Set one player's payment status across funds
// @Description Sums the per-fund deltas, applies them once, floors the balance at zero
// @Tags funds
// @Accept  json
// @Produce  json
// @Param   payment body dto.BulkPaymentStatusRequest true "Bulk status change"
// @Success 200 {object} dto.FundsBalanceResponse
// @Failure 404 {object} map[string]string "A fund was not found"
// @Security BearerAuth
// @Router /funds/payment/bulk [put]
func (h *fundHandler) setPaymentStatusBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetPaymentStatusBulk", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.paymentService.SetPaymentStatusAcrossFunds(c.Request.Context(), req.PlayerID, req.FundIDs, domain.PaymentStatus(req.Status), req.Amounts)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Fund not found for bulk payment status change")
			c.JSON(http.StatusNotFound, gin.H{"error": "Fund not found"})
		} else {
			logger.Error("Failed to change bulk payment status in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change payment status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FundsBalanceResponse{
		Funds:        dto.ToFundResponses(doc.FundList),
		TotalBalance: doc.TotalBalance,
	})
}

// playerPenalties godoc
// @Summary Get one player's settle-up amounts
// @Description Lists principal plus accrued penalty per unpaid fund for a player
// @Tags funds
// @Produce  json
// @Param   playerId query string true "Player ID"
// @Success 200 {object} dto.PlayerPenaltiesResponse
// @Failure 400 {object} map[string]string "Missing playerId"
// @Security BearerAuth
// @Router /funds/penalties [get]
func (h *fundHandler) playerPenalties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	playerID := c.Query("playerId")

	resp, err := h.fundService.PlayerPenalties(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error computing penalties", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute penalties in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute penalties"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
