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

// matchExpenseHandler handles HTTP requests for match expenses and their
// settlements.
type matchExpenseHandler struct {
	matchExpenseService portssvc.MatchExpenseSvcFacade
}

func newMatchExpenseHandler(ms portssvc.MatchExpenseSvcFacade) *matchExpenseHandler {
	return &matchExpenseHandler{matchExpenseService: ms}
}

// registerMatchExpenseRoutes registers routes related to match expenses.
// Mutations require the admin or match-fund-manager role.
func registerMatchExpenseRoutes(rg *gin.RouterGroup, matchExpenseService portssvc.MatchExpenseSvcFacade) {
	h := newMatchExpenseHandler(matchExpenseService)

	matchExpenses := rg.Group("/match-expenses", middleware.RequireRoles(domain.RoleMatchFundManager))
	{
		matchExpenses.POST("", h.saveMatchExpense)
		matchExpenses.DELETE("", h.deleteMatchExpense)
		matchExpenses.PUT("/settlement", h.saveSettlement)
		matchExpenses.POST("/settlement/compute", h.computeSettlement)
	}
}

// saveMatchExpense godoc
// @Summary Create or modify a match expense
// @Description Splits the fee equally over the selected players; modifies in place when id is present
// @Tags match-expenses
// @Accept  json
// @Produce  json
// @Param   matchExpense body dto.SaveMatchExpenseRequest true "Match expense details"
// @Success 200 {object} dto.MatchExpenseListResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Match expense not found"
// @Security BearerAuth
// @Router /match-expenses [post]
func (h *matchExpenseHandler) saveMatchExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveMatchExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveMatchExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	_, doc, err := h.matchExpenseService.SaveMatchExpense(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error saving match expense", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Match expense not found for modify")
			c.JSON(http.StatusNotFound, gin.H{"error": "Match expense not found"})
		} else {
			logger.Error("Failed to save match expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save match expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MatchExpenseListResponse{
		MatchExpenseList: dto.ToMatchExpenseResponses(doc.MatchExpenseList),
	})
}

// deleteMatchExpense godoc
// @Summary Delete a match expense
// @Description Removes a match expense by id; no balance effect
// @Tags match-expenses
// @Accept  json
// @Produce  json
// @Param   matchExpense body dto.DeleteMatchExpenseRequest true "Delete details"
// @Success 200 {object} dto.MatchExpenseListResponse
// @Failure 404 {object} map[string]string "Match expense not found"
// @Security BearerAuth
// @Router /match-expenses [delete]
func (h *matchExpenseHandler) deleteMatchExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DeleteMatchExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DeleteMatchExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.matchExpenseService.DeleteMatchExpense(c.Request.Context(), req.MatchExpenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Match expense not found for delete")
			c.JSON(http.StatusNotFound, gin.H{"error": "Match expense not found"})
		} else {
			logger.Error("Failed to delete match expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete match expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MatchExpenseListResponse{
		MatchExpenseList: dto.ToMatchExpenseResponses(doc.MatchExpenseList),
	})
}

// saveSettlement godoc
// @Summary Save settlement details
// @Description Replaces only the playersExpensesDetails field of the targeted match expense
// @Tags match-expenses
// @Accept  json
// @Produce  json
// @Param   settlement body dto.SaveSettlementRequest true "Settlement details"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} map[string]string "Match expense not found"
// @Security BearerAuth
// @Router /match-expenses/settlement [put]
func (h *matchExpenseHandler) saveSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.matchExpenseService.SaveSettlementDetails(c.Request.Context(), req.MatchExpenseID, req.PlayersExpensesDetails.ToDomainSettlement())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Match expense not found for settlement save")
			c.JSON(http.StatusNotFound, gin.H{"error": "Match expense not found"})
		} else {
			logger.Error("Failed to save settlement in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settlement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// computeSettlement godoc
// @Summary Compute a settlement table
// @Description Recomputes the owed/paid/net table for a settlement draft without persisting it
// @Tags match-expenses
// @Accept  json
// @Produce  json
// @Param   settlement body dto.ComputeSettlementRequest true "Settlement draft"
// @Success 200 {object} dto.ComputeSettlementResponse
// @Failure 404 {object} map[string]string "Match expense not found"
// @Security BearerAuth
// @Router /match-expenses/settlement/compute [post]
func (h *matchExpenseHandler) computeSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ComputeSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ComputeSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	misc, summary, err := h.matchExpenseService.ComputeSettlement(c.Request.Context(), req.MatchExpenseID, req.PlayersExpensesDetails.ToDomainSettlement())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Match expense not found for settlement compute")
			c.JSON(http.StatusNotFound, gin.H{"error": "Match expense not found"})
		} else {
			logger.Error("Failed to compute settlement in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute settlement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ComputeSettlementResponse{Misc: misc, Summary: summary})
}
