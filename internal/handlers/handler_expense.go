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

// expenseHandler handles HTTP requests for one-off club expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers routes related to expenses. Mutations
// require the admin or fund-manager role.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses", middleware.RequireRoles(domain.RoleFundManager))
	{
		expenses.POST("", h.saveExpense)
		expenses.DELETE("", h.deleteExpense)
	}
}

// saveExpense godoc
// @Summary Add or modify an expense
// @Description Adds a club expense; modifies it in place when id is present
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.SaveExpenseRequest true "Expense details"
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) saveExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.expenseService.SaveExpense(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error saving expense", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense not found for modify")
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			logger.Error("Failed to save expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseListResponse(doc))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Removes an expense; clearOnly skips the counter adjustments
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.DeleteExpenseRequest true "Delete details"
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /expenses [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DeleteExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DeleteExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.expenseService.DeleteExpense(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Expense not found for delete")
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			logger.Error("Failed to delete expense in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseListResponse(doc))
}
