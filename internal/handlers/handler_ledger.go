package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/crickclub/club_funds_app/internal/core/ports/services"
	"github.com/crickclub/club_funds_app/internal/dto"
	"github.com/crickclub/club_funds_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the shared document and its counter audit.
type ledgerHandler struct {
	ledgerService portssvc.LedgerReaderSvc
	rosterService portssvc.RosterSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerReaderSvc, rs portssvc.RosterSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, rosterService: rs}
}

// registerLedgerRoutes registers the read-only document routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerReaderSvc, rosterService portssvc.RosterSvcFacade) {
	h := newLedgerHandler(ledgerService, rosterService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.getLedger)
		ledger.GET("/reconcile", h.reconcile)
	}
	rg.GET("/roster", h.getRoster)
}

// getLedger godoc
// @Summary Get the whole ledger document
// @Description Fetches funds, expenses, match expenses and the running totals
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.LedgerResponse
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	doc, err := h.ledgerService.GetDocument(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read ledger document", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(doc))
}

// reconcile godoc
// @Summary Audit the totalExpense counter
// @Description Recomputes totalExpense from the expense list and reports drift
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.ReconcileResponse
// @Security BearerAuth
// @Router /ledger/reconcile [get]
func (h *ledgerHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.ledgerService.ReconcileTotals(c.Request.Context())
	if err != nil {
		logger.Error("Failed to reconcile totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile totals"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getRoster godoc
// @Summary List roster players
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.RosterResponse
// @Security BearerAuth
// @Router /roster [get]
func (h *ledgerHandler) getRoster(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	players, err := h.rosterService.ListPlayers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to read roster", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read roster"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRosterResponse(players))
}
