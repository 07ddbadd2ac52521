package services

import (
	"context"
	"log/slog"

	"github.com/crickclub/club_funds_app/internal/core/domain"
	portsrepo "github.com/crickclub/club_funds_app/internal/core/ports/repositories"
	"github.com/crickclub/club_funds_app/internal/dto"
	"github.com/crickclub/club_funds_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// LedgerService reads the shared document and audits its derived counters.
type LedgerService struct {
	ledgerRepo portsrepo.LedgerRepository
}

// NewLedgerService builds the ledger reader.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

// GetDocument fetches the whole document for display.
func (s *LedgerService) GetDocument(ctx context.Context) (*domain.LedgerDocument, error) {
	return s.ledgerRepo.GetDocument(ctx)
}

// ReconcileTotals recomputes totalExpense from the current expense list and
// reports drift against the stored counter. The counter is maintained by
// deltas on the write path, so any mutation path that bypasses the expense
// service shows up here. Read-only: drift is reported, not repaired.
func (s *LedgerService) ReconcileTotals(ctx context.Context) (dto.ReconcileResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.ledgerRepo.GetDocument(ctx)
	if err != nil {
		return dto.ReconcileResponse{}, err
	}

	computed := decimal.Zero
	for _, expense := range doc.ExpenseList {
		computed = computed.Add(expense.Amount)
	}
	computed = domain.ClampNonNegative(computed)

	drift := doc.TotalExpense.Sub(computed)
	if !drift.IsZero() {
		logger.Warn("totalExpense counter drifted from expense list",
			slog.String("stored", doc.TotalExpense.String()),
			slog.String("computed", computed.String()),
		)
	}
	return dto.ReconcileResponse{
		StoredTotalExpense:   doc.TotalExpense,
		ComputedTotalExpense: computed,
		Drift:                drift,
		Consistent:           drift.IsZero(),
	}, nil
}

// RosterService reads the externally owned roster document.
type RosterService struct {
	rosterRepo portsrepo.RosterRepository
}

// NewRosterService builds the roster reader.
func NewRosterService(rosterRepo portsrepo.RosterRepository) *RosterService {
	return &RosterService{rosterRepo: rosterRepo}
}

// ListPlayers returns the roster players.
func (s *RosterService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	return s.rosterRepo.GetRoster(ctx)
}
