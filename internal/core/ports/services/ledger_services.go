package services

import (
	"context"
	"time"

	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/crickclub/club_funds_app/internal/dto"
	"github.com/shopspring/decimal"
)

// FundWriterSvc defines the fund mutations.
type FundWriterSvc interface {
	// SaveFund creates a fund, or modifies it in place when the request
	// carries an id. It returns the saved fund and the resulting document.
	SaveFund(ctx context.Context, req dto.SaveFundRequest) (*domain.Fund, *domain.LedgerDocument, error)

	// DeleteFund removes a fund, optionally settling caller-supplied amounts
	// against the running balance.
	DeleteFund(ctx context.Context, req dto.DeleteFundRequest) (*domain.LedgerDocument, error)
}

// PenaltyReaderSvc computes exact settle-up amounts for a player.
type PenaltyReaderSvc interface {
	// PlayerPenalties lists, per fund the player is unpaid on, the fund
	// principal plus the penalty accrued to now.
	PlayerPenalties(ctx context.Context, playerID string) (dto.PlayerPenaltiesResponse, error)
}

// FundSvcFacade combines all fund-related service interfaces.
type FundSvcFacade interface {
	FundWriterSvc
	PenaltyReaderSvc
}

// PaymentSvcFacade is the payment status engine: it toggles paid/unpaid
// states and applies balance deltas only on actual transitions.
type PaymentSvcFacade interface {
	// SetPaymentStatus updates one player's status on one fund.
	SetPaymentStatus(ctx context.Context, fundID, playerID string, status domain.PaymentStatus) (*domain.LedgerDocument, error)

	// SetPaymentStatusAcrossFunds applies the same transition rule across the
	// given funds, using the override amount per fund id when present (else
	// the fund amount); deltas are summed before being applied once.
	SetPaymentStatusAcrossFunds(ctx context.Context, playerID string, fundIDs []string, status domain.PaymentStatus, amounts map[string]decimal.Decimal) (*domain.LedgerDocument, error)
}

// ExpenseSvcFacade is the one-off expense ledger.
type ExpenseSvcFacade interface {
	SaveExpense(ctx context.Context, req dto.SaveExpenseRequest) (*domain.LedgerDocument, error)
	DeleteExpense(ctx context.Context, req dto.DeleteExpenseRequest) (*domain.LedgerDocument, error)
}

// MatchExpenseSvcFacade manages per-match fee splits and their settlements.
type MatchExpenseSvcFacade interface {
	SaveMatchExpense(ctx context.Context, req dto.SaveMatchExpenseRequest) (*domain.MatchExpense, *domain.LedgerDocument, error)
	DeleteMatchExpense(ctx context.Context, matchExpenseID string) (*domain.LedgerDocument, error)

	// SaveSettlementDetails replaces only the playersExpensesDetails field of
	// the targeted match expense.
	SaveSettlementDetails(ctx context.Context, matchExpenseID string, details domain.Settlement) error

	// ComputeSettlement recomputes the settlement table for a draft without
	// persisting anything.
	ComputeSettlement(ctx context.Context, matchExpenseID string, details domain.Settlement) (decimal.Decimal, []domain.SummaryRow, error)
}

// LedgerReaderSvc reads the shared document and checks counter drift.
type LedgerReaderSvc interface {
	GetDocument(ctx context.Context) (*domain.LedgerDocument, error)
	ReconcileTotals(ctx context.Context) (dto.ReconcileResponse, error)
}

// RosterSvcFacade reads the externally owned roster.
type RosterSvcFacade interface {
	ListPlayers(ctx context.Context) ([]domain.Player, error)
}

// AuthSvcFacade exchanges club credentials for a role token.
type AuthSvcFacade interface {
	Login(ctx context.Context, playerID, password string) (token string, role domain.Role, expiresAt time.Time, err error)
}

// ServiceContainer holds instances of all the application services. Handlers
// receive their dependencies from here.
type ServiceContainer struct {
	Fund         FundSvcFacade
	Payment      PaymentSvcFacade
	Expense      ExpenseSvcFacade
	MatchExpense MatchExpenseSvcFacade
	Ledger       LedgerReaderSvc
	Roster       RosterSvcFacade
	Auth         AuthSvcFacade
}
