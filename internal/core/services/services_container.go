package services

import (
	portsrepo "github.com/crickclub/club_funds_app/internal/core/ports/repositories"
	portssvc "github.com/crickclub/club_funds_app/internal/core/ports/services"
	"github.com/crickclub/club_funds_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Fund:         NewFundService(repos.LedgerRepo, cfg.PenaltyPerDay),
		Payment:      NewPaymentService(repos.LedgerRepo),
		Expense:      NewExpenseService(repos.LedgerRepo),
		MatchExpense: NewMatchExpenseService(repos.LedgerRepo, repos.RosterRepo),
		Ledger:       NewLedgerService(repos.LedgerRepo),
		Roster:       NewRosterService(repos.RosterRepo),
		Auth:         NewAuthService(repos.RosterRepo, cfg),
	}
}
