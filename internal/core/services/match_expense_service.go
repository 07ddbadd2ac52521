package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crickclub/club_funds_app/internal/apperrors"
	"github.com/crickclub/club_funds_app/internal/core/calculator"
	"github.com/crickclub/club_funds_app/internal/core/domain"
	portsrepo "github.com/crickclub/club_funds_app/internal/core/ports/repositories"
	"github.com/crickclub/club_funds_app/internal/dto"
	"github.com/crickclub/club_funds_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MatchExpenseService manages per-match fee splits and their attached
// settlements. Match expenses never touch the running balance or the expense
// counter; participants square up among themselves through the settlement
// table.
type MatchExpenseService struct {
	ledgerRepo portsrepo.LedgerRepository
	rosterRepo portsrepo.RosterRepository
}

// NewMatchExpenseService builds the match expense manager.
func NewMatchExpenseService(ledgerRepo portsrepo.LedgerRepository, rosterRepo portsrepo.RosterRepository) *MatchExpenseService {
	return &MatchExpenseService{ledgerRepo: ledgerRepo, rosterRepo: rosterRepo}
}

// SaveMatchExpense creates a match expense, or modifies one when the request
// carries an id. The fee is split equally over the selected players, rounded
// to two decimals, remainder absorbed. Modification recomputes the split and
// reconciles any saved settlement participants against it: surviving squad
// members get their share updated, players new to the split are synthesized
// as squad participants named from the roster, and only squad members who
// lost their share are filtered out — temp/guest participants are never
// dropped by a fee recompute.
func (s *MatchExpenseService) SaveMatchExpense(ctx context.Context, req dto.SaveMatchExpenseRequest) (*domain.MatchExpense, *domain.LedgerDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.MatchFees.IsPositive() {
		return nil, nil, fmt.Errorf("%w: matchFees must be positive", apperrors.ErrValidation)
	}
	if len(req.Players) == 0 {
		return nil, nil, fmt.Errorf("%w: match expense needs at least one player", apperrors.ErrValidation)
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, nil, err
	}

	// Roster names are only needed when a modify synthesizes participants,
	// but fetching up front keeps the store cycle free of nested reads.
	var names map[string]string
	if req.MatchExpenseID != "" {
		players, err := s.rosterRepo.GetRoster(ctx)
		if err != nil {
			return nil, nil, err
		}
		names = make(map[string]string, len(players))
		for _, p := range players {
			names[p.PlayerID] = p.Name
		}
	}

	matchExpenseID := req.MatchExpenseID
	doc, err := s.ledgerRepo.UpdateDocument(ctx, func(doc *domain.LedgerDocument) error {
		playerFees := calculator.EqualSplit(req.MatchFees, req.Players)

		if matchExpenseID == "" {
			matchExpenseID = uuid.NewString()
			matchExpense := domain.MatchExpense{
				MatchExpenseID: matchExpenseID,
				Description:    req.Description,
				MatchFees:      req.MatchFees,
				DueDate:        dueDate,
				Players:        req.Players,
				PaidBy:         req.PaidBy,
				PlayerFees:     playerFees,
				CreatedDate:    time.Now(),
			}
			doc.MatchExpenseList = append([]domain.MatchExpense{matchExpense}, doc.MatchExpenseList...)
			return nil
		}

		existing := doc.FindMatchExpense(matchExpenseID)
		if existing == nil {
			return fmt.Errorf("%w: match expense %s", apperrors.ErrNotFound, matchExpenseID)
		}
		existing.Description = req.Description
		existing.MatchFees = req.MatchFees
		existing.DueDate = dueDate
		existing.Players = req.Players
		existing.PaidBy = req.PaidBy
		existing.PlayerFees = playerFees
		if existing.PlayersExpensesDetails != nil {
			existing.PlayersExpensesDetails.Participants = reconcileParticipants(
				existing.PlayersExpensesDetails.Participants, req.Players, playerFees, names)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Match expense saved", slog.String("match_expense_id", matchExpenseID))
	return doc.FindMatchExpense(matchExpenseID), doc, nil
}

// DeleteMatchExpense removes a match expense by id. No balance effect.
func (s *MatchExpenseService) DeleteMatchExpense(ctx context.Context, matchExpenseID string) (*domain.LedgerDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.ledgerRepo.UpdateDocument(ctx, func(doc *domain.LedgerDocument) error {
		index := -1
		for i := range doc.MatchExpenseList {
			if doc.MatchExpenseList[i].MatchExpenseID == matchExpenseID {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("%w: match expense %s", apperrors.ErrNotFound, matchExpenseID)
		}
		doc.MatchExpenseList = append(doc.MatchExpenseList[:index], doc.MatchExpenseList[index+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Match expense deleted", slog.String("match_expense_id", matchExpenseID))
	return doc, nil
}

// SaveSettlementDetails replaces only the playersExpensesDetails field of the
// targeted match expense, leaving every other field untouched.
func (s *MatchExpenseService) SaveSettlementDetails(ctx context.Context, matchExpenseID string, details domain.Settlement) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.ledgerRepo.UpdateDocument(ctx, func(doc *domain.LedgerDocument) error {
		existing := doc.FindMatchExpense(matchExpenseID)
		if existing == nil {
			return fmt.Errorf("%w: match expense %s", apperrors.ErrNotFound, matchExpenseID)
		}
		existing.PlayersExpensesDetails = &details
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Settlement details saved", slog.String("match_expense_id", matchExpenseID))
	return nil
}

// ComputeSettlement recomputes the settlement table for a draft from scratch.
// The stored summary is never an input; the draft's participants, temp
// players, payer and paid amount plus the match expense's fee payer are all
// the calculation sees.
func (s *MatchExpenseService) ComputeSettlement(ctx context.Context, matchExpenseID string, details domain.Settlement) (decimal.Decimal, []domain.SummaryRow, error) {
	doc, err := s.ledgerRepo.GetDocument(ctx)
	if err != nil {
		return decimal.Zero, nil, err
	}
	matchExpense := doc.FindMatchExpense(matchExpenseID)
	if matchExpense == nil {
		return decimal.Zero, nil, fmt.Errorf("%w: match expense %s", apperrors.ErrNotFound, matchExpenseID)
	}

	participants := make([]domain.Participant, 0, len(details.Participants)+len(details.TempPlayers))
	participants = append(participants, details.Participants...)
	participants = append(participants, details.TempPlayers...)

	result := calculator.ComputeSettlement(calculator.SettlementInput{
		Participants: participants,
		PayerID:      details.PayerID,
		PaidAmount:   details.PaidAmount,
		MatchPaidBy:  matchExpense.PaidBy,
		MatchFees:    matchExpense.MatchFees,
	})
	return result.Misc, result.Summary, nil
}

// reconcileParticipants aligns saved settlement participants with a
// recomputed fee split.
func reconcileParticipants(existing []domain.Participant, players []string, playerFees map[string]decimal.Decimal, names map[string]string) []domain.Participant {
	kept := make([]domain.Participant, 0, len(existing)+len(players))
	present := make(map[string]bool, len(existing))
	for _, p := range existing {
		present[p.ID] = true
		if p.IsSquad {
			share, stillRequired := playerFees[p.ID]
			if !stillRequired {
				// Squad member dropped from the split loses the record.
				continue
			}
			p.MatchFeeShare = share
		}
		kept = append(kept, p)
	}
	for _, playerID := range players {
		if present[playerID] {
			continue
		}
		kept = append(kept, domain.Participant{
			ID:            playerID,
			Name:          names[playerID],
			IsSquad:       true,
			MatchFeeShare: playerFees[playerID],
			FoodItems:     []domain.FoodItem{},
		})
	}
	return kept
}
