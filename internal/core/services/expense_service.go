package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crickclub/club_funds_app/internal/apperrors"
	"github.com/crickclub/club_funds_app/internal/core/domain"
	portsrepo "github.com/crickclub/club_funds_app/internal/core/ports/repositories"
	"github.com/crickclub/club_funds_app/internal/dto"
	"github.com/crickclub/club_funds_app/internal/middleware"
	"github.com/google/uuid"
)

// ExpenseService is the one-off expense ledger. totalExpense is a derived
// counter kept in step with the expense list by every mutation path here;
// LedgerService.ReconcileTotals recomputes it on demand to catch drift.
type ExpenseService struct {
	ledgerRepo portsrepo.LedgerRepository
}

// NewExpenseService builds the expense manager.
func NewExpenseService(ledgerRepo portsrepo.LedgerRepository) *ExpenseService {
	return &ExpenseService{ledgerRepo: ledgerRepo}
}

// SaveExpense adds an expense, or modifies one when the request carries an
// id. Adding subtracts the amount from totalBalance (which may go negative)
// and adds it to totalExpense. Modifying applies the old/new difference to
// both counters, flooring totalExpense at zero.
func (s *ExpenseService) SaveExpense(ctx context.Context, req dto.SaveExpenseRequest) (*domain.LedgerDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	expenseID := req.ExpenseID
	doc, err := s.ledgerRepo.UpdateDocument(ctx, func(doc *domain.LedgerDocument) error {
		if expenseID == "" {
			expenseID = uuid.NewString()
			expense := domain.Expense{
				ExpenseID:   expenseID,
				Description: req.Description,
				Amount:      req.Amount,
				CreatedDate: time.Now(),
			}
			doc.ExpenseList = append([]domain.Expense{expense}, doc.ExpenseList...)
			doc.TotalBalance = doc.TotalBalance.Sub(req.Amount)
			doc.TotalExpense = doc.TotalExpense.Add(req.Amount)
			return nil
		}

		for i := range doc.ExpenseList {
			if doc.ExpenseList[i].ExpenseID != expenseID {
				continue
			}
			old := doc.ExpenseList[i].Amount
			doc.ExpenseList[i].Description = req.Description
			doc.ExpenseList[i].Amount = req.Amount
			doc.TotalBalance = doc.TotalBalance.Add(old.Sub(req.Amount))
			doc.TotalExpense = domain.ClampNonNegative(doc.TotalExpense.Add(req.Amount.Sub(old)))
			return nil
		}
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Expense saved", slog.String("expense_id", expenseID))
	return doc, nil
}

// DeleteExpense removes an expense. The normal path refunds the amount to
// totalBalance and removes it from totalExpense (floored at zero); the
// clear-only path removes the record without touching either counter,
// for corrective cleanup.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req dto.DeleteExpenseRequest) (*domain.LedgerDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.ledgerRepo.UpdateDocument(ctx, func(doc *domain.LedgerDocument) error {
		index := -1
		for i := range doc.ExpenseList {
			if doc.ExpenseList[i].ExpenseID == req.ExpenseID {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, req.ExpenseID)
		}
		doc.ExpenseList = append(doc.ExpenseList[:index], doc.ExpenseList[index+1:]...)

		if req.ClearOnly {
			return nil
		}
		doc.TotalBalance = doc.TotalBalance.Add(req.Amount)
		doc.TotalExpense = domain.ClampNonNegative(doc.TotalExpense.Sub(req.Amount))
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Expense deleted", slog.String("expense_id", req.ExpenseID), slog.Bool("clear_only", req.ClearOnly))
	return doc, nil
}
