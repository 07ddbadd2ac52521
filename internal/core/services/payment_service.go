package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crickclub/club_funds_app/internal/apperrors"
	"github.com/crickclub/club_funds_app/internal/core/domain"
	portsrepo "github.com/crickclub/club_funds_app/internal/core/ports/repositories"
	"github.com/crickclub/club_funds_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// PaymentService is the payment status engine. totalBalance is a running
// counter mutated by deltas, never recomputed from history: a flip to paid
// adds the collected amount, a flip back subtracts it, and no-transition
// calls leave the balance alone.
type PaymentService struct {
	ledgerRepo portsrepo.LedgerRepository
}

// NewPaymentService builds the payment status engine.
func NewPaymentService(ledgerRepo portsrepo.LedgerRepository) *PaymentService {
	return &PaymentService{ledgerRepo: ledgerRepo}
}

// SetPaymentStatus updates one player's status on one fund. unpaid->paid adds
// the fund amount to the balance; paid->unpaid subtracts it and floors the
// balance at zero. Setting the status it already has changes nothing.
func (s *PaymentService) SetPaymentStatus(ctx context.Context, fundID, playerID string, status domain.PaymentStatus) (*domain.LedgerDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.ledgerRepo.UpdateDocument(ctx, func(doc *domain.LedgerDocument) error {
		fund := doc.FindFund(fundID)
		if fund == nil {
			return fmt.Errorf("%w: fund %s", apperrors.ErrNotFound, fundID)
		}
		current, ok := fund.Payments[playerID]
		if !ok {
			return fmt.Errorf("%w: player %s has no payment entry on fund %s", apperrors.ErrValidation, playerID, fundID)
		}
		if current == status {
			return nil
		}
		fund.Payments[playerID] = status
		doc.TotalBalance = applyTransition(doc.TotalBalance, status, fund.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payment status updated",
		slog.String("fund_id", fundID),
		slog.String("player_id", playerID),
		slog.String("status", string(status)),
	)
	return doc, nil
}

// SetPaymentStatusAcrossFunds applies the same transition rule to one player
// across several funds. The caller may override the collected amount per fund
// id, typically to include accrued penalty; absent an override the fund
// amount is used. Deltas are summed and applied once, then the balance is
// floored at zero. A fund without a payment entry for the player contributes
// no transition. Any unknown fund id fails the whole call with no state
// change.
func (s *PaymentService) SetPaymentStatusAcrossFunds(ctx context.Context, playerID string, fundIDs []string, status domain.PaymentStatus, amounts map[string]decimal.Decimal) (*domain.LedgerDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.ledgerRepo.UpdateDocument(ctx, func(doc *domain.LedgerDocument) error {
		delta := decimal.Zero
		for _, fundID := range fundIDs {
			fund := doc.FindFund(fundID)
			if fund == nil {
				return fmt.Errorf("%w: fund %s", apperrors.ErrNotFound, fundID)
			}
			current, ok := fund.Payments[playerID]
			if !ok || current == status {
				continue
			}
			amount := fund.Amount
			if override, ok := amounts[fundID]; ok {
				amount = override
			}
			fund.Payments[playerID] = status
			if status == domain.Paid {
				delta = delta.Add(amount)
			} else {
				delta = delta.Sub(amount)
			}
		}
		doc.TotalBalance = domain.ClampNonNegative(doc.TotalBalance.Add(delta))
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payment status updated across funds",
		slog.String("player_id", playerID),
		slog.Int("fund_count", len(fundIDs)),
		slog.String("status", string(status)),
	)
	return doc, nil
}

func applyTransition(balance decimal.Decimal, newStatus domain.PaymentStatus, amount decimal.Decimal) decimal.Decimal {
	if newStatus == domain.Paid {
		return balance.Add(amount)
	}
	return domain.ClampNonNegative(balance.Sub(amount))
}
