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

const dueDateLayout = "2006-01-02"

// FundService manages the recurring dues in the shared document. Fund
// creation and modification never touch the running balance; money moves only
// when a payment status flips (see PaymentService) or when a delete settles
// caller-supplied amounts.
type FundService struct {
	ledgerRepo    portsrepo.LedgerRepository
	penaltyPerDay decimal.Decimal
}

// NewFundService builds the fund manager with the configured per-day penalty
// rate.
func NewFundService(ledgerRepo portsrepo.LedgerRepository, penaltyPerDay decimal.Decimal) *FundService {
	return &FundService{ledgerRepo: ledgerRepo, penaltyPerDay: penaltyPerDay}
}

// SaveFund creates a fund, or modifies it when the request carries an id.
// Modification preserves each surviving player's payment status, prunes
// entries for removed players, and defaults newly added players to unpaid, so
// the payments map keys always equal the players set.
func (s *FundService) SaveFund(ctx context.Context, req dto.SaveFundRequest) (*domain.Fund, *domain.LedgerDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: fund amount must be positive", apperrors.ErrValidation)
	}
	if len(req.Players) == 0 {
		return nil, nil, fmt.Errorf("%w: fund needs at least one player", apperrors.ErrValidation)
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, nil, err
	}

	fundID := req.FundID
	doc, err := s.ledgerRepo.UpdateDocument(ctx, func(doc *domain.LedgerDocument) error {
		if fundID == "" {
			fundID = uuid.NewString()
			payments := make(map[string]domain.PaymentStatus, len(req.Players))
			for _, playerID := range req.Players {
				payments[playerID] = domain.Unpaid
			}
			fund := domain.Fund{
				FundID:      fundID,
				Description: req.Description,
				Amount:      req.Amount,
				DueDate:     dueDate,
				Players:     req.Players,
				Payments:    payments,
				CreatedDate: time.Now(),
			}
			doc.FundList = append([]domain.Fund{fund}, doc.FundList...)
			return nil
		}

		existing := doc.FindFund(fundID)
		if existing == nil {
			return fmt.Errorf("%w: fund %s", apperrors.ErrNotFound, fundID)
		}
		payments := make(map[string]domain.PaymentStatus, len(req.Players))
		for _, playerID := range req.Players {
			if status, ok := existing.Payments[playerID]; ok {
				payments[playerID] = status
			} else {
				payments[playerID] = domain.Unpaid
			}
		}
		existing.Description = req.Description
		existing.Amount = req.Amount
		existing.DueDate = dueDate
		existing.Players = req.Players
		existing.Payments = payments
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Fund saved", slog.String("fund_id", fundID))
	return doc.FindFund(fundID), doc, nil
}

// DeleteFund removes a fund. When amounts are supplied and the skip-balance
// flag is unset, the sum of all positive values is subtracted from the
// running balance; the balance is allowed to go negative here. The
// skip-balance ("settle up") path deletes without touching the balance.
func (s *FundService) DeleteFund(ctx context.Context, req dto.DeleteFundRequest) (*domain.LedgerDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.ledgerRepo.UpdateDocument(ctx, func(doc *domain.LedgerDocument) error {
		index := -1
		for i := range doc.FundList {
			if doc.FundList[i].FundID == req.FundID {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("%w: fund %s", apperrors.ErrNotFound, req.FundID)
		}
		doc.FundList = append(doc.FundList[:index], doc.FundList[index+1:]...)

		if req.SkipBalance || len(req.Amounts) == 0 {
			return nil
		}
		settled := decimal.Zero
		for _, amount := range req.Amounts {
			if amount.IsPositive() {
				settled = settled.Add(amount)
			}
		}
		doc.TotalBalance = doc.TotalBalance.Sub(settled)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Fund deleted", slog.String("fund_id", req.FundID), slog.Bool("skip_balance", req.SkipBalance))
	return doc, nil
}

// PlayerPenalties lists, per fund the player is still unpaid on, the fund
// principal and the penalty accrued to now. Clients use it to fetch exact
// settle-up amounts before a bulk payment or a settling delete.
func (s *FundService) PlayerPenalties(ctx context.Context, playerID string) (dto.PlayerPenaltiesResponse, error) {
	if playerID == "" {
		return dto.PlayerPenaltiesResponse{}, fmt.Errorf("%w: playerId is required", apperrors.ErrValidation)
	}

	doc, err := s.ledgerRepo.GetDocument(ctx)
	if err != nil {
		return dto.PlayerPenaltiesResponse{}, err
	}

	now := time.Now()
	resp := dto.PlayerPenaltiesResponse{
		PlayerID: playerID,
		Rows:     []dto.PenaltyRow{},
		Total:    decimal.Zero,
	}
	for _, fund := range doc.FundList {
		if fund.Payments[playerID] != domain.Unpaid {
			continue
		}
		penalty := calculator.Penalty(fund, playerID, s.penaltyPerDay, now)
		total := fund.Amount.Add(penalty)
		resp.Rows = append(resp.Rows, dto.PenaltyRow{
			FundID:      fund.FundID,
			Description: fund.Description,
			Principal:   fund.Amount,
			Penalty:     penalty,
			Total:       total,
		})
		resp.Total = resp.Total.Add(total)
	}
	return resp, nil
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dueDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: dueDate must be %s", apperrors.ErrValidation, dueDateLayout)
	}
	return &parsed, nil
}
