package dto

import (
	"time"

	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveFundRequest creates a fund, or modifies one when ID is present.
type SaveFundRequest struct {
	FundID      string          `json:"id,omitempty"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	DueDate     string          `json:"dueDate,omitempty"` // YYYY-MM-DD, optional
	Players     []string        `json:"players" binding:"required,min=1"`
}

// DeleteFundRequest removes a fund. When Amounts is present and SkipBalance
// is unset, the sum of its positive values is subtracted from totalBalance;
// the skip-balance ("settle up") path leaves the balance untouched because
// deletion alone never implies money changed hands.
type DeleteFundRequest struct {
	FundID      string                     `json:"id" binding:"required"`
	Amounts     map[string]decimal.Decimal `json:"amounts,omitempty"`
	SkipBalance bool                       `json:"skipBalance,omitempty"`
}

// SetPaymentStatusRequest toggles one player's payment status on one fund.
type SetPaymentStatusRequest struct {
	FundID   string `json:"fundId" binding:"required"`
	PlayerID string `json:"playerId" binding:"required"`
	Status   string `json:"status" binding:"required,oneof=paid unpaid"`
}

// BulkPaymentStatusRequest toggles one player's status across several funds.
// Amounts optionally overrides the collected amount per fund id, typically
// principal plus accrued penalty.
type BulkPaymentStatusRequest struct {
	PlayerID string                     `json:"playerId" binding:"required"`
	FundIDs  []string                   `json:"fundIds" binding:"required,min=1"`
	Status   string                     `json:"status" binding:"required,oneof=paid unpaid"`
	Amounts  map[string]decimal.Decimal `json:"amounts,omitempty"`
}

// FundResponse mirrors a domain fund on the wire.
type FundResponse struct {
	FundID      string                            `json:"id"`
	Description string                            `json:"description"`
	Amount      decimal.Decimal                   `json:"amount"`
	DueDate     *time.Time                        `json:"dueDate,omitempty"`
	Players     []string                          `json:"players"`
	Payments    map[string]domain.PaymentStatus   `json:"payments"`
	CreatedDate time.Time                         `json:"createdDate"`
}

// SaveFundResponse is returned by fund create/modify.
type SaveFundResponse struct {
	Fund  FundResponse   `json:"fund"`
	Funds []FundResponse `json:"funds"`
}

// FundsBalanceResponse is returned by operations that change the balance.
type FundsBalanceResponse struct {
	Funds        []FundResponse  `json:"funds"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// PenaltyRow is one unpaid fund obligation with its accrued penalty.
type PenaltyRow struct {
	FundID      string          `json:"fundId"`
	Description string          `json:"description"`
	Principal   decimal.Decimal `json:"principal"`
	Penalty     decimal.Decimal `json:"penalty"`
	Total       decimal.Decimal `json:"total"`
}

// PlayerPenaltiesResponse lists the exact settle-up amounts for one player.
type PlayerPenaltiesResponse struct {
	PlayerID string          `json:"playerId"`
	Rows     []PenaltyRow    `json:"rows"`
	Total    decimal.Decimal `json:"total"`
}

// ToFundResponse converts a domain.Fund to its wire form.
func ToFundResponse(f *domain.Fund) FundResponse {
	return FundResponse{
		FundID:      f.FundID,
		Description: f.Description,
		Amount:      f.Amount,
		DueDate:     f.DueDate,
		Players:     f.Players,
		Payments:    f.Payments,
		CreatedDate: f.CreatedDate,
	}
}

// ToFundResponses converts a slice of domain funds.
func ToFundResponses(funds []domain.Fund) []FundResponse {
	responses := make([]FundResponse, len(funds))
	for i := range funds {
		responses[i] = ToFundResponse(&funds[i])
	}
	return responses
}
