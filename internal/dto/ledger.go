package dto

import (
	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerResponse is the whole shared document, for display.
type LedgerResponse struct {
	TotalBalance     decimal.Decimal        `json:"totalBalance"`
	TotalExpense     decimal.Decimal        `json:"totalExpense"`
	FundList         []FundResponse         `json:"fundList"`
	ExpenseList      []ExpenseResponse      `json:"expenseList"`
	MatchExpenseList []MatchExpenseResponse `json:"matchExpenseList"`
}

// ReconcileResponse reports drift between the stored totalExpense counter and
// the sum recomputed from the current expense list.
type ReconcileResponse struct {
	StoredTotalExpense   decimal.Decimal `json:"storedTotalExpense"`
	ComputedTotalExpense decimal.Decimal `json:"computedTotalExpense"`
	Drift                decimal.Decimal `json:"drift"`
	Consistent           bool            `json:"consistent"`
}

// ToLedgerResponse converts the shared document to its wire form.
func ToLedgerResponse(doc *domain.LedgerDocument) LedgerResponse {
	return LedgerResponse{
		TotalBalance:     doc.TotalBalance,
		TotalExpense:     doc.TotalExpense,
		FundList:         ToFundResponses(doc.FundList),
		ExpenseList:      ToExpenseResponses(doc.ExpenseList),
		MatchExpenseList: ToMatchExpenseResponses(doc.MatchExpenseList),
	}
}
