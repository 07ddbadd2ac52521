package dto

import (
	"time"

	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveExpenseRequest adds an expense, or modifies one when ID is present.
type SaveExpenseRequest struct {
	ExpenseID   string          `json:"id,omitempty"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
}

// DeleteExpenseRequest removes an expense. ClearOnly removes the record
// without touching the totals (corrective cleanup).
type DeleteExpenseRequest struct {
	ExpenseID string          `json:"id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	ClearOnly bool            `json:"clearOnly,omitempty"`
}

// ExpenseResponse mirrors a domain expense on the wire.
type ExpenseResponse struct {
	ExpenseID   string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedDate time.Time       `json:"createdDate"`
}

// ExpenseListResponse is returned by every expense mutation.
type ExpenseListResponse struct {
	ExpenseList  []ExpenseResponse `json:"expenseList"`
	TotalBalance decimal.Decimal   `json:"totalBalance"`
	TotalExpense decimal.Decimal   `json:"totalExpense"`
}

// ToExpenseResponse converts a domain.Expense to its wire form.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedDate: e.CreatedDate,
	}
}

// ToExpenseResponses converts a slice of domain expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// ToExpenseListResponse builds the standard expense mutation response.
func ToExpenseListResponse(doc *domain.LedgerDocument) ExpenseListResponse {
	return ExpenseListResponse{
		ExpenseList:  ToExpenseResponses(doc.ExpenseList),
		TotalBalance: doc.TotalBalance,
		TotalExpense: doc.TotalExpense,
	}
}
