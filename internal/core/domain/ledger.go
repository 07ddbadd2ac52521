package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus indicates whether a player has paid their share of a fund.
type PaymentStatus string

const (
	Paid   PaymentStatus = "paid"
	Unpaid PaymentStatus = "unpaid"
)

// Fund represents a recurring due each tracked player must pay by a date.
// The payments map always carries exactly the players in Players; the
// FundService reseeds it on every create/modify.
type Fund struct {
	FundID      string                   `json:"fundID"`
	Description string                   `json:"description"`
	Amount      decimal.Decimal          `json:"amount"`
	DueDate     *time.Time               `json:"dueDate,omitempty"`
	Players     []string                 `json:"players"`
	Payments    map[string]PaymentStatus `json:"payments"`
	CreatedDate time.Time                `json:"createdDate"`
}

// Expense is a one-off club expense, independent of any fund.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedDate time.Time       `json:"createdDate"`
}

// LedgerDocument is the single shared aggregate holding all club money state.
// It is fetched and fully rewritten on every mutation; the lists are kept
// newest-first for display. TotalBalance and TotalExpense are running
// counters maintained by deltas, never recomputed from the lists on the
// write path (see LedgerService.ReconcileTotals for the drift check).
type LedgerDocument struct {
	TotalBalance     decimal.Decimal `json:"totalBalance"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	FundList         []Fund          `json:"fundList"`
	ExpenseList      []Expense       `json:"expenseList"`
	MatchExpenseList []MatchExpense  `json:"matchExpenseList"`
}

// FindFund returns a pointer into FundList for the given id, or nil.
func (d *LedgerDocument) FindFund(fundID string) *Fund {
	for i := range d.FundList {
		if d.FundList[i].FundID == fundID {
			return &d.FundList[i]
		}
	}
	return nil
}

// FindMatchExpense returns a pointer into MatchExpenseList for the given id, or nil.
func (d *LedgerDocument) FindMatchExpense(matchExpenseID string) *MatchExpense {
	for i := range d.MatchExpenseList {
		if d.MatchExpenseList[i].MatchExpenseID == matchExpenseID {
			return &d.MatchExpenseList[i]
		}
	}
	return nil
}

// ClampNonNegative floors a monetary counter at zero. The clamp is policy,
// not an error: callers apply it where the contract says a counter may not
// go below zero and silently keep the floored value.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
