package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchExpense is a per-match fee split equally among selected players,
// optionally extended with a food/incidentals settlement.
type MatchExpense struct {
	MatchExpenseID string                     `json:"matchExpenseID"`
	Description    string                     `json:"description"`
	MatchFees      decimal.Decimal            `json:"matchFees"`
	DueDate        *time.Time                 `json:"dueDate,omitempty"`
	Players        []string                   `json:"players"`
	PaidBy         string                     `json:"paidBy"`
	PlayerFees     map[string]decimal.Decimal `json:"playerFees"`
	// PlayersExpensesDetails is a persisted cache of the last saved
	// settlement. It is never an input to any computation; the summary is
	// always rebuilt from participants/payer/amount.
	PlayersExpensesDetails *Settlement `json:"playersExpensesDetails,omitempty"`
	CreatedDate            time.Time   `json:"createdDate"`
}

// Settlement holds the food/incidentals split attached to one match expense.
type Settlement struct {
	Participants []Participant   `json:"participants"`
	TempPlayers  []Participant   `json:"tempPlayers"`
	PayerID      string          `json:"payerId"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Misc         decimal.Decimal `json:"misc"`
	Summary      []SummaryRow    `json:"summary,omitempty"`
}

// Participant is one person in a settlement. Squad participants carry a
// match-fee share; temp/guest participants only share food cost.
type Participant struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	IsSquad       bool            `json:"isSquad"`
	MatchFeeShare decimal.Decimal `json:"matchFeeShare,omitempty"`
	FoodItems     []FoodItem      `json:"foodItems"`
	Paid          decimal.Decimal `json:"paid"`
	Settled       bool            `json:"settled"`
}

// FoodItem is a single ordered item on a participant's tab.
type FoodItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// FoodTotal sums price times quantity over the participant's food items.
func (p Participant) FoodTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.FoodItems {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// SummaryRow is one participant's computed line in the settlement table.
// Net == 0 means settled, Net > 0 means owed a refund, Net < 0 means the
// participant owes |Net|.
type SummaryRow struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	IsSquad   bool            `json:"isSquad"`
	MatchFee  decimal.Decimal `json:"matchFee"`
	Food      decimal.Decimal `json:"food"`
	MiscShare decimal.Decimal `json:"miscShare"`
	TotalOwed decimal.Decimal `json:"totalOwed"`
	Paid      decimal.Decimal `json:"paid"`
	Net       decimal.Decimal `json:"net"`
}
