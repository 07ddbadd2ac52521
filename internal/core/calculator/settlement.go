package calculator

import (
	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementInput carries everything the settlement table depends on. The
// match-fee payer and fee total come from the owning match expense; PayerID
// and PaidAmount come from the settlement draft. One participant may be both
// payers at once, in which case both contributions add to their paid column.
type SettlementInput struct {
	Participants []domain.Participant // squad participants plus temp/guest players
	PayerID      string               // who fronted the food/misc bill
	PaidAmount   decimal.Decimal      // what the food payer actually paid
	MatchPaidBy  string               // who fronted the match fees
	MatchFees    decimal.Decimal      // total match fees fronted
}

// SettlementResult is the recomputed table plus the derived misc amount.
type SettlementResult struct {
	Misc    decimal.Decimal
	Summary []domain.SummaryRow
}

// ComputeSettlement rebuilds the full owed/paid/net table from scratch. Any
// amount the food payer paid beyond the sum of all food orders is treated as
// a shared miscellaneous cost and split equally across participants who
// ordered food; participants with no orders never carry a misc share. The
// computation is total and idempotent and never reads a previously stored
// summary.
func ComputeSettlement(in SettlementInput) SettlementResult {
	totalFood := decimal.Zero
	orderers := 0
	foodTotals := make([]decimal.Decimal, len(in.Participants))
	for i, p := range in.Participants {
		foodTotals[i] = p.FoodTotal()
		totalFood = totalFood.Add(foodTotals[i])
		if len(p.FoodItems) > 0 {
			orderers++
		}
	}

	misc := in.PaidAmount.Sub(totalFood)
	if misc.IsNegative() {
		misc = decimal.Zero
	}
	miscPerPerson := decimal.Zero
	if orderers > 0 {
		miscPerPerson = misc.Div(decimal.NewFromInt(int64(orderers))).Round(2)
	}

	rows := make([]domain.SummaryRow, len(in.Participants))
	for i, p := range in.Participants {
		matchFee := decimal.Zero
		if p.IsSquad {
			matchFee = p.MatchFeeShare
		}
		miscShare := decimal.Zero
		if len(p.FoodItems) > 0 {
			miscShare = miscPerPerson
		}
		paid := decimal.Zero
		if p.ID == in.PayerID {
			paid = paid.Add(in.PaidAmount)
		}
		if p.ID == in.MatchPaidBy {
			paid = paid.Add(in.MatchFees)
		}
		totalOwed := matchFee.Add(foodTotals[i]).Add(miscShare)
		rows[i] = domain.SummaryRow{
			ID:        p.ID,
			Name:      p.Name,
			IsSquad:   p.IsSquad,
			MatchFee:  matchFee,
			Food:      foodTotals[i],
			MiscShare: miscShare,
			TotalOwed: totalOwed,
			Paid:      paid,
			Net:       paid.Sub(totalOwed),
		}
	}

	return SettlementResult{Misc: misc, Summary: rows}
}

// EqualSplit divides a fee total evenly over the given players, rounding each
// share to two decimals. The rounding remainder is absorbed rather than
// redistributed, so every player sees the identical share.
func EqualSplit(total decimal.Decimal, players []string) map[string]decimal.Decimal {
	shares := make(map[string]decimal.Decimal, len(players))
	if len(players) == 0 {
		return shares
	}
	perPlayer := total.Div(decimal.NewFromInt(int64(len(players)))).Round(2)
	for _, playerID := range players {
		shares[playerID] = perPlayer
	}
	return shares
}
