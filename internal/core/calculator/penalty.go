// Package calculator holds the pure money math of the club ledger: overdue
// penalty accrual and the match settlement table. Nothing here touches the
// document store or carries state between calls.
package calculator

import (
	"time"

	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Penalty computes the overdue surcharge a player owes on a fund at the given
// instant. It returns zero when the player has no payment entry on the fund,
// when the entry is not unpaid, when the fund has no due date, or when now is
// not past the due date. Otherwise it is the whole number of days elapsed
// past the due date times the per-day rate, with no cap.
func Penalty(fund domain.Fund, playerID string, perDay decimal.Decimal, now time.Time) decimal.Decimal {
	status, ok := fund.Payments[playerID]
	if !ok || status != domain.Unpaid {
		return decimal.Zero
	}
	if fund.DueDate == nil {
		return decimal.Zero
	}
	elapsed := now.Sub(*fund.DueDate)
	if elapsed <= 0 {
		return decimal.Zero
	}
	daysLate := int64(elapsed.Hours() / 24)
	if daysLate <= 0 {
		return decimal.Zero
	}
	return perDay.Mul(decimal.NewFromInt(daysLate))
}
