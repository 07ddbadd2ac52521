package services_test

import (
	"context"
	"testing"

	"github.com/crickclub/club_funds_app/internal/apperrors"
	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/crickclub/club_funds_app/internal/core/services"
	"github.com/crickclub/club_funds_app/internal/dto"
	"github.com/crickclub/club_funds_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type FundServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service *services.FundService
	ctx     context.Context
}

func (suite *FundServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.service = services.NewFundService(suite.store, decimal.NewFromInt(10))
	suite.ctx = context.Background()
}

// seedBalance pushes the running balance to a known value without going
// through a payment flow.
func (suite *FundServiceTestSuite) seedBalance(amount decimal.Decimal) {
	_, err := suite.store.UpdateDocument(suite.ctx, func(doc *domain.LedgerDocument) error {
		doc.TotalBalance = amount
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *FundServiceTestSuite) TestSaveFund_CreateDefaultsAllUnpaid() {
	fund, doc, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "March dues",
		Amount:      decimal.NewFromInt(500),
		Players:     []string{"p1", "p2", "p3"},
	})

	suite.Require().NoError(err)
	suite.NotEmpty(fund.FundID)
	suite.Len(fund.Payments, 3)
	for _, playerID := range fund.Players {
		suite.Equal(domain.Unpaid, fund.Payments[playerID])
	}
	// Creation never moves money.
	suite.True(doc.TotalBalance.IsZero())
	suite.Len(doc.FundList, 1)
}

func (suite *FundServiceTestSuite) TestSaveFund_CreatePrependsNewest() {
	_, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "older",
		Amount:      decimal.NewFromInt(100),
		Players:     []string{"p1"},
	})
	suite.Require().NoError(err)

	_, doc, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "newer",
		Amount:      decimal.NewFromInt(200),
		Players:     []string{"p1"},
	})
	suite.Require().NoError(err)

	suite.Equal("newer", doc.FundList[0].Description)
	suite.Equal("older", doc.FundList[1].Description)
}

func (suite *FundServiceTestSuite) TestSaveFund_ModifyReconcilesPayments() {
	fund, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.NewFromInt(500),
		Players:     []string{"p1", "p2", "p3"},
	})
	suite.Require().NoError(err)

	_, err = suite.store.UpdateDocument(suite.ctx, func(doc *domain.LedgerDocument) error {
		doc.FindFund(fund.FundID).Payments["p1"] = domain.Paid
		return nil
	})
	suite.Require().NoError(err)

	// Drop p2 and p3, add p4. p1's paid status must survive, p4 defaults
	// to unpaid, and the payments keys must equal the new players set.
	updated, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		FundID:      fund.FundID,
		Description: "dues v2",
		Amount:      decimal.NewFromInt(500),
		Players:     []string{"p1", "p4"},
	})
	suite.Require().NoError(err)

	suite.Len(updated.Payments, 2)
	suite.Equal(domain.Paid, updated.Payments["p1"])
	suite.Equal(domain.Unpaid, updated.Payments["p4"])
	suite.NotContains(updated.Payments, "p2")
	suite.NotContains(updated.Payments, "p3")
}

func (suite *FundServiceTestSuite) TestSaveFund_ModifyNeverTouchesBalance() {
	suite.seedBalance(decimal.NewFromInt(700))
	fund, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.NewFromInt(500),
		Players:     []string{"p1", "p2"},
	})
	suite.Require().NoError(err)

	_, doc, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		FundID:      fund.FundID,
		Description: "dues",
		Amount:      decimal.NewFromInt(900),
		Players:     []string{"p1", "p2"},
	})
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(700)))
}

func (suite *FundServiceTestSuite) TestSaveFund_ModifyUnknownFundFails() {
	_, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		FundID:      "missing",
		Description: "dues",
		Amount:      decimal.NewFromInt(500),
		Players:     []string{"p1"},
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FundServiceTestSuite) TestSaveFund_RejectsNonPositiveAmount() {
	_, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.Zero,
		Players:     []string{"p1"},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FundServiceTestSuite) TestSaveFund_RejectsMalformedDueDate() {
	_, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.NewFromInt(500),
		DueDate:     "03/15/2026",
		Players:     []string{"p1"},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FundServiceTestSuite) TestDeleteFund_SettlesSuppliedAmounts() {
	suite.seedBalance(decimal.NewFromInt(200))
	fund, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.NewFromInt(100),
		Players:     []string{"p1", "p2"},
	})
	suite.Require().NoError(err)

	doc, err := suite.service.DeleteFund(suite.ctx, dto.DeleteFundRequest{
		FundID: fund.FundID,
		Amounts: map[string]decimal.Decimal{
			"p1": decimal.NewFromInt(100),
			"p2": decimal.NewFromInt(50),
		},
	})
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(50)))
	suite.Empty(doc.FundList)
}

func (suite *FundServiceTestSuite) TestDeleteFund_MayDriveBalanceNegative() {
	suite.seedBalance(decimal.NewFromInt(100))
	fund, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.NewFromInt(100),
		Players:     []string{"p1"},
	})
	suite.Require().NoError(err)

	doc, err := suite.service.DeleteFund(suite.ctx, dto.DeleteFundRequest{
		FundID:  fund.FundID,
		Amounts: map[string]decimal.Decimal{"p1": decimal.NewFromInt(250)},
	})
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(-150)))
}

func (suite *FundServiceTestSuite) TestDeleteFund_SkipBalanceLeavesTotalsAlone() {
	suite.seedBalance(decimal.NewFromInt(200))
	fund, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.NewFromInt(100),
		Players:     []string{"p1"},
	})
	suite.Require().NoError(err)

	doc, err := suite.service.DeleteFund(suite.ctx, dto.DeleteFundRequest{
		FundID:      fund.FundID,
		Amounts:     map[string]decimal.Decimal{"p1": decimal.NewFromInt(100)},
		SkipBalance: true,
	})
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(200)))
	suite.Empty(doc.FundList)
}

func (suite *FundServiceTestSuite) TestDeleteFund_IgnoresNegativeAmounts() {
	suite.seedBalance(decimal.NewFromInt(200))
	fund, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.NewFromInt(100),
		Players:     []string{"p1", "p2"},
	})
	suite.Require().NoError(err)

	doc, err := suite.service.DeleteFund(suite.ctx, dto.DeleteFundRequest{
		FundID: fund.FundID,
		Amounts: map[string]decimal.Decimal{
			"p1": decimal.NewFromInt(100),
			"p2": decimal.NewFromInt(-40),
		},
	})
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(100)))
}

func (suite *FundServiceTestSuite) TestDeleteFund_UnknownFundFails() {
	_, err := suite.service.DeleteFund(suite.ctx, dto.DeleteFundRequest{FundID: "missing"})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FundServiceTestSuite) TestPlayerPenalties_ListsUnpaidFundsOnly() {
	fund, _, err := suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "overdue dues",
		Amount:      decimal.NewFromInt(500),
		DueDate:     "2026-01-01",
		Players:     []string{"p1", "p2"},
	})
	suite.Require().NoError(err)
	_, _, err = suite.service.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "not mine",
		Amount:      decimal.NewFromInt(100),
		Players:     []string{"p2"},
	})
	suite.Require().NoError(err)

	resp, err := suite.service.PlayerPenalties(suite.ctx, "p1")
	suite.Require().NoError(err)

	suite.Equal("p1", resp.PlayerID)
	suite.Require().Len(resp.Rows, 1)
	row := resp.Rows[0]
	suite.Equal(fund.FundID, row.FundID)
	suite.True(row.Principal.Equal(decimal.NewFromInt(500)))
	// Due date is long past, so some penalty must have accrued.
	suite.True(row.Penalty.IsPositive())
	suite.True(row.Total.Equal(row.Principal.Add(row.Penalty)))
	suite.True(resp.Total.Equal(row.Total))
}

func (suite *FundServiceTestSuite) TestPlayerPenalties_RequiresPlayerID() {
	_, err := suite.service.PlayerPenalties(suite.ctx, "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestFundServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FundServiceTestSuite))
}
