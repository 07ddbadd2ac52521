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

type PaymentServiceTestSuite struct {
	suite.Suite
	store       *memory.Store
	fundService *services.FundService
	service     *services.PaymentService
	ctx         context.Context
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.fundService = services.NewFundService(suite.store, decimal.NewFromInt(10))
	suite.service = services.NewPaymentService(suite.store)
	suite.ctx = context.Background()
}

func (suite *PaymentServiceTestSuite) createFund(amount int64, players ...string) string {
	fund, _, err := suite.fundService.SaveFund(suite.ctx, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.NewFromInt(amount),
		Players:     players,
	})
	suite.Require().NoError(err)
	return fund.FundID
}

func (suite *PaymentServiceTestSuite) TestToggleRestoresBalance() {
	fundID := suite.createFund(500, "p1", "p2")

	doc, err := suite.service.SetPaymentStatus(suite.ctx, fundID, "p1", domain.Paid)
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(500)))

	doc, err = suite.service.SetPaymentStatus(suite.ctx, fundID, "p1", domain.Unpaid)
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.IsZero())
}

func (suite *PaymentServiceTestSuite) TestSameStatusIsNoOp() {
	fundID := suite.createFund(500, "p1")

	doc, err := suite.service.SetPaymentStatus(suite.ctx, fundID, "p1", domain.Paid)
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(500)))

	// Re-marking paid must not double-count.
	doc, err = suite.service.SetPaymentStatus(suite.ctx, fundID, "p1", domain.Paid)
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(500)))

	doc, err = suite.service.SetPaymentStatus(suite.ctx, fundID, "p1", domain.Unpaid)
	suite.Require().NoError(err)
	doc, err = suite.service.SetPaymentStatus(suite.ctx, fundID, "p1", domain.Unpaid)
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.IsZero())
}

func (suite *PaymentServiceTestSuite) TestUnpaidTransitionFloorsAtZero() {
	smallID := suite.createFund(100, "p1")
	largeID := suite.createFund(500, "p1")

	_, err := suite.service.SetPaymentStatus(suite.ctx, smallID, "p1", domain.Paid)
	suite.Require().NoError(err)

	// Flipping the larger fund to paid and back would go below zero if the
	// smaller collection were the only money in; force that shape directly.
	_, err = suite.store.UpdateDocument(suite.ctx, func(doc *domain.LedgerDocument) error {
		doc.FindFund(largeID).Payments["p1"] = domain.Paid
		return nil
	})
	suite.Require().NoError(err)

	doc, err := suite.service.SetPaymentStatus(suite.ctx, largeID, "p1", domain.Unpaid)
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.IsZero())
}

func (suite *PaymentServiceTestSuite) TestUnknownFundFails() {
	_, err := suite.service.SetPaymentStatus(suite.ctx, "missing", "p1", domain.Paid)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestPlayerWithoutEntryFails() {
	fundID := suite.createFund(500, "p1")
	_, err := suite.service.SetPaymentStatus(suite.ctx, fundID, "stranger", domain.Paid)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestBulkAppliesSummedDeltaOnce() {
	fund1 := suite.createFund(100, "p1")
	fund2 := suite.createFund(200, "p1")

	doc, err := suite.service.SetPaymentStatusAcrossFunds(suite.ctx, "p1", []string{fund1, fund2}, domain.Paid, nil)
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(300)))
	suite.Equal(domain.Paid, doc.FindFund(fund1).Payments["p1"])
	suite.Equal(domain.Paid, doc.FindFund(fund2).Payments["p1"])
}

func (suite *PaymentServiceTestSuite) TestBulkHonorsAmountOverrides() {
	fund1 := suite.createFund(100, "p1")
	fund2 := suite.createFund(200, "p1")

	// The override carries principal plus penalty for fund1.
	doc, err := suite.service.SetPaymentStatusAcrossFunds(suite.ctx, "p1", []string{fund1, fund2}, domain.Paid,
		map[string]decimal.Decimal{fund1: decimal.NewFromInt(130)})
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(330)))
}

func (suite *PaymentServiceTestSuite) TestBulkSkipsFundsWithoutEntry() {
	fund1 := suite.createFund(100, "p1")
	fund2 := suite.createFund(200, "p2")

	doc, err := suite.service.SetPaymentStatusAcrossFunds(suite.ctx, "p1", []string{fund1, fund2}, domain.Paid, nil)
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.Equal(decimal.NewFromInt(100)))
	suite.Equal(domain.Unpaid, doc.FindFund(fund2).Payments["p2"])
}

func (suite *PaymentServiceTestSuite) TestBulkUnknownFundFailsWithNoStateChange() {
	fund1 := suite.createFund(100, "p1")

	_, err := suite.service.SetPaymentStatusAcrossFunds(suite.ctx, "p1", []string{fund1, "missing"}, domain.Paid, nil)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	doc, err := suite.store.GetDocument(suite.ctx)
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.IsZero())
	suite.Equal(domain.Unpaid, doc.FindFund(fund1).Payments["p1"])
}

func (suite *PaymentServiceTestSuite) TestBulkUnpaidFloorsAtZero() {
	fund1 := suite.createFund(100, "p1")
	fund2 := suite.createFund(200, "p1")

	_, err := suite.service.SetPaymentStatus(suite.ctx, fund1, "p1", domain.Paid)
	suite.Require().NoError(err)
	_, err = suite.store.UpdateDocument(suite.ctx, func(doc *domain.LedgerDocument) error {
		doc.FindFund(fund2).Payments["p1"] = domain.Paid
		return nil
	})
	suite.Require().NoError(err)

	// Balance holds 100 but the bulk unpaid flip subtracts 300.
	doc, err := suite.service.SetPaymentStatusAcrossFunds(suite.ctx, "p1", []string{fund1, fund2}, domain.Unpaid, nil)
	suite.Require().NoError(err)
	suite.True(doc.TotalBalance.IsZero())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
