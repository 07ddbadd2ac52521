package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crickclub/club_funds_app/internal/core/domain"
	portsrepo "github.com/crickclub/club_funds_app/internal/core/ports/repositories"
	"github.com/crickclub/club_funds_app/internal/core/services"
	"github.com/crickclub/club_funds_app/internal/dto"
	"github.com/crickclub/club_funds_app/internal/handlers"
	"github.com/crickclub/club_funds_app/internal/platform/config"
	"github.com/crickclub/club_funds_app/internal/repositories/memory"
	"github.com/crickclub/club_funds_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testPassword = "club-password"

// RouterTestSuite drives the registered routes end to end over the in-memory
// store: real services, real middleware, HTTP in and out.
type RouterTestSuite struct {
	suite.Suite
	store  *memory.Store
	cfg    *config.Config
	router *gin.Engine
}

func (suite *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (suite *RouterTestSuite) SetupTest() {
	hash, err := utils.HashPassword(testPassword)
	suite.Require().NoError(err)

	suite.cfg = &config.Config{
		IsProduction:       true, // no swagger routes in the test router
		JWTSecret:          "router-test-secret",
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "club-funds-app",
		ClubPasswordHash:   hash,
		AdminID:            "admin-1",
		FundManagerID:      "fm-1",
		MatchFundManagerID: "mfm-1",
		LoginRateLimit:     "100-M",
		PenaltyPerDay:      decimal.NewFromInt(10),
	}

	suite.store = memory.NewStore()
	suite.store.SeedRoster([]domain.Player{
		{PlayerID: "admin-1", Name: "Asha"},
		{PlayerID: "fm-1", Name: "Bilal"},
		{PlayerID: "mfm-1", Name: "Charu"},
		{PlayerID: "member-1", Name: "Dev"},
	})

	container := services.NewServiceContainer(suite.cfg, portsrepo.RepositoryProvider{
		LedgerRepo: suite.store,
		RosterRepo: suite.store,
	})

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, container)
}

func (suite *RouterTestSuite) tokenFor(playerID string, role domain.Role) string {
	token, _, err := utils.GenerateJWT(playerID, role, suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return token
}

func (suite *RouterTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) TestHealthIsPublic() {
	w := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestAPIRequiresToken() {
	w := suite.do(http.MethodGet, "/api/v1/ledger", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestLoginIssuesRoleToken() {
	w := suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{
		PlayerID: "fm-1",
		Password: testPassword,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.RoleFundManager), resp.Role)
	suite.NotEmpty(resp.Token)

	// The issued token must get through the API middleware.
	w = suite.do(http.MethodGet, "/api/v1/ledger", resp.Token, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestLoginRejectsWrongPassword() {
	w := suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{
		PlayerID: "fm-1",
		Password: "nope",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestMemberCannotMutateFunds() {
	token := suite.tokenFor("member-1", domain.RoleMember)
	w := suite.do(http.MethodPost, "/api/v1/funds", token, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.NewFromInt(500),
		Players:     []string{"member-1"},
	})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *RouterTestSuite) TestFundManagerCannotMutateMatchExpenses() {
	token := suite.tokenFor("fm-1", domain.RoleFundManager)
	w := suite.do(http.MethodPost, "/api/v1/match-expenses", token, dto.SaveMatchExpenseRequest{
		Description: "Sunday friendly",
		MatchFees:   decimal.NewFromInt(300),
		Players:     []string{"fm-1"},
		PaidBy:      "fm-1",
	})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *RouterTestSuite) TestAdminPassesEveryGuard() {
	token := suite.tokenFor("admin-1", domain.RoleAdmin)

	w := suite.do(http.MethodPost, "/api/v1/funds", token, dto.SaveFundRequest{
		Description: "dues",
		Amount:      decimal.NewFromInt(500),
		Players:     []string{"member-1"},
	})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/match-expenses", token, dto.SaveMatchExpenseRequest{
		Description: "Sunday friendly",
		MatchFees:   decimal.NewFromInt(300),
		Players:     []string{"member-1"},
		PaidBy:      "member-1",
	})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestFundPaymentFlowOverHTTP() {
	token := suite.tokenFor("fm-1", domain.RoleFundManager)

	w := suite.do(http.MethodPost, "/api/v1/funds", token, dto.SaveFundRequest{
		Description: "March dues",
		Amount:      decimal.NewFromInt(500),
		Players:     []string{"member-1", "fm-1"},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var saved dto.SaveFundResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &saved))
	suite.Require().NotEmpty(saved.Fund.FundID)

	w = suite.do(http.MethodPut, "/api/v1/funds/payment", token, dto.SetPaymentStatusRequest{
		FundID:   saved.Fund.FundID,
		PlayerID: "member-1",
		Status:   "paid",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var balance dto.FundsBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &balance))
	suite.True(balance.TotalBalance.Equal(decimal.NewFromInt(500)))
}

func (suite *RouterTestSuite) TestSaveFundRejectsZeroAmountAtBinding() {
	token := suite.tokenFor("fm-1", domain.RoleFundManager)
	w := suite.do(http.MethodPost, "/api/v1/funds", token, map[string]any{
		"description": "dues",
		"amount":      "0",
		"players":     []string{"member-1"},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestRosterIsReadableByMembers() {
	token := suite.tokenFor("member-1", domain.RoleMember)
	w := suite.do(http.MethodGet, "/api/v1/roster", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var roster dto.RosterResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &roster))
	suite.Len(roster.Players, 4)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
