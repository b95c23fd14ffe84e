package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portssvc "github.com/SscSPs/opening_balances/internal/core/ports/services"
	"github.com/SscSPs/opening_balances/internal/dto"
	"github.com/SscSPs/opening_balances/internal/handlers"
	"github.com/SscSPs/opening_balances/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type errorBody struct {
	Error   string         `json:"error"`
	Kind    string         `json:"kind"`
	Details map[string]any `json:"details"`
}

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	periodSvc   *MockOpeningPeriodService
	balanceSvc  *MockOpeningBalanceService
	detailSvc   *MockOpeningBalanceDetailService
	jwtSecret   string
	tenantID    string
	userID      string
	healthError error
}

// generateTestToken creates a signed JWT for the given subject.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "obe-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.healthError = nil

	suite.periodSvc = new(MockOpeningPeriodService)
	suite.balanceSvc = new(MockOpeningBalanceService)
	suite.detailSvc = new(MockOpeningBalanceDetailService)

	handlers.RegisterRoutes(suite.router, &config.Config{JWTSecret: suite.jwtSecret}, &portssvc.ServiceContainer{
		Period:  suite.periodSvc,
		Balance: suite.balanceSvc,
		Detail:  suite.detailSvc,
	}, stubHealthFunc(func() error { return suite.healthError }))
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.periodSvc.AssertExpectations(suite.T())
	suite.balanceSvc.AssertExpectations(suite.T())
	suite.detailSvc.AssertExpectations(suite.T())
}

// stubHealthFunc defers the ping result to the test so it can change between requests.
type stubHealthFunc func() error

func (f stubHealthFunc) Ping(context.Context) error { return f() }

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	url := fmt.Sprintf("/api/v1/tenants/%s%s", suite.tenantID, path)
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) errorBody {
	var body errorBody
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// --- Auth and health ---

func (suite *HandlerTestSuite) TestMissingTokenIsUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/tenants/t1/opening-periods", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.periodSvc.AssertNotCalled(suite.T(), "ListPeriods", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestTokenSignedWithOtherSecretIsRejected() {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u"})
	signed, err := token.SignedString([]byte("another-secret"))
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/tenants/t1/opening-periods", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	suite.healthError = errors.New("connection refused")
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

// --- Periods ---

func (suite *HandlerTestSuite) TestCreatePeriod_Success() {
	openingDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	expected := &domain.OpeningPeriod{
		PeriodID:    uuid.NewString(),
		TenantID:    suite.tenantID,
		Name:        "FY2024",
		OpeningDate: openingDate,
		AuditFields: domain.NewAuditFields(suite.userID, time.Now().UTC()),
	}
	suite.periodSvc.On("CreatePeriod", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(req dto.CreateOpeningPeriodRequest) bool {
			return req.Name == "FY2024" && req.OpeningDate.Equal(openingDate)
		}), suite.userID,
	).Return(expected, nil).Once()

	w := suite.do(http.MethodPost, "/opening-periods", map[string]any{
		"name":        "FY2024",
		"openingDate": openingDate,
	})

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.OpeningPeriodResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(expected.PeriodID, body.PeriodID)
	suite.Equal(suite.userID, body.CreatedBy)
}

func (suite *HandlerTestSuite) TestCreatePeriod_MissingName() {
	w := suite.do(http.MethodPost, "/opening-periods", map[string]any{"openingDate": time.Now()})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("bad_request", suite.decodeError(w).Kind)
	suite.periodSvc.AssertNotCalled(suite.T(), "CreatePeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreatePeriod_DuplicateName() {
	suite.periodSvc.On("CreatePeriod", mock.Anything, suite.tenantID, mock.Anything, suite.userID).
		Return(nil, apperrors.NewConflict("an opening period with this name already exists").WithDetail("name", "FY2024")).Once()

	w := suite.do(http.MethodPost, "/opening-periods", map[string]any{"name": "FY2024", "openingDate": time.Now()})

	suite.Equal(http.StatusConflict, w.Code)
	body := suite.decodeError(w)
	suite.Equal("conflict", body.Kind)
	suite.Equal("FY2024", body.Details["name"])
}

func (suite *HandlerTestSuite) TestGetPeriod_NotFound() {
	suite.periodSvc.On("GetPeriod", mock.Anything, suite.tenantID, "missing").
		Return(nil, apperrors.NewNotFound("opening period not found")).Once()

	w := suite.do(http.MethodGet, "/opening-periods/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("opening period not found", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestListPeriods_InternalErrorIsHidden() {
	suite.periodSvc.On("ListPeriods", mock.Anything, suite.tenantID).
		Return(nil, errors.New("pq: relation does not exist")).Once()

	w := suite.do(http.MethodGet, "/opening-periods", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	body := suite.decodeError(w)
	suite.Equal("Failed to list opening periods", body.Error)
	suite.Equal("internal", body.Kind)
	suite.NotContains(w.Body.String(), "relation")
}

func (suite *HandlerTestSuite) TestUpdatePeriod_Locked() {
	suite.periodSvc.On("UpdatePeriod", mock.Anything, suite.tenantID, "p1",
		mock.MatchedBy(func(req dto.UpdateOpeningPeriodRequest) bool {
			return req.Name != nil && *req.Name == "renamed" && req.Description == nil
		}), suite.userID,
	).Return(nil, apperrors.NewForbidden("opening period is locked")).Once()

	w := suite.do(http.MethodPut, "/opening-periods/p1", map[string]any{"name": "renamed"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("forbidden", suite.decodeError(w).Kind)
}

func (suite *HandlerTestSuite) TestDeletePeriod() {
	suite.periodSvc.On("DeletePeriod", mock.Anything, suite.tenantID, "p1", suite.userID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/opening-periods/p1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestLockPeriod_ValidationFailure() {
	mismatch := domain.ValidationError{
		BalanceID:     "b1",
		AccountNumber: "131",
		Type:          domain.ValidationErrorSumMismatch,
		Side:          "debit",
		Expected:      decimal.NewFromInt(100),
		Actual:        decimal.RequireFromString("99.989"),
	}
	suite.periodSvc.On("LockPeriod", mock.Anything, suite.tenantID, "p1", suite.userID).
		Return(nil, apperrors.NewBadRequest("opening period does not reconcile").
			WithDetail("validationErrors", []domain.ValidationError{mismatch})).Once()

	w := suite.do(http.MethodPost, "/opening-periods/p1/lock", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Equal("bad_request", body.Kind)
	errs, ok := body.Details["validationErrors"].([]any)
	suite.Require().True(ok)
	suite.Require().Len(errs, 1)
	suite.Equal("sum_mismatch", errs[0].(map[string]any)["type"])
}

func (suite *HandlerTestSuite) TestLockPeriod_Success() {
	now := time.Now().UTC()
	suite.periodSvc.On("LockPeriod", mock.Anything, suite.tenantID, "p1", suite.userID).
		Return(&domain.OpeningPeriod{PeriodID: "p1", Locked: true, LockedAt: &now, LockedBy: &suite.userID}, nil).Once()

	w := suite.do(http.MethodPost, "/opening-periods/p1/lock", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.OpeningPeriodResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Locked)
	suite.Equal(suite.userID, *body.LockedBy)
}

func (suite *HandlerTestSuite) TestValidateAndSummary() {
	suite.periodSvc.On("ValidatePeriod", mock.Anything, suite.tenantID, "p1").
		Return(&domain.ValidationResult{Valid: true, Errors: []domain.ValidationError{}}, nil).Once()
	suite.periodSvc.On("GetSummary", mock.Anything, suite.tenantID, "p1").
		Return(&domain.PeriodSummary{
			PeriodID:      "p1",
			TotalDebit:    decimal.NewFromInt(10000000),
			TotalCredit:   decimal.NewFromInt(10000000),
			TotalBalances: 2,
			IsBalanced:    true,
		}, nil).Once()

	w := suite.do(http.MethodGet, "/opening-periods/p1/validation", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"valid":true,"errors":[]}`, w.Body.String())

	w = suite.do(http.MethodGet, "/opening-periods/p1/summary", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"periodId":"p1","totalDebit":"10000000","totalCredit":"10000000","totalBalances":2,"isBalanced":true}`, w.Body.String())
}

// --- Balances ---

func (suite *HandlerTestSuite) TestCreateBalance_Success() {
	suite.balanceSvc.On("CreateBalance", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(req dto.CreateOpeningBalanceRequest) bool {
			return req.AccountNumber == "111" && req.DebitBalance.Equal(decimal.RequireFromString("1500.50"))
		}), suite.userID,
	).Return(&domain.OpeningBalance{
		BalanceID:     "b1",
		PeriodID:      "p1",
		CurrencyCode:  "VND",
		AccountNumber: "111",
		AccountName:   "Cash",
		DebitBalance:  decimal.RequireFromString("1500.50"),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/opening-balances",
		`{"periodId":"p1","currencyId":"VND","accountNumber":"111","debitBalance":"1500.50"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.OpeningBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Cash", body.AccountName)
	suite.True(body.DebitBalance.Equal(decimal.RequireFromString("1500.5")))
}

func (suite *HandlerTestSuite) TestCreateBalance_NegativeAmountRejectedAtBinding() {
	w := suite.do(http.MethodPost, "/opening-balances",
		`{"periodId":"p1","currencyId":"VND","accountNumber":"111","debitBalance":-5}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decodeError(w).Error, "DebitBalance")
	suite.balanceSvc.AssertNotCalled(suite.T(), "CreateBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateBalance_BothSidesFromService() {
	suite.balanceSvc.On("CreateBalance", mock.Anything, suite.tenantID, mock.Anything, suite.userID).
		Return(nil, apperrors.NewBadRequest(domain.ErrDebitAndCredit.Error()).WithDetail("accountNumber", "111")).Once()

	w := suite.do(http.MethodPost, "/opening-balances",
		`{"periodId":"p1","currencyId":"VND","accountNumber":"111","debitBalance":1,"creditBalance":1}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Equal(domain.ErrDebitAndCredit.Error(), body.Error)
	suite.Equal("111", body.Details["accountNumber"])
}

func (suite *HandlerTestSuite) TestListBalances_BindsQuery() {
	suite.balanceSvc.On("ListBalances", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(p dto.ListOpeningBalancesParams) bool {
			return p.PeriodID == "p1" && p.AccountNumber == "11" && p.HasDetails != nil && *p.HasDetails &&
				p.Limit == 20 && p.Offset == 0
		}),
	).Return([]domain.OpeningBalance{{BalanceID: "b1", AccountNumber: "111"}}, 7, nil).Once()

	w := suite.do(http.MethodGet, "/opening-balances?periodId=p1&accountNumber=11&hasDetails=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListOpeningBalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(7, body.Total)
	suite.Equal(20, body.Limit)
	suite.Len(body.Balances, 1)
}

func (suite *HandlerTestSuite) TestListBalances_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/opening-balances?limit=501", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestBatchUpsertBalances_ContinueOnError() {
	result := &domain.BatchResult{Total: 2, Created: 1, Failed: 1}
	result.Errors = []domain.BatchError{{Index: 1, AccountNumber: "131", Type: "item_failure", Message: "bad"}}
	suite.balanceSvc.On("BatchUpsertBalances", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(req dto.BatchOpeningBalancesRequest) bool {
			return req.Mode == "continue-on-error" && len(req.Balances) == 2
		}), suite.userID,
	).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/opening-balances/batch", map[string]any{
		"periodId":   "p1",
		"currencyId": "VND",
		"mode":       "continue-on-error",
		"balances": []map[string]any{
			{"accountNumber": "111", "debitBalance": "1"},
			{"accountNumber": "131", "debitBalance": "1", "creditBalance": "1"},
		},
	})

	suite.Equal(http.StatusOK, w.Code)
	var body domain.BatchResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(1, body.Failed)
	suite.Equal(1, body.Errors[0].Index)
}

func (suite *HandlerTestSuite) TestBatchUpsertBalances_FailFastItemFailure() {
	suite.balanceSvc.On("BatchUpsertBalances", mock.Anything, suite.tenantID, mock.Anything, suite.userID).
		Return(nil, apperrors.NewItemFailure("131", domain.ErrDebitAndCredit).WithDetail("index", 2)).Once()

	w := suite.do(http.MethodPost, "/opening-balances/batch", map[string]any{
		"periodId":   "p1",
		"currencyId": "VND",
		"balances":   []map[string]any{{"accountNumber": "131"}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Equal("item_failure", body.Kind)
	suite.EqualValues(2, body.Details["index"])
	suite.Equal("131", body.Details["accountNumber"])
}

func (suite *HandlerTestSuite) TestBatchUpsertBalances_UnknownMode() {
	w := suite.do(http.MethodPost, "/opening-balances/batch", map[string]any{
		"periodId":   "p1",
		"currencyId": "VND",
		"mode":       "best-effort",
		"balances":   []map[string]any{{"accountNumber": "111"}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetBalance_IncludesDetails() {
	obj := "c1"
	suite.balanceSvc.On("GetBalance", mock.Anything, suite.tenantID, "b1").Return(&domain.OpeningBalance{
		BalanceID:  "b1",
		HasDetails: true,
		Details: []domain.OpeningBalanceDetail{{
			DetailID:         "d1",
			DetailDimensions: domain.DetailDimensions{AccountObjectID: &obj},
			DebitBalance:     decimal.NewFromInt(5),
		}},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/opening-balances/b1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.OpeningBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Details, 1)
	suite.Equal("c1", *body.Details[0].AccountObjectID)
}

func (suite *HandlerTestSuite) TestDeleteBalance_Locked() {
	suite.balanceSvc.On("DeleteBalance", mock.Anything, suite.tenantID, "b1", suite.userID).
		Return(apperrors.NewForbidden("opening period is locked")).Once()

	w := suite.do(http.MethodDelete, "/opening-balances/b1", nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

// --- Details ---

func (suite *HandlerTestSuite) TestCreateDetail() {
	suite.detailSvc.On("CreateDetail", mock.Anything, suite.tenantID, "b1",
		mock.MatchedBy(func(in dto.OpeningBalanceDetailInput) bool {
			return in.AccountObjectID != nil && *in.AccountObjectID == "c1" && in.DepartmentID == nil
		}), suite.userID,
	).Return(&domain.OpeningBalanceDetail{DetailID: "d1", BalanceID: "b1"}, nil).Once()

	w := suite.do(http.MethodPost, "/opening-balances/b1/details", `{"accountObjectId":"c1","debitBalance":"10"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.OpeningBalanceDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("d1", body.DetailID)
}

func (suite *HandlerTestSuite) TestBatchUpsertDetails_EmptyListRejected() {
	w := suite.do(http.MethodPost, "/opening-balances/b1/details/batch", `{"details":[]}`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDetailCRUD() {
	suite.detailSvc.On("GetDetail", mock.Anything, suite.tenantID, "d1").
		Return(&domain.OpeningBalanceDetail{DetailID: "d1"}, nil).Once()
	suite.detailSvc.On("UpdateDetail", mock.Anything, suite.tenantID, "d1",
		mock.MatchedBy(func(req dto.UpdateOpeningBalanceDetailRequest) bool {
			return req.CreditBalance != nil && req.CreditBalance.Equal(decimal.NewFromInt(3)) && req.Dimensions == nil
		}), suite.userID,
	).Return(&domain.OpeningBalanceDetail{DetailID: "d1", CreditBalance: decimal.NewFromInt(3)}, nil).Once()
	suite.detailSvc.On("DeleteDetail", mock.Anything, suite.tenantID, "d1", suite.userID).
		Return(apperrors.NewNotFound("opening balance detail not found")).Once()
	suite.detailSvc.On("ListDetails", mock.Anything, suite.tenantID, "b1").
		Return([]domain.OpeningBalanceDetail{{DetailID: "d1"}, {DetailID: "d2"}}, nil).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/opening-balance-details/d1", nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodPut, "/opening-balance-details/d1", `{"creditBalance":"3"}`).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/opening-balance-details/d1", nil).Code)

	w := suite.do(http.MethodGet, "/opening-balances/b1/details", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListOpeningBalanceDetailsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Details, 2)
}
