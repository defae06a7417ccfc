/*
Copyright 2024 Sanad Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wacul/ptr"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanadpay/sanad"
	model2 "github.com/sanadpay/sanad/api/model"
	"github.com/sanadpay/sanad/config"
	"github.com/sanadpay/sanad/database/mocks"
	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/internal/biometric"
	"github.com/sanadpay/sanad/internal/password"
	"github.com/sanadpay/sanad/internal/request"
	"github.com/sanadpay/sanad/internal/token"
	"github.com/sanadpay/sanad/model"
)

type TestRequest struct {
	Payload  io.Reader
	Router   *gin.Engine
	Response interface{}
	Method   string
	Route    string
	Auth     string
	Header   map[string]string
}

func SetUpTestRequest(s TestRequest) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(s.Method, s.Route, s.Payload)
	for key, value := range s.Header {
		req.Header.Set(key, value)
	}
	if s.Auth != "" {
		req.Header.Set("Authorization", "Bearer "+s.Auth)
	}
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	s.Router.ServeHTTP(resp, req)

	if s.Response != nil && resp.Body.Len() > 0 {
		if err := json.NewDecoder(resp.Body).Decode(s.Response); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

type testServer struct {
	router *gin.Engine
	ds     *mocks.MockDataSource
	tokens *token.JWTService
	hasher *password.Hasher
}

func setupRouter(t *testing.T) *testServer {
	t.Helper()
	config.MockConfig(&config.Configuration{
		ProjectName: "sanad-test",
		DataSource:  config.DataSourceConfig{Dns: "postgres://postgres:@localhost:5432/sanad?sslmode=disable"},
		Auth:        config.AuthConfig{SecretKey: "test-secret"},
	})

	ds := &mocks.MockDataSource{}
	tokens := token.NewJWTService("test-secret", "sanad-test", time.Minute, time.Hour)
	hasher := password.NewHasher(bcrypt.MinCost)
	s, err := sanad.NewSanad(ds, tokens, hasher, biometric.NewStubOracle())
	require.NoError(t, err)

	api := NewAPI(s)
	require.NotNil(t, api)
	return &testServer{router: api.Router(), ds: ds, tokens: tokens, hasher: hasher}
}

func fakeIdentity(status model.UserStatus) *model.Identity {
	return &model.Identity{
		IdentityID: model.GenerateUUIDWithSuffix(model.IdentityPrefix),
		Email:      strings.ToLower(gofakeit.Email()),
		Username:   gofakeit.Username(),
		FirstName:  gofakeit.FirstName(),
		LastName:   gofakeit.LastName(),
		Status:     status,
	}
}

// login issues an access token for identity and teaches the mock how to
// resolve it, optionally with an employee role.
func (ts *testServer) login(t *testing.T, identity *model.Identity, role model.Role) string {
	t.Helper()
	pair, err := ts.tokens.Issue(identity)
	require.NoError(t, err)

	ts.ds.On("GetIdentityByID", mock.Anything, identity.IdentityID).Return(identity, nil).Maybe()
	if role == model.RoleNone {
		ts.ds.On("GetEmployeeByIdentity", mock.Anything, identity.IdentityID).
			Return(nil, apierror.NewAPIError(apierror.ErrNotFound, "employee not found", nil)).Maybe()
	} else {
		ts.ds.On("GetEmployeeByIdentity", mock.Anything, identity.IdentityID).
			Return(&model.Employee{EmployeeID: "emp_test", IdentityID: identity.IdentityID, Role: role}, nil).Maybe()
	}
	return pair.Access
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	code, _ := body["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	ts := setupRouter(t)
	var response string
	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodGet, Route: "/", Response: &response})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "server running...", response)
}

func TestLogin(t *testing.T) {
	ts := setupRouter(t)

	verified := fakeIdentity(model.StatusVerified)
	hash, err := ts.hasher.Hash("correct-horse")
	require.NoError(t, err)
	verified.PasswordHash = hash
	pending := fakeIdentity(model.StatusPending)
	pending.PasswordHash = hash

	ts.ds.On("GetIdentityByEmail", mock.Anything, verified.Email).Return(verified, nil)
	ts.ds.On("GetIdentityByEmail", mock.Anything, pending.Email).Return(pending, nil)

	tests := []struct {
		name         string
		payload      model2.Login
		expectedCode int
		expectedErr  apierror.ErrorCode
	}{
		{"valid credentials", model2.Login{Email: verified.Email, Password: "correct-horse"}, http.StatusOK, ""},
		{"wrong password", model2.Login{Email: verified.Email, Password: "battery-staple"}, http.StatusUnauthorized, apierror.ErrInvalidCredentials},
		{"pending account", model2.Login{Email: pending.Email, Password: "correct-horse"}, http.StatusUnauthorized, apierror.ErrAccountInactive},
		{"missing password", model2.Login{Email: verified.Email}, http.StatusBadRequest, apierror.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := request.ToJsonReq(&tt.payload)
			require.NoError(t, err)
			resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/login", Payload: payload})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.Code)

			if tt.expectedErr != "" {
				assert.Equal(t, string(tt.expectedErr), errorCode(t, resp))
				return
			}
			var session model.Session
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &session))
			assert.NotEmpty(t, session.Access)
			assert.NotEmpty(t, session.Refresh)
			assert.True(t, session.User.IsActive)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	ts := setupRouter(t)
	identity := fakeIdentity(model.StatusVerified)
	pair, err := ts.tokens.Issue(identity)
	require.NoError(t, err)
	ts.ds.On("GetIdentityByID", mock.Anything, identity.IdentityID).Return(identity, nil)

	payload, err := request.ToJsonReq(model2.RefreshToken{Refresh: pair.Refresh})
	require.NoError(t, err)
	var session model.Session
	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/token/refresh", Payload: payload, Response: &session})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, session.Access)

	payload, err = request.ToJsonReq(model2.RefreshToken{Refresh: pair.Access})
	require.NoError(t, err)
	resp, err = SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/token/refresh", Payload: payload})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRegister(t *testing.T) {
	ts := setupRouter(t)
	ts.ds.On("CreateIdentity", mock.Anything, mock.AnythingOfType("*model.Identity")).Return(nil).Once()

	payload, err := request.ToJsonReq(model2.Register{
		Email:      gofakeit.Email(),
		Username:   gofakeit.Username(),
		Password:   "long-enough-password",
		FirstName:  "Omar",
		LastName:   "Saleh",
		EmiratesID: ptr.String("784-1990-7654321-2"),
		FaceScan:   ptr.String("c2Nhbg=="),
	})
	require.NoError(t, err)

	var identity model.Identity
	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/register", Payload: payload, Response: &identity})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, model.StatusPending, identity.Status)
	assert.NotContains(t, resp.Body.String(), "c2Nhbg==")

	payload, err = request.ToJsonReq(model2.Register{
		Email:      gofakeit.Email(),
		Username:   gofakeit.Username(),
		Password:   "long-enough-password",
		EmiratesID: ptr.String("784-19-1-2"),
	})
	require.NoError(t, err)
	resp, err = SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/register", Payload: payload})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	ts.ds.AssertNumberOfCalls(t, "CreateIdentity", 1)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := setupRouter(t)
	routes := []struct{ method, route string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/cards"},
		{http.MethodPost, "/transactions/start"},
		{http.MethodGet, "/transfers"},
		{http.MethodGet, "/delivery/signature"},
	}
	for _, r := range routes {
		resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: r.method, Route: r.route, Payload: strings.NewReader("{}")})
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.Code, r.route)
		assert.Equal(t, string(apierror.ErrUnauthenticated), errorCode(t, resp))
	}
}

func TestBlockedAccountIsRejected(t *testing.T) {
	ts := setupRouter(t)
	blocked := fakeIdentity(model.StatusBlocked)
	accessToken := ts.login(t, blocked, model.RoleNone)

	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodGet, Route: "/transactions", Auth: accessToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, string(apierror.ErrAccountInactive), errorCode(t, resp))
}

func TestStartTransaction_Withdrawal(t *testing.T) {
	ts := setupRouter(t)
	caller := fakeIdentity(model.StatusVerified)
	accessToken := ts.login(t, caller, model.RoleNone)

	ts.ds.On("GetCardByID", mock.Anything, "crd_4242").
		Return(&model.Card{CardID: "crd_4242", IdentityID: caller.IdentityID, LastFour: "4242", IsActive: true}, nil).Once()
	stored := &model.Transaction{}
	ts.ds.On("RecordTransaction", mock.Anything, mock.AnythingOfType("*model.Transaction")).
		Run(func(args mock.Arguments) { *stored = *args.Get(1).(*model.Transaction) }).
		Return(stored, nil).Once()

	payload := strings.NewReader(`{"card_id":"crd_4242","transaction_type":"withdrawal","amount":"100.00","currency_from":"AED"}`)
	var response model.Transaction
	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/transactions/start", Payload: payload, Auth: accessToken, Response: &response})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, model.TxnStatusPending, response.Status)
	assert.Equal(t, "crd_4242", *response.CardID)
	assert.True(t, response.Amount.Decimal.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, caller.IdentityID, response.IdentityID)
}

func TestStartTransaction_ForeignCard(t *testing.T) {
	ts := setupRouter(t)
	caller := fakeIdentity(model.StatusVerified)
	accessToken := ts.login(t, caller, model.RoleNone)
	ts.ds.On("GetCardByID", mock.Anything, "crd_other").
		Return(&model.Card{CardID: "crd_other", IdentityID: "idt_someone_else"}, nil).Once()

	payload := strings.NewReader(`{"card_id":"crd_other","transaction_type":"deposit","amount":5}`)
	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/transactions/start", Payload: payload, Auth: accessToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, string(apierror.ErrInvalidInput), errorCode(t, resp))
	ts.ds.AssertNotCalled(t, "RecordTransaction", mock.Anything, mock.Anything)
}

func TestStartTransaction_MalformedBody(t *testing.T) {
	ts := setupRouter(t)
	accessToken := ts.login(t, fakeIdentity(model.StatusVerified), model.RoleNone)

	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/transactions/start", Payload: strings.NewReader(`{"amount":`), Auth: accessToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestStartTransaction_MissingAmount(t *testing.T) {
	ts := setupRouter(t)
	accessToken := ts.login(t, fakeIdentity(model.StatusVerified), model.RoleNone)

	payload := strings.NewReader(`{"transaction_type":"withdrawal","card_id":"crd_owned"}`)
	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/transactions/start", Payload: payload, Auth: accessToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, string(apierror.ErrInvalidInput), errorCode(t, resp))
	ts.ds.AssertNotCalled(t, "RecordTransaction", mock.Anything, mock.Anything)
}

func TestListTransactions_Pagination(t *testing.T) {
	ts := setupRouter(t)
	caller := fakeIdentity(model.StatusVerified)
	accessToken := ts.login(t, caller, model.RoleNone)
	ts.ds.On("GetTransactionsByIdentity", mock.Anything, caller.IdentityID, []model.TransactionType(nil), 5, 10).
		Return([]model.Transaction{{TransactionID: "txn_1", IdentityID: caller.IdentityID}}, nil).Once()

	var transactions []model.Transaction
	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodGet, Route: "/transactions?limit=5&offset=10", Auth: accessToken, Response: &transactions})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, transactions, 1)

	resp, err = SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodGet, Route: "/transactions?limit=many", Auth: accessToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateCard_Forbidden(t *testing.T) {
	ts := setupRouter(t)
	accessToken := ts.login(t, fakeIdentity(model.StatusVerified), model.RoleAdmin)

	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/cards", Payload: strings.NewReader(`{"last_four":"4242"}`), Auth: accessToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "use external provisioning")
}

func TestChangeUserStatus(t *testing.T) {
	ts := setupRouter(t)
	staffToken := ts.login(t, fakeIdentity(model.StatusVerified), model.RoleStaff)
	adminToken := ts.login(t, fakeIdentity(model.StatusVerified), model.RoleAdmin)

	target := fakeIdentity(model.StatusPending)
	ts.ds.On("GetIdentityByID", mock.Anything, target.IdentityID).Return(target, nil).Once()
	ts.ds.On("UpdateIdentityStatus", mock.Anything, target.IdentityID, model.StatusVerified).Return(nil).Once()

	route := "/users/" + target.IdentityID + "/change-status"

	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: route, Payload: strings.NewReader(`{"status":"verified"}`), Auth: staffToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp, err = SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: route, Payload: strings.NewReader(`{"status":"approved"}`), Auth: adminToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var body map[string]string
	resp, err = SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: route, Payload: strings.NewReader(`{"status":"verified"}`), Auth: adminToken, Response: &body})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "verified", body["status"])
}

func TestEmployees(t *testing.T) {
	ts := setupRouter(t)
	adminToken := ts.login(t, fakeIdentity(model.StatusVerified), model.RoleAdmin)

	target := fakeIdentity(model.StatusVerified)
	ts.ds.On("GetIdentityByID", mock.Anything, target.IdentityID).Return(target, nil).Once()
	ts.ds.On("GetEmployeeByIdentity", mock.Anything, target.IdentityID).
		Return(&model.Employee{EmployeeID: "emp_existing", IdentityID: target.IdentityID, Role: model.RoleStaff}, nil).Once()
	ts.ds.On("DeleteEmployee", mock.Anything, "emp_existing").Return(nil).Once()

	payload, err := request.ToJsonReq(model2.CreateEmployee{UserID: target.IdentityID, Role: "admin"})
	require.NoError(t, err)
	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/employees/create", Payload: payload, Auth: adminToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "user is already an employee")
	ts.ds.AssertNotCalled(t, "CreateEmployee", mock.Anything, mock.Anything)

	resp, err = SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodDelete, Route: "/employees/delete/emp_existing", Auth: adminToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestSignature(t *testing.T) {
	ts := setupRouter(t)
	caller := fakeIdentity(model.StatusVerified)
	accessToken := ts.login(t, caller, model.RoleNone)

	ts.ds.On("UpsertSignature", mock.Anything, mock.MatchedBy(func(sig *model.DigitalSignature) bool {
		return sig.IdentityID == caller.IdentityID && sig.Purpose == model.PurposeDelivery
	})).Return(&model.DigitalSignature{SignatureID: "sig_1", IdentityID: caller.IdentityID, SignatureData: "<svg/>", Purpose: model.PurposeDelivery}, nil).Once()
	ts.ds.On("GetSignatureByIdentity", mock.Anything, caller.IdentityID).
		Return(&model.DigitalSignature{SignatureID: "sig_1", IdentityID: caller.IdentityID, SignatureData: "<svg/>", Purpose: model.PurposeDelivery}, nil).Once()

	payload, err := request.ToJsonReq(model2.CaptureSignature{SignatureData: "<svg/>", Purpose: "delivery"})
	require.NoError(t, err)
	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/delivery/signature", Payload: payload, Auth: accessToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Code)

	var signature model.DigitalSignature
	resp, err = SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodGet, Route: "/delivery/signature", Auth: accessToken, Response: &signature})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "sig_1", signature.SignatureID)

	payload, err = request.ToJsonReq(model2.CaptureSignature{})
	require.NoError(t, err)
	resp, err = SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/delivery/signature", Payload: payload, Auth: accessToken})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestVerifyFaceID(t *testing.T) {
	ts := setupRouter(t)
	caller := fakeIdentity(model.StatusVerified)
	accessToken := ts.login(t, caller, model.RoleNone)
	ts.ds.On("SubmitVerification", mock.Anything, caller.IdentityID, "c2Nhbg==", "784-1990-7654321-2").Return(nil).Once()

	payload, err := request.ToJsonReq(model2.VerifyFaceID{FaceScan: "c2Nhbg==", EmiratesID: "784-1990-7654321-2"})
	require.NoError(t, err)
	var body map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{Router: ts.router, Method: http.MethodPost, Route: "/delivery/verify-face-id", Payload: payload, Auth: accessToken, Response: &body})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, false, body["is_approved"])
}
