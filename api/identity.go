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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sanadpay/sanad/api/middleware"
	model2 "github.com/sanadpay/sanad/api/model"
)

// Login exchanges an email and password for an access/refresh token pair.
//
// Responses:
// - 400 Bad Request: If the body is malformed or a field is missing.
// - 401 Unauthorized: INVALID_CREDENTIALS, or ACCOUNT_INACTIVE for accounts that are not verified.
// - 200 OK: With the token pair and an account summary.
func (a Api) Login(c *gin.Context) {
	var req model2.Login
	if !bindJSON(c, &req) || !validated(c, req.ValidateLogin()) {
		return
	}

	session, err := a.sanad.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// RefreshToken re-issues a token pair from a refresh token.
func (a Api) RefreshToken(c *gin.Context) {
	var req model2.RefreshToken
	if !bindJSON(c, &req) || !validated(c, req.ValidateRefreshToken()) {
		return
	}

	session, err := a.sanad.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Register creates a pending account. The account cannot log in until an
// admin verifies it.
//
// Responses:
// - 400 Bad Request: Malformed input, a rejected face scan, or a duplicate email.
// - 201 Created: With the new identity.
func (a Api) Register(c *gin.Context) {
	var req model2.Register
	if !bindJSON(c, &req) || !validated(c, req.ValidateRegister()) {
		return
	}

	registration, err := req.ToRegistration()
	if !validated(c, err) {
		return
	}

	identity, err := a.sanad.Register(c.Request.Context(), registration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, identity)
}

func (a Api) ListUsers(c *gin.Context) {
	users, err := a.sanad.ListUsers(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ChangeUserStatus sets another account's verification status. Admin only.
//
// Responses:
// - 403 Forbidden: If the caller is not an admin.
// - 400 Bad Request: If the status is not pending, verified or blocked.
// - 404 Not Found: If the account does not exist.
// - 200 OK: With the updated status.
func (a Api) ChangeUserStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model2.ChangeStatus
	if !bindJSON(c, &req) {
		return
	}

	identity, err := a.sanad.ChangeUserStatus(c.Request.Context(), middleware.CallerFrom(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": identity.IdentityID, "status": identity.Status})
}

// VerifyFaceID submits a face scan and emirates id for review. The account
// returns to pending.
func (a Api) VerifyFaceID(c *gin.Context) {
	var req model2.VerifyFaceID
	if !bindJSON(c, &req) {
		return
	}

	identity, err := a.sanad.SubmitBiometricVerification(c.Request.Context(), middleware.CallerFrom(c), req.FaceScan, req.EmiratesID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": identity.IdentityID, "status": identity.Status, "is_approved": identity.IsActive()})
}
