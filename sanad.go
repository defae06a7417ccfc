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

package sanad

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/sanadpay/sanad/database"
	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/model"
	"github.com/sanadpay/sanad/policy"
)

//go:embed sql/*.sql
var SQLFiles embed.FS

// TokenIssuer mints and validates the credential pair handed out at login.
type TokenIssuer interface {
	Issue(identity *model.Identity) (model.TokenPair, error)
	ParseAccess(token string) (string, error)
	ParseRefresh(token string) (string, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// BiometricOracle decides whether a face scan matches a national id.
type BiometricOracle interface {
	Verify(ctx context.Context, faceScan, emiratesID string) (bool, error)
}

// Sanad represents the main struct for the Sanad application.
type Sanad struct {
	datasource database.IDataSource
	tokens     TokenIssuer
	hasher     PasswordHasher
	oracle     BiometricOracle
	now        func() time.Time
}

// NewSanad wires the core service to its storage and boundary collaborators.
//
// Parameters:
// - db database.IDataSource: The datasource for database operations.
// - tokens TokenIssuer: Issues and validates access/refresh tokens.
// - hasher PasswordHasher: Hashes and verifies passwords.
// - oracle BiometricOracle: Accepts or rejects biometric submissions.
//
// Returns:
// - *Sanad: A pointer to the newly created Sanad instance.
// - error: An error if a collaborator is missing.
func NewSanad(db database.IDataSource, tokens TokenIssuer, hasher PasswordHasher, oracle BiometricOracle) (*Sanad, error) {
	if db == nil || tokens == nil || hasher == nil || oracle == nil {
		return nil, errors.New("sanad: datasource, token issuer, password hasher and biometric oracle are required")
	}
	return &Sanad{
		datasource: db,
		tokens:     tokens,
		hasher:     hasher,
		oracle:     oracle,
		now:        time.Now,
	}, nil
}

func requireAuthenticated(caller model.Caller) error {
	if !caller.Authenticated() {
		return apierror.NewAPIError(apierror.ErrUnauthenticated, "authentication required", nil)
	}
	return nil
}

// requireApproved gates operations reserved to verified identities.
func requireApproved(caller model.Caller) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}
	if !policy.IsApproved(caller) {
		return apierror.NewAPIError(apierror.ErrForbidden, "account is not approved", nil)
	}
	return nil
}

// requireAdmin gates back-office operations.
func requireAdmin(caller model.Caller) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}
	if !policy.IsAdmin(caller) {
		return apierror.NewAPIError(apierror.ErrForbidden, "admin role required", nil)
	}
	return nil
}

func invalidInput(message string, details interface{}) error {
	return apierror.NewAPIError(apierror.ErrInvalidInput, message, details)
}
