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
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/model"
)

// Registration carries what a new customer supplies at sign-up. Face scan
// and emirates id are optional; when a face scan is present the emirates id
// must be too, and both go through the biometric oracle.
type Registration struct {
	Email       string
	Username    string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber *string
	BirthDate   *time.Time
	Passport    *string
	EmiratesID  *string
	FaceScan    *string
}

func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Username, validation.Required, validation.Length(1, 150)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.Passport, validation.NilOrNotEmpty, validation.Length(1, model.PassportMaxLength)),
		validation.Field(&r.EmiratesID,
			validation.When(r.FaceScan != nil, validation.Required.Error("is required with a face scan")),
			validation.NilOrNotEmpty,
			validation.Match(model.EmiratesIDPattern).Error("must be formatted as 784-YYYY-NNNNNNN-N")),
		validation.Field(&r.FaceScan, validation.NilOrNotEmpty),
	)
}

// Register creates a new identity in the pending state.
//
// Parameters:
// - ctx context.Context: The context for the operation.
// - registration Registration: The sign-up payload.
//
// Returns:
// - *model.Identity: The created identity.
// - error: INVALID_INPUT for malformed input, a rejected scan or a duplicate email/passport.
func (s *Sanad) Register(ctx context.Context, registration Registration) (*model.Identity, error) {
	ctx, span := otel.Tracer("sanad.identity").Start(ctx, "Register")
	defer span.End()

	registration.Email = strings.ToLower(strings.TrimSpace(registration.Email))
	registration.Username = strings.TrimSpace(registration.Username)
	if err := registration.Validate(); err != nil {
		return nil, invalidInput(err.Error(), err)
	}

	if registration.FaceScan != nil {
		if err := s.checkBiometrics(ctx, *registration.FaceScan, *registration.EmiratesID); err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(registration.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	identity := &model.Identity{
		IdentityID:   model.GenerateUUIDWithSuffix(model.IdentityPrefix),
		Email:        registration.Email,
		Username:     registration.Username,
		FirstName:    strings.TrimSpace(registration.FirstName),
		LastName:     strings.TrimSpace(registration.LastName),
		PasswordHash: hash,
		PhoneNumber:  registration.PhoneNumber,
		BirthDate:    registration.BirthDate,
		FaceScan:     registration.FaceScan,
		EmiratesID:   registration.EmiratesID,
		Passport:     registration.Passport,
		Status:       model.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.datasource.CreateIdentity(ctx, identity); err != nil {
		return nil, err
	}

	logrus.WithField("identity_id", identity.IdentityID).Info("identity registered")
	return identity, nil
}

// Login exchanges an email and password for a token pair. Only verified
// identities may log in; a correct password on any other account fails
// with ACCOUNT_INACTIVE rather than INVALID_CREDENTIALS.
//
// Parameters:
// - ctx context.Context: The context for the operation.
// - email string: The login email.
// - password string: The plain-text password.
//
// Returns:
// - *model.Session: Access and refresh tokens plus a summary of the account.
// - error: INVALID_INPUT, INVALID_CREDENTIALS or ACCOUNT_INACTIVE.
func (s *Sanad) Login(ctx context.Context, email, password string) (*model.Session, error) {
	ctx, span := otel.Tracer("sanad.identity").Start(ctx, "Login")
	defer span.End()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, invalidInput("email and password are required", nil)
	}

	identity, err := s.datasource.GetIdentityByEmail(ctx, email)
	if err != nil {
		if apierror.HasCode(err, apierror.ErrNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrInvalidCredentials, "invalid email or password", nil)
		}
		return nil, err
	}

	match, err := s.hasher.Compare(identity.PasswordHash, password)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "failed to verify credentials", err)
	}
	if !match {
		return nil, apierror.NewAPIError(apierror.ErrInvalidCredentials, "invalid email or password", nil)
	}

	if !identity.IsActive() {
		return nil, accountInactive(identity)
	}

	return s.issueSession(identity)
}

// Refresh re-issues a token pair from a refresh token, re-checking that the
// account is still verified.
func (s *Sanad) Refresh(ctx context.Context, refreshToken string) (*model.Session, error) {
	ctx, span := otel.Tracer("sanad.identity").Start(ctx, "Refresh")
	defer span.End()

	identity, err := s.resolveToken(ctx, refreshToken, s.tokens.ParseRefresh)
	if err != nil {
		return nil, err
	}
	return s.issueSession(identity)
}

// Authenticate resolves a bearer access token to a caller. The identity and
// its role assignment are read from storage on every call.
//
// Parameters:
// - ctx context.Context: The context for the operation.
// - accessToken string: The bearer token presented by the client.
//
// Returns:
// - model.Caller: The resolved caller.
// - error: UNAUTHENTICATED for a bad token or unknown identity, ACCOUNT_INACTIVE for a non-verified one.
func (s *Sanad) Authenticate(ctx context.Context, accessToken string) (model.Caller, error) {
	ctx, span := otel.Tracer("sanad.identity").Start(ctx, "Authenticate")
	defer span.End()

	identity, err := s.resolveToken(ctx, accessToken, s.tokens.ParseAccess)
	if err != nil {
		return model.Caller{}, err
	}

	employee, err := s.datasource.GetEmployeeByIdentity(ctx, identity.IdentityID)
	if err != nil {
		if !apierror.HasCode(err, apierror.ErrNotFound) {
			return model.Caller{}, err
		}
		employee = nil
	}

	return model.NewCaller(identity, employee), nil
}

func (s *Sanad) resolveToken(ctx context.Context, raw string, parse func(string) (string, error)) (*model.Identity, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apierror.NewAPIError(apierror.ErrUnauthenticated, "token is required", nil)
	}
	identityID, err := parse(raw)
	if err != nil {
		return nil, err
	}

	identity, err := s.datasource.GetIdentityByID(ctx, identityID)
	if err != nil {
		if apierror.HasCode(err, apierror.ErrNotFound) {
			return nil, apierror.NewAPIError(apierror.ErrUnauthenticated, "account no longer exists", nil)
		}
		return nil, err
	}
	if !identity.IsActive() {
		return nil, accountInactive(identity)
	}
	return identity, nil
}

func (s *Sanad) issueSession(identity *model.Identity) (*model.Session, error) {
	pair, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}
	session := model.NewSession(pair, identity)
	return &session, nil
}

func accountInactive(identity *model.Identity) error {
	return apierror.NewAPIError(apierror.ErrAccountInactive, "account is not active", map[string]model.UserStatus{"status": identity.Status})
}

// ListUsers returns the restricted projection of every identity. Admin only.
func (s *Sanad) ListUsers(ctx context.Context, caller model.Caller) ([]model.UserSummary, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	identities, err := s.datasource.GetAllIdentities(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]model.UserSummary, 0, len(identities))
	for i := range identities {
		users = append(users, identities[i].Summary())
	}
	return users, nil
}

// ChangeUserStatus sets the verification status of another identity. Admin
// only; the requested status must be one of pending, verified or blocked.
//
// Parameters:
// - ctx context.Context: The context for the operation.
// - caller model.Caller: The acting admin.
// - identityID string: The identity to update.
// - status string: The requested status.
//
// Returns:
// - *model.Identity: The identity with its new status.
// - error: FORBIDDEN for non-admins, INVALID_INPUT for an unknown status, NOT_FOUND for an unknown identity.
func (s *Sanad) ChangeUserStatus(ctx context.Context, caller model.Caller, identityID string, status string) (*model.Identity, error) {
	ctx, span := otel.Tracer("sanad.identity").Start(ctx, "ChangeUserStatus")
	defer span.End()

	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	newStatus, ok := model.ParseUserStatus(strings.TrimSpace(status))
	if !ok {
		return nil, invalidInput("status must be one of pending, verified, blocked", map[string]string{"status": status})
	}

	identity, err := s.datasource.GetIdentityByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if err := s.datasource.UpdateIdentityStatus(ctx, identity.IdentityID, newStatus); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"identity_id": identity.IdentityID,
		"from":        identity.Status,
		"to":          newStatus,
		"by":          caller.ID(),
	}).Info("identity status changed")

	identity.Status = newStatus
	identity.UpdatedAt = s.now()
	return identity, nil
}

// SubmitBiometricVerification records a face scan and emirates id for the
// caller and returns the account to pending for review, overwriting any
// verified or blocked status.
func (s *Sanad) SubmitBiometricVerification(ctx context.Context, caller model.Caller, faceScan, emiratesID string) (*model.Identity, error) {
	ctx, span := otel.Tracer("sanad.identity").Start(ctx, "SubmitBiometricVerification")
	defer span.End()

	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}

	faceScan = strings.TrimSpace(faceScan)
	emiratesID = strings.TrimSpace(emiratesID)
	if faceScan == "" || emiratesID == "" {
		return nil, invalidInput("face scan and emirates id are required", nil)
	}
	if !model.ValidEmiratesID(emiratesID) {
		return nil, invalidInput("emirates id must be formatted as 784-YYYY-NNNNNNN-N", map[string]string{"emirates_id": emiratesID})
	}

	if err := s.checkBiometrics(ctx, faceScan, emiratesID); err != nil {
		return nil, err
	}

	if err := s.datasource.SubmitVerification(ctx, caller.ID(), faceScan, emiratesID); err != nil {
		return nil, err
	}

	identity := *caller.Identity
	identity.FaceScan = &faceScan
	identity.EmiratesID = &emiratesID
	identity.Status = model.StatusPending
	identity.UpdatedAt = s.now()
	return &identity, nil
}

func (s *Sanad) checkBiometrics(ctx context.Context, faceScan, emiratesID string) error {
	accepted, err := s.oracle.Verify(ctx, faceScan, emiratesID)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "biometric verification failed", err)
	}
	if !accepted {
		return invalidInput("biometric verification rejected", nil)
	}
	return nil
}
