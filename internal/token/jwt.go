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

// Package token issues and validates the HS256 access/refresh pairs handed
// out at login.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/model"
)

// Kind distinguishes access tokens from refresh tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims represents the JWT claims carried by both token kinds. Roles are
// deliberately absent: they are re-read from storage on every request.
type Claims struct {
	TokenType Kind `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService handles JWT creation and validation
type JWTService struct {
	signingKey []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTService(signingKey, issuer string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue signs a fresh access/refresh pair for the identity.
func (s *JWTService) Issue(identity *model.Identity) (model.TokenPair, error) {
	access, err := s.sign(identity.IdentityID, KindAccess, s.accessTTL)
	if err != nil {
		return model.TokenPair{}, err
	}
	refresh, err := s.sign(identity.IdentityID, KindRefresh, s.refreshTTL)
	if err != nil {
		return model.TokenPair{}, err
	}
	return model.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *JWTService) sign(subject string, kind Kind, ttl time.Duration) (string, error) {
	now := s.now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", apierror.NewAPIError(apierror.ErrInternalServer, "failed to sign token", err)
	}
	return signedToken, nil
}

// Parse validates tokenString as a token of the given kind and returns the
// identity id it was issued for.
func (s *JWTService) Parse(tokenString string, kind Kind) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apierror.NewAPIError(apierror.ErrUnauthenticated, "token has expired", nil)
		}
		return "", apierror.NewAPIError(apierror.ErrUnauthenticated, "invalid token", nil)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", apierror.NewAPIError(apierror.ErrUnauthenticated, "invalid token claims", nil)
	}
	if claims.TokenType != kind {
		return "", apierror.NewAPIError(apierror.ErrUnauthenticated, "unexpected token type", nil)
	}
	if claims.Subject == "" {
		return "", apierror.NewAPIError(apierror.ErrUnauthenticated, "token has no subject", nil)
	}

	return claims.Subject, nil
}

// ParseAccess validates an access token and returns its subject.
func (s *JWTService) ParseAccess(tokenString string) (string, error) {
	return s.Parse(tokenString, KindAccess)
}

// ParseRefresh validates a refresh token and returns its subject.
func (s *JWTService) ParseRefresh(tokenString string) (string, error) {
	return s.Parse(tokenString, KindRefresh)
}
