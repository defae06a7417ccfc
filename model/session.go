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

package model

// TokenPair is an access/refresh credential pair. Its contents are opaque to the core.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// SessionUser is the identity summary returned alongside a token pair.
type SessionUser struct {
	IdentityID string     `json:"id"`
	Email      string     `json:"email"`
	Status     UserStatus `json:"status"`
	IsActive   bool       `json:"is_approved"`
	FullName   string     `json:"full_name"`
}

// Session is the result of a successful login.
type Session struct {
	TokenPair
	User SessionUser `json:"user"`
}

func NewSession(pair TokenPair, identity *Identity) Session {
	return Session{
		TokenPair: pair,
		User: SessionUser{
			IdentityID: identity.IdentityID,
			Email:      identity.Email,
			Status:     identity.Status,
			IsActive:   identity.IsActive(),
			FullName:   identity.FullName(),
		},
	}
}
