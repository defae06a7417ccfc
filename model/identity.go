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

import (
	"regexp"
	"strings"
	"time"
)

// UserStatus is the verification state of an identity.
type UserStatus string

const (
	StatusPending  UserStatus = "pending"
	StatusVerified UserStatus = "verified"
	StatusBlocked  UserStatus = "blocked"
)

// UserStatuses lists every recognized verification state.
var UserStatuses = []UserStatus{StatusPending, StatusVerified, StatusBlocked}

// EmiratesIDPattern is the accepted national id format, e.g. 784-1995-1234567-1.
var EmiratesIDPattern = regexp.MustCompile(`^\d{3}-\d{4}-\d{7}-\d{1}$`)

// PassportMaxLength bounds the passport column.
const PassportMaxLength = 15

// ParseUserStatus returns the status named by s and whether it is recognized.
func ParseUserStatus(s string) (UserStatus, bool) {
	for _, status := range UserStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// ValidEmiratesID reports whether id matches EmiratesIDPattern.
func ValidEmiratesID(id string) bool {
	return EmiratesIDPattern.MatchString(id)
}

type Identity struct {
	IdentityID   string     `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PasswordHash string     `json:"-"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	FaceScan     *string    `json:"-"`
	EmiratesID   *string    `json:"emirates_id,omitempty"`
	Passport     *string    `json:"passport,omitempty"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsActive reports whether the identity may authenticate and transact.
func (i *Identity) IsActive() bool {
	return i != nil && i.Status == StatusVerified
}

// FullName joins first and last name, falling back to the username.
func (i *Identity) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName))
	if name == "" {
		return i.Username
	}
	return name
}

// UserSummary is the restricted projection of an identity shown to admins.
type UserSummary struct {
	IdentityID  string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Status      UserStatus `json:"status"`
	PhoneNumber *string    `json:"phone_number"`
	EmiratesID  *string    `json:"emirates_id"`
	Passport    *string    `json:"passport"`
	BirthDate   *time.Time `json:"birth_date"`
}

func (i *Identity) Summary() UserSummary {
	return UserSummary{
		IdentityID:  i.IdentityID,
		FirstName:   i.FirstName,
		LastName:    i.LastName,
		Email:       i.Email,
		Status:      i.Status,
		PhoneNumber: i.PhoneNumber,
		EmiratesID:  i.EmiratesID,
		Passport:    i.Passport,
		BirthDate:   i.BirthDate,
	}
}
