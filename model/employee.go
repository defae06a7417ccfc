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

import "time"

// Role is the administrative capability bound to an identity. RoleNone means
// the identity has no employee profile.
type Role string

const (
	RoleNone  Role = ""
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole returns the assignable role named by s. RoleNone is never assignable.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStaff:
		return RoleStaff, true
	}
	return RoleNone, false
}

// Employee binds one identity to a back-office role.
type Employee struct {
	EmployeeID string    `json:"id"`
	IdentityID string    `json:"user_id"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Populated on listing.
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}
