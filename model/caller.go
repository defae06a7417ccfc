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

// Caller is the authenticated party of a request, resolved fresh from storage.
// The zero value is an unauthenticated caller.
type Caller struct {
	Identity *Identity
	Role     Role
}

// NewCaller builds a caller from an identity and its optional employee profile.
func NewCaller(identity *Identity, employee *Employee) Caller {
	caller := Caller{Identity: identity, Role: RoleNone}
	if employee != nil {
		caller.Role = employee.Role
	}
	return caller
}

func (c Caller) Authenticated() bool {
	return c.Identity != nil
}

// ID returns the caller's identity id, or "" when unauthenticated.
func (c Caller) ID() string {
	if c.Identity == nil {
		return ""
	}
	return c.Identity.IdentityID
}
