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

// Package policy holds the access-control predicates every service
// operation is gated on. They are pure functions of the caller.
package policy

import "github.com/sanadpay/sanad/model"

// IsAdmin reports whether caller is authenticated and holds the admin role.
func IsAdmin(caller model.Caller) bool {
	return caller.Authenticated() && caller.Role == model.RoleAdmin
}

// IsApproved reports whether caller is authenticated and verified.
func IsApproved(caller model.Caller) bool {
	return caller.Authenticated() && caller.Identity.IsActive()
}
