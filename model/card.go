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

// Card is a card-on-file reference. Full card numbers and CVV are never held;
// only the last four digits and the payment provider's opaque reference.
type Card struct {
	CardID          string    `json:"id"`
	IdentityID      string    `json:"-"`
	LastFour        string    `json:"last_four"`
	Expiry          string    `json:"expiry"`
	CardholderName  string    `json:"cardholder_name"`
	PaymentMethodID *string   `json:"-"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// OwnedBy reports whether the card belongs to the identity.
func (c *Card) OwnedBy(identityID string) bool {
	return c != nil && identityID != "" && c.IdentityID == identityID
}
