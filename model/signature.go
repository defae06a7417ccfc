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

type SignaturePurpose string

const (
	PurposeTransfer     SignaturePurpose = "transfer"
	PurposeDelivery     SignaturePurpose = "delivery"
	PurposeVerification SignaturePurpose = "verification"
)

// ParseSignaturePurpose returns the purpose named by s and whether it is recognized.
func ParseSignaturePurpose(s string) (SignaturePurpose, bool) {
	switch SignaturePurpose(s) {
	case PurposeTransfer, PurposeDelivery, PurposeVerification:
		return SignaturePurpose(s), true
	}
	return "", false
}

// DigitalSignature is the single attestation kept per identity. Capturing a
// new signature replaces the stored data in place.
type DigitalSignature struct {
	SignatureID   string           `json:"id"`
	IdentityID    string           `json:"user_id"`
	TransactionID *string          `json:"transaction_id,omitempty"`
	SignatureData string           `json:"signature_data"`
	Purpose       SignaturePurpose `json:"purpose"`
	SignedAt      time.Time        `json:"signed_at"`
}
