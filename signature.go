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

	"go.opentelemetry.io/otel"

	"github.com/sanadpay/sanad/model"
)

// CaptureSignature stores the caller's digital signature, replacing any
// earlier one. The record keeps its id across replacements.
//
// Parameters:
// - ctx context.Context: The context for the operation.
// - caller model.Caller: The signing identity.
// - signatureData string: SVG or base64 image data. Required.
// - purpose string: transfer, delivery or verification. Defaults to verification.
// - transactionID *string: Optional entry being signed for; must be the caller's.
//
// Returns:
// - *model.DigitalSignature: The stored signature.
// - error: FORBIDDEN, INVALID_INPUT or NOT_FOUND.
func (s *Sanad) CaptureSignature(ctx context.Context, caller model.Caller, signatureData string, purpose string, transactionID *string) (*model.DigitalSignature, error) {
	ctx, span := otel.Tracer("sanad.signature").Start(ctx, "CaptureSignature")
	defer span.End()

	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(signatureData) == "" {
		return nil, invalidInput("signature_data is required", nil)
	}

	signaturePurpose := model.PurposeVerification
	if strings.TrimSpace(purpose) != "" {
		parsed, ok := model.ParseSignaturePurpose(strings.TrimSpace(purpose))
		if !ok {
			return nil, invalidInput("purpose must be one of transfer, delivery, verification", map[string]string{"purpose": purpose})
		}
		signaturePurpose = parsed
	}

	if transactionID != nil && strings.TrimSpace(*transactionID) == "" {
		transactionID = nil
	}
	if transactionID != nil {
		if _, err := s.ownedTransaction(ctx, caller, *transactionID); err != nil {
			return nil, err
		}
	}

	return s.datasource.UpsertSignature(ctx, &model.DigitalSignature{
		SignatureID:   model.GenerateUUIDWithSuffix(model.SignaturePrefix),
		IdentityID:    caller.ID(),
		TransactionID: transactionID,
		SignatureData: signatureData,
		Purpose:       signaturePurpose,
		SignedAt:      s.now(),
	})
}

// GetSignature returns the caller's signature on file.
func (s *Sanad) GetSignature(ctx context.Context, caller model.Caller) (*model.DigitalSignature, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	return s.datasource.GetSignatureByIdentity(ctx, caller.ID())
}
