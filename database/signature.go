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

package database

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/sanadpay/sanad/model"
)

// UpsertSignature stores the user's signature. A user has at most one; a
// later capture replaces data, purpose, transaction and signed_at but keeps
// the original signature id.
func (d Datasource) UpsertSignature(ctx context.Context, sig *model.DigitalSignature) (*model.DigitalSignature, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Upserting digital signature")
	defer span.End()

	err := d.Conn.QueryRowContext(ctx, `
		INSERT INTO sanad.digital_signatures (signature_id, user_id, transaction_id, signature_data, purpose, signed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET transaction_id = EXCLUDED.transaction_id,
			signature_data = EXCLUDED.signature_data,
			purpose = EXCLUDED.purpose,
			signed_at = EXCLUDED.signed_at
		RETURNING signature_id, signed_at
	`, sig.SignatureID, sig.IdentityID, sig.TransactionID, sig.SignatureData, sig.Purpose, sig.SignedAt).
		Scan(&sig.SignatureID, &sig.SignedAt)
	if err != nil {
		span.RecordError(err)
		return nil, wrapError(err, "Failed to save signature")
	}
	return sig, nil
}

func (d Datasource) GetSignatureByIdentity(ctx context.Context, identityID string) (*model.DigitalSignature, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching digital signature by identity")
	defer span.End()

	sig := &model.DigitalSignature{}
	err := d.Conn.QueryRowContext(ctx, `
		SELECT signature_id, user_id, transaction_id, signature_data, purpose, signed_at
		FROM sanad.digital_signatures
		WHERE user_id = $1
	`, identityID).Scan(&sig.SignatureID, &sig.IdentityID, &sig.TransactionID, &sig.SignatureData, &sig.Purpose, &sig.SignedAt)
	if err != nil {
		return nil, wrapRowError(err, "No signature on file", "Failed to retrieve signature")
	}
	return sig, nil
}
