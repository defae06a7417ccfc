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
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/sanadpay/sanad/model"
)

const identityColumns = `identity_id, email, username, first_name, last_name, password_hash, phone_number, birth_date, face_scan, emirates_id, passport, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIdentity(row rowScanner) (*model.Identity, error) {
	identity := &model.Identity{}
	err := row.Scan(
		&identity.IdentityID, &identity.Email, &identity.Username, &identity.FirstName, &identity.LastName,
		&identity.PasswordHash, &identity.PhoneNumber, &identity.BirthDate, &identity.FaceScan,
		&identity.EmiratesID, &identity.Passport, &identity.Status, &identity.CreatedAt, &identity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return identity, nil
}

// CreateIdentity inserts a new identity. Email and passport uniqueness are
// enforced by the table and reported as INVALID_INPUT.
func (d Datasource) CreateIdentity(ctx context.Context, identity *model.Identity) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Saving identity to db")
	defer span.End()

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO sanad.identities (`+identityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, identity.IdentityID, identity.Email, identity.Username, identity.FirstName, identity.LastName,
		identity.PasswordHash, identity.PhoneNumber, identity.BirthDate, identity.FaceScan,
		identity.EmiratesID, identity.Passport, identity.Status, identity.CreatedAt, identity.UpdatedAt)
	if err != nil {
		span.RecordError(err)
		return wrapError(err, "Failed to create identity")
	}
	return nil
}

// GetIdentityByID retrieves an identity from the database by ID
func (d Datasource) GetIdentityByID(ctx context.Context, id string) (*model.Identity, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching identity by id")
	defer span.End()

	row := d.Conn.QueryRowContext(ctx, `
		SELECT `+identityColumns+`
		FROM sanad.identities
		WHERE identity_id = $1
	`, id)

	identity, err := scanIdentity(row)
	if err != nil {
		return nil, wrapRowError(err, fmt.Sprintf("Identity with ID '%s' not found", id), "Failed to retrieve identity")
	}
	return identity, nil
}

// GetIdentityByEmail retrieves an identity by its login email, case-insensitively.
func (d Datasource) GetIdentityByEmail(ctx context.Context, email string) (*model.Identity, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching identity by email")
	defer span.End()

	row := d.Conn.QueryRowContext(ctx, `
		SELECT `+identityColumns+`
		FROM sanad.identities
		WHERE lower(email) = lower($1)
	`, email)

	identity, err := scanIdentity(row)
	if err != nil {
		return nil, wrapRowError(err, "Identity not found", "Failed to retrieve identity")
	}
	return identity, nil
}

// GetAllIdentities retrieves all identities from the database
func (d Datasource) GetAllIdentities(ctx context.Context) ([]model.Identity, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching all identities")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT `+identityColumns+`
		FROM sanad.identities
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, wrapError(err, "Failed to retrieve identities")
	}
	defer rows.Close()

	identities := []model.Identity{}
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, wrapError(err, "Failed to scan identity")
		}
		identities = append(identities, *identity)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "Failed to iterate identities")
	}

	return identities, nil
}

// UpdateIdentityStatus overwrites the verification status of an identity.
func (d Datasource) UpdateIdentityStatus(ctx context.Context, id string, status model.UserStatus) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Updating identity status")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE sanad.identities
		SET status = $2, updated_at = $3
		WHERE identity_id = $1
	`, id, status, time.Now())
	if err != nil {
		return wrapError(err, "Failed to update identity status")
	}
	return expectAffected(result, fmt.Sprintf("Identity with ID '%s' not found", id))
}

// SubmitVerification stores the face scan and emirates id and puts the
// identity back into pending, whatever its current status.
func (d Datasource) SubmitVerification(ctx context.Context, id string, faceScan string, emiratesID string) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Submitting biometric verification")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE sanad.identities
		SET face_scan = $2, emirates_id = $3, status = $4, updated_at = $5
		WHERE identity_id = $1
	`, id, faceScan, emiratesID, model.StatusPending, time.Now())
	if err != nil {
		return wrapError(err, "Failed to store verification data")
	}
	return expectAffected(result, fmt.Sprintf("Identity with ID '%s' not found", id))
}
