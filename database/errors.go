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
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/sanadpay/sanad/internal/apierror"
)

// Postgres error codes the datasource translates into client errors.
const (
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
	pqForeignKeyViolation = "23503"
)

// wrapError converts a storage error into an APIError. Constraint violations
// are the caller's fault and surface as INVALID_INPUT; anything else is
// internal and carries the original error as details.
func wrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := apierror.As(err); ok {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return apierror.NewAPIError(apierror.ErrInvalidInput, uniqueViolationMessage(pqErr.Constraint), pqErr.Detail)
		case pqCheckViolation:
			return apierror.NewAPIError(apierror.ErrInvalidInput, checkViolationMessage(pqErr.Constraint), pqErr.Detail)
		case pqForeignKeyViolation:
			return apierror.NewAPIError(apierror.ErrInvalidInput, "referenced record does not exist", pqErr.Detail)
		}
	}
	return apierror.NewAPIError(apierror.ErrInternalServer, message, err)
}

// wrapRowError is wrapError for single-row reads, turning sql.ErrNoRows into NOT_FOUND.
func wrapRowError(err error, notFound, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apierror.NewAPIError(apierror.ErrNotFound, notFound, nil)
	}
	return wrapError(err, message)
}

func uniqueViolationMessage(constraint string) string {
	switch constraint {
	case "identities_email_key", "idx_identities_email_lower":
		return "an account with this email already exists"
	case "identities_passport_key":
		return "an account with this passport already exists"
	case "employees_user_id_key":
		return "user is already an employee"
	}
	return "record already exists"
}

func checkViolationMessage(constraint string) string {
	switch constraint {
	case "identities_emirates_id_check":
		return "emirates id must be formatted as 784-YYYY-NNNNNNN-N"
	case "identities_status_check":
		return "status must be one of pending, verified, blocked"
	}
	return "value violates a storage constraint"
}

// expectAffected turns a zero-row update or delete into NOT_FOUND.
func expectAffected(result sql.Result, notFound string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, notFound, nil)
	}
	return nil
}
