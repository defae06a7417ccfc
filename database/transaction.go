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
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"

	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/model"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

const transactionColumns = `transaction_id, user_id, card_id, transaction_type, amount, status, timestamp, currency_from, currency_to, exchange_rate, recipient_id, message_to_recipient, created_at, updated_at`

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	txn := &model.Transaction{}
	err := row.Scan(&txn.TransactionID, &txn.IdentityID, &txn.CardID, &txn.Type, &txn.Amount, &txn.Status,
		&txn.Timestamp, &txn.CurrencyFrom, &txn.CurrencyTo, &txn.ExchangeRate, &txn.RecipientID,
		&txn.MessageToRecipient, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// RecordTransaction inserts the entry, then each delivery location and each
// delivery schedule in the order supplied, all in one database transaction.
// Nothing is persisted if any insert fails.
func (d Datasource) RecordTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Saving transaction to db")
	defer span.End()

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sanad.transactions (`+transactionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`, txn.TransactionID, txn.IdentityID, txn.CardID, txn.Type, txn.Amount, txn.Status, txn.Timestamp,
			txn.CurrencyFrom, txn.CurrencyTo, txn.ExchangeRate, txn.RecipientID, txn.MessageToRecipient,
			txn.CreatedAt, txn.UpdatedAt)
		if err != nil {
			return wrapError(err, "Failed to record transaction")
		}

		for i := range txn.DeliveryLocations {
			if err := insertDeliveryLocation(ctx, tx, &txn.DeliveryLocations[i]); err != nil {
				return err
			}
		}
		for i := range txn.DeliverySchedules {
			if err := insertDeliverySchedule(ctx, tx, &txn.DeliverySchedules[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, wrapError(err, "Failed to commit transaction")
	}

	return txn, nil
}

// GetTransaction retrieves an entry together with its delivery sub-records.
func (d Datasource) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching transaction by id")
	defer span.End()

	row := d.Conn.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM sanad.transactions
		WHERE transaction_id = $1
	`, id)
	txn, err := scanTransaction(row)
	if err != nil {
		return nil, wrapRowError(err, fmt.Sprintf("Transaction with ID '%s' not found", id), "Failed to retrieve transaction")
	}

	txn.DeliveryLocations, err = d.queryDeliveryLocations(ctx, `WHERE l.transaction_id = $1`, id)
	if err != nil {
		return nil, err
	}
	txn.DeliverySchedules, err = d.queryDeliverySchedules(ctx, `WHERE s.transaction_id = $1`, id)
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransactionsByIdentity lists entries owned by identityID, newest first.
// An empty types slice matches every transaction type.
func (d Datasource) GetTransactionsByIdentity(ctx context.Context, identityID string, types []model.TransactionType, limit, offset int) ([]model.Transaction, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching transactions by identity")
	defer span.End()

	query := `SELECT ` + transactionColumns + ` FROM sanad.transactions WHERE user_id = $1`
	args := []interface{}{identityID, limit, offset}
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		query += ` AND transaction_type = ANY($4)`
		args = append(args, pq.Array(names))
	}
	query += ` ORDER BY timestamp DESC LIMIT $2 OFFSET $3`

	rows, err := d.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError(err, "Failed to retrieve transactions")
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapError(err, "Failed to scan transaction")
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "Failed to iterate transactions")
	}
	return transactions, nil
}

// UpdateTransactionStatus moves an entry to status to, provided it is still in status from.
func (d Datasource) UpdateTransactionStatus(ctx context.Context, id string, from, to model.TransactionStatus) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Updating transaction status")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE sanad.transactions
		SET status = $3, updated_at = $4
		WHERE transaction_id = $1 AND status = $2
	`, id, from, to, time.Now())
	if err != nil {
		return wrapError(err, "Failed to update transaction status")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("transaction is no longer %s", from), nil)
	}
	return nil
}
