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
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wacul/ptr"

	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/model"
)

var transactionCols = []string{"transaction_id", "user_id", "card_id", "transaction_type", "amount", "status", "timestamp", "currency_from", "currency_to", "exchange_rate", "recipient_id", "message_to_recipient", "created_at", "updated_at"}

var locationCols = []string{"location_id", "transaction_id", "is_current_location", "building_type", "latitude", "longitude", "address", "created_at"}

var scheduleCols = []string{"schedule_id", "transaction_id", "delivery_type", "scheduled_date", "scheduled_time", "created_at"}

func fakeTransaction() *model.Transaction {
	now := time.Now()
	return &model.Transaction{
		TransactionID: "txn_1",
		IdentityID:    "idt_1",
		CardID:        ptr.String("crd_1"),
		Type:          model.TxnDeposit,
		Amount:        decimal.NewNullDecimal(decimal.RequireFromString("250.75")),
		Status:        model.TxnStatusPending,
		Timestamp:     now,
		CurrencyFrom:  "AED",
		CurrencyTo:    "USD",
		CreatedAt:     now,
		UpdatedAt:     now,
		DeliveryLocations: []model.DeliveryLocation{{
			LocationID: "dlc_1", TransactionID: "txn_1", BuildingType: "villa",
			Latitude: decimal.RequireFromString("25.204849"), Longitude: decimal.RequireFromString("55.270782"),
			Address: "Jumeirah 1, Dubai", CreatedAt: now,
		}},
		DeliverySchedules: []model.DeliverySchedule{{
			ScheduleID: "dsc_1", TransactionID: "txn_1", DeliveryType: "same_day",
			ScheduledDate: "2024-06-01", ScheduledTime: "14:30:00", CreatedAt: now,
		}},
	}
}

func TestRecordTransaction_Success(t *testing.T) {
	ds, mock := newTestDataSource(t)
	txn := fakeTransaction()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sanad.transactions").
		WithArgs("txn_1", "idt_1", "crd_1", "deposit", "250.75", "pending", sqlmock.AnyArg(), "AED", "USD",
			nil, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO sanad.delivery_locations").
		WithArgs("dlc_1", "txn_1", false, "villa", "25.204849", "55.270782", "Jumeirah 1, Dubai", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO sanad.delivery_schedules").
		WithArgs("dsc_1", "txn_1", "same_day", "2024-06-01", "14:30:00", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := ds.RecordTransaction(context.Background(), txn)
	require.NoError(t, err)
	assert.Equal(t, "txn_1", result.TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransaction_SubRecordFailureRollsBack(t *testing.T) {
	ds, mock := newTestDataSource(t)
	txn := fakeTransaction()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sanad.transactions").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO sanad.delivery_locations").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	result, err := ds.RecordTransaction(context.Background(), txn)
	assert.Nil(t, result)
	assert.True(t, apierror.HasCode(err, apierror.ErrInternalServer))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransaction_EntryFailureRollsBack(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sanad.transactions").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := ds.RecordTransaction(context.Background(), fakeTransaction())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransaction_NoSubRecords(t *testing.T) {
	ds, mock := newTestDataSource(t)
	txn := fakeTransaction()
	txn.DeliveryLocations = nil
	txn.DeliverySchedules = nil

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sanad.transactions").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	_, err := ds.RecordTransaction(context.Background(), txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransaction_WithSubRecords(t *testing.T) {
	ds, mock := newTestDataSource(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM sanad.transactions WHERE transaction_id = \\$1").
		WithArgs("txn_1").
		WillReturnRows(sqlmock.NewRows(transactionCols).AddRow("txn_1", "idt_1", "crd_1", "send_money", "100.00",
			"pending", now, "AED", "USD", "3.672500", "idt_2", "rent", now, now))
	mock.ExpectQuery("SELECT (.+) FROM sanad.delivery_locations l (.+) WHERE l.transaction_id = \\$1").
		WithArgs("txn_1").
		WillReturnRows(sqlmock.NewRows(locationCols).AddRow("dlc_1", "txn_1", true, "apartment", "25.1", "55.2", "Marina", now))
	mock.ExpectQuery("SELECT (.+) FROM sanad.delivery_schedules s (.+) WHERE s.transaction_id = \\$1").
		WithArgs("txn_1").
		WillReturnRows(sqlmock.NewRows(scheduleCols).AddRow("dsc_1", "txn_1", "scheduled", "2024-06-01", "09:00:00", now))

	txn, err := ds.GetTransaction(context.Background(), "txn_1")
	require.NoError(t, err)
	assert.Equal(t, model.TxnSendMoney, txn.Type)
	assert.True(t, txn.Amount.Decimal.Equal(decimal.NewFromInt(100)))
	assert.True(t, txn.ExchangeRate.Valid)
	require.NotNil(t, txn.RecipientID)
	assert.Equal(t, "idt_2", *txn.RecipientID)
	require.Len(t, txn.DeliveryLocations, 1)
	assert.True(t, txn.DeliveryLocations[0].IsCurrentLocation)
	require.Len(t, txn.DeliverySchedules, 1)
	assert.Equal(t, "09:00:00", txn.DeliverySchedules[0].ScheduledTime)
}

func TestGetTransaction_NotFound(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectQuery("SELECT (.+) FROM sanad.transactions").WillReturnError(sql.ErrNoRows)

	_, err := ds.GetTransaction(context.Background(), "txn_missing")
	assert.True(t, apierror.HasCode(err, apierror.ErrNotFound))
}

func TestGetTransactionsByIdentity_TypeFilter(t *testing.T) {
	ds, mock := newTestDataSource(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM sanad.transactions WHERE user_id = \\$1 AND transaction_type = ANY\\(\\$4\\) ORDER BY timestamp DESC LIMIT \\$2 OFFSET \\$3").
		WithArgs("idt_1", 20, 0, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(transactionCols).AddRow("txn_9", "idt_1", nil, "receive_money", "10.00",
			"completed", now, "AED", "USD", nil, nil, nil, now, now))

	transactions, err := ds.GetTransactionsByIdentity(context.Background(), "idt_1",
		[]model.TransactionType{model.TxnSendMoney, model.TxnReceiveMoney}, 20, 0)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Nil(t, transactions[0].CardID)
	assert.False(t, transactions[0].ExchangeRate.Valid)
}

func TestGetTransactionsByIdentity_AllTypes(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectQuery("SELECT (.+) FROM sanad.transactions WHERE user_id = \\$1 ORDER BY timestamp DESC").
		WithArgs("idt_1", 50, 10).
		WillReturnRows(sqlmock.NewRows(transactionCols))

	transactions, err := ds.GetTransactionsByIdentity(context.Background(), "idt_1", nil, 50, 10)
	require.NoError(t, err)
	assert.Empty(t, transactions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTransactionStatus(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectExec("UPDATE sanad.transactions SET status = \\$3").
		WithArgs("txn_1", "pending", "cancelled", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, ds.UpdateTransactionStatus(context.Background(), "txn_1", model.TxnStatusPending, model.TxnStatusCancelled))
}

func TestUpdateTransactionStatus_NoLongerPending(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectExec("UPDATE sanad.transactions SET status = \\$3").WillReturnResult(sqlmock.NewResult(0, 0))

	err := ds.UpdateTransactionStatus(context.Background(), "txn_1", model.TxnStatusPending, model.TxnStatusCancelled)
	assert.True(t, apierror.HasCode(err, apierror.ErrInvalidInput))
}
