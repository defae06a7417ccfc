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
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/model"
)

func TestCreateDeliveryLocation(t *testing.T) {
	ds, mock := newTestDataSource(t)
	location := &model.DeliveryLocation{
		LocationID: "dlc_1", TransactionID: "txn_1", BuildingType: "office",
		Latitude: decimal.RequireFromString("24.453884"), Longitude: decimal.RequireFromString("54.377344"),
		Address: "Corniche, Abu Dhabi", CreatedAt: time.Now(),
	}

	mock.ExpectExec("INSERT INTO sanad.delivery_locations").
		WithArgs("dlc_1", "txn_1", false, "office", "24.453884", "54.377344", "Corniche, Abu Dhabi", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, ds.CreateDeliveryLocation(context.Background(), location))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDeliveryLocation_NotFound(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectQuery("SELECT (.+) FROM sanad.delivery_locations l (.+) WHERE l.location_id = \\$1").
		WithArgs("dlc_missing").
		WillReturnError(sql.ErrNoRows)

	_, err := ds.GetDeliveryLocation(context.Background(), "dlc_missing")
	assert.True(t, apierror.HasCode(err, apierror.ErrNotFound))
}

func TestGetDeliveryLocationsByIdentity(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectQuery("SELECT (.+) FROM sanad.delivery_locations l JOIN sanad.transactions t (.+) WHERE t.user_id = \\$1").
		WithArgs("idt_1").
		WillReturnRows(sqlmock.NewRows(locationCols).
			AddRow("dlc_1", "txn_1", false, "villa", "25.0", "55.0", "Address 1", time.Now()).
			AddRow("dlc_2", "txn_2", true, "office", "25.1", "55.1", "Address 2", time.Now()))

	locations, err := ds.GetDeliveryLocationsByIdentity(context.Background(), "idt_1")
	require.NoError(t, err)
	assert.Len(t, locations, 2)
}

func TestUpdateDeliveryLocation_NotFound(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectExec("UPDATE sanad.delivery_locations").WillReturnResult(sqlmock.NewResult(0, 0))

	err := ds.UpdateDeliveryLocation(context.Background(), &model.DeliveryLocation{LocationID: "dlc_missing"})
	assert.True(t, apierror.HasCode(err, apierror.ErrNotFound))
}

func TestDeleteDeliveryLocation(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectExec("DELETE FROM sanad.delivery_locations WHERE location_id = \\$1").
		WithArgs("dlc_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, ds.DeleteDeliveryLocation(context.Background(), "dlc_1"))
}

func TestGetDeliverySchedule(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectQuery("SELECT (.+) to_char\\(s.scheduled_date, 'YYYY-MM-DD'\\)(.+) WHERE s.schedule_id = \\$1").
		WithArgs("dsc_1").
		WillReturnRows(sqlmock.NewRows(scheduleCols).AddRow("dsc_1", "txn_1", "same_day", "2024-06-01", "18:00:00", time.Now()))

	schedule, err := ds.GetDeliverySchedule(context.Background(), "dsc_1")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", schedule.ScheduledDate)
	assert.Equal(t, "18:00:00", schedule.ScheduledTime)
}

func TestUpdateDeliverySchedule(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectExec("UPDATE sanad.delivery_schedules").
		WithArgs("dsc_1", "scheduled", "2024-07-01", "10:15:00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := ds.UpdateDeliverySchedule(context.Background(), &model.DeliverySchedule{
		ScheduleID: "dsc_1", DeliveryType: "scheduled", ScheduledDate: "2024-07-01", ScheduledTime: "10:15:00",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDeliverySchedule_NotFound(t *testing.T) {
	ds, mock := newTestDataSource(t)

	mock.ExpectExec("DELETE FROM sanad.delivery_schedules").WillReturnResult(sqlmock.NewResult(0, 0))

	err := ds.DeleteDeliverySchedule(context.Background(), "dsc_missing")
	assert.True(t, apierror.HasCode(err, apierror.ErrNotFound))
}
