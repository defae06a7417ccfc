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

	"go.opentelemetry.io/otel"

	"github.com/sanadpay/sanad/model"
)

const deliveryLocationSelect = `
	SELECT l.location_id, l.transaction_id, l.is_current_location, l.building_type, l.latitude, l.longitude, l.address, l.created_at
	FROM sanad.delivery_locations l
	JOIN sanad.transactions t ON t.transaction_id = l.transaction_id `

// Dates and times are read back as text in the layouts the API accepts.
const deliveryScheduleSelect = `
	SELECT s.schedule_id, s.transaction_id, s.delivery_type, to_char(s.scheduled_date, 'YYYY-MM-DD'), to_char(s.scheduled_time, 'HH24:MI:SS'), s.created_at
	FROM sanad.delivery_schedules s
	JOIN sanad.transactions t ON t.transaction_id = s.transaction_id `

func insertDeliveryLocation(ctx context.Context, db execer, location *model.DeliveryLocation) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO sanad.delivery_locations (location_id, transaction_id, is_current_location, building_type, latitude, longitude, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, location.LocationID, location.TransactionID, location.IsCurrentLocation, location.BuildingType,
		location.Latitude, location.Longitude, location.Address, location.CreatedAt)
	return wrapError(err, "Failed to record delivery location")
}

func insertDeliverySchedule(ctx context.Context, db execer, schedule *model.DeliverySchedule) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO sanad.delivery_schedules (schedule_id, transaction_id, delivery_type, scheduled_date, scheduled_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, schedule.ScheduleID, schedule.TransactionID, schedule.DeliveryType, schedule.ScheduledDate,
		schedule.ScheduledTime, schedule.CreatedAt)
	return wrapError(err, "Failed to record delivery schedule")
}

func scanDeliveryLocation(row rowScanner) (*model.DeliveryLocation, error) {
	location := &model.DeliveryLocation{}
	err := row.Scan(&location.LocationID, &location.TransactionID, &location.IsCurrentLocation,
		&location.BuildingType, &location.Latitude, &location.Longitude, &location.Address, &location.CreatedAt)
	if err != nil {
		return nil, err
	}
	return location, nil
}

func scanDeliverySchedule(row rowScanner) (*model.DeliverySchedule, error) {
	schedule := &model.DeliverySchedule{}
	err := row.Scan(&schedule.ScheduleID, &schedule.TransactionID, &schedule.DeliveryType,
		&schedule.ScheduledDate, &schedule.ScheduledTime, &schedule.CreatedAt)
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

func (d Datasource) queryDeliveryLocations(ctx context.Context, where string, args ...interface{}) ([]model.DeliveryLocation, error) {
	rows, err := d.Conn.QueryContext(ctx, deliveryLocationSelect+where+` ORDER BY l.created_at`, args...)
	if err != nil {
		return nil, wrapError(err, "Failed to retrieve delivery locations")
	}
	defer rows.Close()

	locations := []model.DeliveryLocation{}
	for rows.Next() {
		location, err := scanDeliveryLocation(rows)
		if err != nil {
			return nil, wrapError(err, "Failed to scan delivery location")
		}
		locations = append(locations, *location)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "Failed to iterate delivery locations")
	}
	return locations, nil
}

func (d Datasource) queryDeliverySchedules(ctx context.Context, where string, args ...interface{}) ([]model.DeliverySchedule, error) {
	rows, err := d.Conn.QueryContext(ctx, deliveryScheduleSelect+where+` ORDER BY s.created_at`, args...)
	if err != nil {
		return nil, wrapError(err, "Failed to retrieve delivery schedules")
	}
	defer rows.Close()

	schedules := []model.DeliverySchedule{}
	for rows.Next() {
		schedule, err := scanDeliverySchedule(rows)
		if err != nil {
			return nil, wrapError(err, "Failed to scan delivery schedule")
		}
		schedules = append(schedules, *schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "Failed to iterate delivery schedules")
	}
	return schedules, nil
}

func (d Datasource) CreateDeliveryLocation(ctx context.Context, location *model.DeliveryLocation) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Saving delivery location to db")
	defer span.End()
	return insertDeliveryLocation(ctx, d.Conn, location)
}

func (d Datasource) GetDeliveryLocation(ctx context.Context, id string) (*model.DeliveryLocation, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching delivery location by id")
	defer span.End()

	location, err := scanDeliveryLocation(d.Conn.QueryRowContext(ctx, deliveryLocationSelect+`WHERE l.location_id = $1`, id))
	if err != nil {
		return nil, wrapRowError(err, fmt.Sprintf("Delivery location with ID '%s' not found", id), "Failed to retrieve delivery location")
	}
	return location, nil
}

// GetDeliveryLocationsByIdentity lists the locations attached to transactions owned by identityID.
func (d Datasource) GetDeliveryLocationsByIdentity(ctx context.Context, identityID string) ([]model.DeliveryLocation, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching delivery locations by identity")
	defer span.End()
	return d.queryDeliveryLocations(ctx, `WHERE t.user_id = $1`, identityID)
}

// UpdateDeliveryLocation rewrites the mutable fields of a location. The parent transaction never changes.
func (d Datasource) UpdateDeliveryLocation(ctx context.Context, location *model.DeliveryLocation) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Updating delivery location")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE sanad.delivery_locations
		SET is_current_location = $2, building_type = $3, latitude = $4, longitude = $5, address = $6
		WHERE location_id = $1
	`, location.LocationID, location.IsCurrentLocation, location.BuildingType, location.Latitude,
		location.Longitude, location.Address)
	if err != nil {
		return wrapError(err, "Failed to update delivery location")
	}
	return expectAffected(result, fmt.Sprintf("Delivery location with ID '%s' not found", location.LocationID))
}

func (d Datasource) DeleteDeliveryLocation(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Deleting delivery location")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `DELETE FROM sanad.delivery_locations WHERE location_id = $1`, id)
	if err != nil {
		return wrapError(err, "Failed to delete delivery location")
	}
	return expectAffected(result, fmt.Sprintf("Delivery location with ID '%s' not found", id))
}

func (d Datasource) CreateDeliverySchedule(ctx context.Context, schedule *model.DeliverySchedule) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Saving delivery schedule to db")
	defer span.End()
	return insertDeliverySchedule(ctx, d.Conn, schedule)
}

func (d Datasource) GetDeliverySchedule(ctx context.Context, id string) (*model.DeliverySchedule, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching delivery schedule by id")
	defer span.End()

	schedule, err := scanDeliverySchedule(d.Conn.QueryRowContext(ctx, deliveryScheduleSelect+`WHERE s.schedule_id = $1`, id))
	if err != nil {
		return nil, wrapRowError(err, fmt.Sprintf("Delivery schedule with ID '%s' not found", id), "Failed to retrieve delivery schedule")
	}
	return schedule, nil
}

// GetDeliverySchedulesByIdentity lists the schedules attached to transactions owned by identityID.
func (d Datasource) GetDeliverySchedulesByIdentity(ctx context.Context, identityID string) ([]model.DeliverySchedule, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching delivery schedules by identity")
	defer span.End()
	return d.queryDeliverySchedules(ctx, `WHERE t.user_id = $1`, identityID)
}

func (d Datasource) UpdateDeliverySchedule(ctx context.Context, schedule *model.DeliverySchedule) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Updating delivery schedule")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE sanad.delivery_schedules
		SET delivery_type = $2, scheduled_date = $3, scheduled_time = $4
		WHERE schedule_id = $1
	`, schedule.ScheduleID, schedule.DeliveryType, schedule.ScheduledDate, schedule.ScheduledTime)
	if err != nil {
		return wrapError(err, "Failed to update delivery schedule")
	}
	return expectAffected(result, fmt.Sprintf("Delivery schedule with ID '%s' not found", schedule.ScheduleID))
}

func (d Datasource) DeleteDeliverySchedule(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Deleting delivery schedule")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `DELETE FROM sanad.delivery_schedules WHERE schedule_id = $1`, id)
	if err != nil {
		return wrapError(err, "Failed to delete delivery schedule")
	}
	return expectAffected(result, fmt.Sprintf("Delivery schedule with ID '%s' not found", id))
}
