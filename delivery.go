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

	"github.com/sanadpay/sanad/model"
)

func requireTransactionID(transactionID string) error {
	if strings.TrimSpace(transactionID) == "" {
		return invalidInput("transaction_id is required", nil)
	}
	return nil
}

// CreateDeliveryLocation attaches a location to one of the caller's transactions.
func (s *Sanad) CreateDeliveryLocation(ctx context.Context, caller model.Caller, location model.DeliveryLocation) (*model.DeliveryLocation, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	if err := requireTransactionID(location.TransactionID); err != nil {
		return nil, err
	}
	if err := location.Validate(); err != nil {
		return nil, invalidInput(err.Error(), err)
	}
	if _, err := s.ownedTransaction(ctx, caller, location.TransactionID); err != nil {
		return nil, err
	}

	location.LocationID = model.GenerateUUIDWithSuffix(model.DeliveryLocationPrefix)
	location.CreatedAt = s.now()
	if err := s.datasource.CreateDeliveryLocation(ctx, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

// UpdateDeliveryLocation rewrites a location on one of the caller's
// transactions. The parent transaction cannot be changed.
func (s *Sanad) UpdateDeliveryLocation(ctx context.Context, caller model.Caller, locationID string, update model.DeliveryLocation) (*model.DeliveryLocation, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	if err := update.Validate(); err != nil {
		return nil, invalidInput(err.Error(), err)
	}

	location, err := s.ownedDeliveryLocation(ctx, caller, locationID)
	if err != nil {
		return nil, err
	}

	location.IsCurrentLocation = update.IsCurrentLocation
	location.BuildingType = update.BuildingType
	location.Latitude = update.Latitude
	location.Longitude = update.Longitude
	location.Address = update.Address
	if err := s.datasource.UpdateDeliveryLocation(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *Sanad) DeleteDeliveryLocation(ctx context.Context, caller model.Caller, locationID string) error {
	if err := requireApproved(caller); err != nil {
		return err
	}
	if _, err := s.ownedDeliveryLocation(ctx, caller, locationID); err != nil {
		return err
	}
	return s.datasource.DeleteDeliveryLocation(ctx, locationID)
}

// ListDeliveryLocations returns the locations attached to the caller's transactions.
func (s *Sanad) ListDeliveryLocations(ctx context.Context, caller model.Caller) ([]model.DeliveryLocation, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	return s.datasource.GetDeliveryLocationsByIdentity(ctx, caller.ID())
}

func (s *Sanad) ownedDeliveryLocation(ctx context.Context, caller model.Caller, locationID string) (*model.DeliveryLocation, error) {
	location, err := s.datasource.GetDeliveryLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedTransaction(ctx, caller, location.TransactionID); err != nil {
		return nil, err
	}
	return location, nil
}

// CreateDeliverySchedule attaches a schedule to one of the caller's transactions.
func (s *Sanad) CreateDeliverySchedule(ctx context.Context, caller model.Caller, schedule model.DeliverySchedule) (*model.DeliverySchedule, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	if err := requireTransactionID(schedule.TransactionID); err != nil {
		return nil, err
	}
	if err := schedule.Validate(); err != nil {
		return nil, invalidInput(err.Error(), err)
	}
	if _, err := s.ownedTransaction(ctx, caller, schedule.TransactionID); err != nil {
		return nil, err
	}

	schedule.ScheduleID = model.GenerateUUIDWithSuffix(model.DeliverySchedulePrefix)
	schedule.CreatedAt = s.now()
	schedule.Normalize()
	if err := s.datasource.CreateDeliverySchedule(ctx, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// UpdateDeliverySchedule rewrites a schedule on one of the caller's transactions.
func (s *Sanad) UpdateDeliverySchedule(ctx context.Context, caller model.Caller, scheduleID string, update model.DeliverySchedule) (*model.DeliverySchedule, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	if err := update.Validate(); err != nil {
		return nil, invalidInput(err.Error(), err)
	}

	schedule, err := s.ownedDeliverySchedule(ctx, caller, scheduleID)
	if err != nil {
		return nil, err
	}

	schedule.DeliveryType = update.DeliveryType
	schedule.ScheduledDate = update.ScheduledDate
	schedule.ScheduledTime = update.ScheduledTime
	schedule.Normalize()
	if err := s.datasource.UpdateDeliverySchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *Sanad) DeleteDeliverySchedule(ctx context.Context, caller model.Caller, scheduleID string) error {
	if err := requireApproved(caller); err != nil {
		return err
	}
	if _, err := s.ownedDeliverySchedule(ctx, caller, scheduleID); err != nil {
		return err
	}
	return s.datasource.DeleteDeliverySchedule(ctx, scheduleID)
}

// ListDeliverySchedules returns the schedules attached to the caller's transactions.
func (s *Sanad) ListDeliverySchedules(ctx context.Context, caller model.Caller) ([]model.DeliverySchedule, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	return s.datasource.GetDeliverySchedulesByIdentity(ctx, caller.ID())
}

func (s *Sanad) ownedDeliverySchedule(ctx context.Context, caller model.Caller, scheduleID string) (*model.DeliverySchedule, error) {
	schedule, err := s.datasource.GetDeliverySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedTransaction(ctx, caller, schedule.TransactionID); err != nil {
		return nil, err
	}
	return schedule, nil
}
