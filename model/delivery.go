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

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const (
	DeliveryDateLayout = "2006-01-02"
	DeliveryTimeLayout = "15:04:05"
)

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

// DeliveryLocation is a fulfillment address attached to a transaction.
type DeliveryLocation struct {
	LocationID        string          `json:"id"`
	TransactionID     string          `json:"transaction_id"`
	IsCurrentLocation bool            `json:"is_current_location"`
	BuildingType      string          `json:"building_type"`
	Latitude          decimal.Decimal `json:"latitude"`
	Longitude         decimal.Decimal `json:"longitude"`
	Address           string          `json:"address"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (l DeliveryLocation) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.BuildingType, validation.Required, validation.Length(1, 50)),
		validation.Field(&l.Latitude, validation.By(decimalRange(maxLatitude.Neg(), maxLatitude)), validation.By(decimalPlaces(6))),
		validation.Field(&l.Longitude, validation.By(decimalRange(maxLongitude.Neg(), maxLongitude)), validation.By(decimalPlaces(6))),
		validation.Field(&l.Address, validation.Required),
	)
}

// DeliverySchedule is a delivery slot attached to a transaction. Date and time
// are kept in their wire layouts, DeliveryDateLayout and DeliveryTimeLayout.
type DeliverySchedule struct {
	ScheduleID    string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	DeliveryType  string    `json:"delivery_type"`
	ScheduledDate string    `json:"scheduled_date"`
	ScheduledTime string    `json:"scheduled_time"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s DeliverySchedule) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.DeliveryType, validation.Required, validation.Length(1, 50)),
		validation.Field(&s.ScheduledDate, validation.Required, validation.Date(DeliveryDateLayout).Error("must be formatted as YYYY-MM-DD")),
		validation.Field(&s.ScheduledTime, validation.Required, validation.By(func(value interface{}) error {
			if _, err := ParseDeliveryTime(value.(string)); err != nil {
				return err
			}
			return nil
		})),
	)
}

// ParseDeliveryTime accepts HH:MM or HH:MM:SS.
func ParseDeliveryTime(value string) (time.Time, error) {
	if t, err := time.Parse(DeliveryTimeLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("15:04", value); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("must be formatted as HH:MM or HH:MM:SS")
}

// Normalize rewrites the scheduled time into DeliveryTimeLayout.
func (s *DeliverySchedule) Normalize() {
	if t, err := ParseDeliveryTime(s.ScheduledTime); err == nil {
		s.ScheduledTime = t.Format(DeliveryTimeLayout)
	}
}
