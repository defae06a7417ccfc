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

import "github.com/shopspring/decimal"

type DeliveryLocation struct {
	TransactionID     string          `json:"transaction_id"`
	IsCurrentLocation bool            `json:"is_current_location"`
	BuildingType      string          `json:"building_type"`
	Latitude          decimal.Decimal `json:"latitude"`
	Longitude         decimal.Decimal `json:"longitude"`
	Address           string          `json:"address"`
}

type DeliverySchedule struct {
	TransactionID string `json:"transaction_id"`
	DeliveryType  string `json:"delivery_type"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
}

type CreateTransaction struct {
	CardID             *string             `json:"card_id"`
	TransactionType    string              `json:"transaction_type"`
	Amount             decimal.NullDecimal `json:"amount"`
	CurrencyFrom       string              `json:"currency_from"`
	CurrencyTo         string              `json:"currency_to"`
	ExchangeRate       decimal.NullDecimal `json:"exchange_rate"`
	RecipientID        *string             `json:"recipient_id"`
	MessageToRecipient *string             `json:"message_to_recipient"`
	DeliveryLocations  []DeliveryLocation  `json:"delivery_locations"`
	DeliverySchedules  []DeliverySchedule  `json:"delivery_schedules"`
}

type CaptureSignature struct {
	SignatureData string  `json:"signature_data"`
	Purpose       string  `json:"purpose"`
	TransactionID *string `json:"transaction_id"`
}
