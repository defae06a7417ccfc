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
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/sanadpay/sanad"
	"github.com/sanadpay/sanad/model"
)

const birthDateLayout = "2006-01-02"

// Public endpoints validate their payload up front. Authenticated endpoints
// leave validation to the core so that access checks run first.

func (l *Login) ValidateLogin() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Email, validation.Required, is.EmailFormat),
		validation.Field(&l.Password, validation.Required),
	)
}

func (r *RefreshToken) ValidateRefreshToken() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Refresh, validation.Required),
	)
}

func (r *Register) ValidateRegister() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.PhoneNumber, validation.NilOrNotEmpty),
		validation.Field(&r.BirthDate, validation.NilOrNotEmpty, validation.Date(birthDateLayout).Error("please format the birth date as 'YYYY-MM-DD'")),
	)
}

func (r *Register) ToRegistration() (sanad.Registration, error) {
	registration := sanad.Registration{
		Email:       r.Email,
		Username:    r.Username,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		Passport:    r.Passport,
		EmiratesID:  r.EmiratesID,
		FaceScan:    r.FaceScan,
	}
	if r.BirthDate != nil {
		birthDate, err := time.Parse(birthDateLayout, *r.BirthDate)
		if err != nil {
			return sanad.Registration{}, errors.New("please format the birth date as 'YYYY-MM-DD'")
		}
		registration.BirthDate = &birthDate
	}
	return registration, nil
}

func (l DeliveryLocation) ToDeliveryLocation() model.DeliveryLocation {
	return model.DeliveryLocation{
		TransactionID:     strings.TrimSpace(l.TransactionID),
		IsCurrentLocation: l.IsCurrentLocation,
		BuildingType:      l.BuildingType,
		Latitude:          l.Latitude,
		Longitude:         l.Longitude,
		Address:           l.Address,
	}
}

func (s DeliverySchedule) ToDeliverySchedule() model.DeliverySchedule {
	return model.DeliverySchedule{
		TransactionID: strings.TrimSpace(s.TransactionID),
		DeliveryType:  s.DeliveryType,
		ScheduledDate: s.ScheduledDate,
		ScheduledTime: s.ScheduledTime,
	}
}

func (t *CreateTransaction) ToTransaction() model.Transaction {
	transaction := model.Transaction{
		CardID:             t.CardID,
		Type:               model.TransactionType(strings.TrimSpace(t.TransactionType)),
		Amount:             t.Amount,
		CurrencyFrom:       strings.TrimSpace(t.CurrencyFrom),
		CurrencyTo:         strings.TrimSpace(t.CurrencyTo),
		ExchangeRate:       t.ExchangeRate,
		RecipientID:        t.RecipientID,
		MessageToRecipient: t.MessageToRecipient,
	}
	for _, location := range t.DeliveryLocations {
		transaction.DeliveryLocations = append(transaction.DeliveryLocations, location.ToDeliveryLocation())
	}
	for _, schedule := range t.DeliverySchedules {
		transaction.DeliverySchedules = append(transaction.DeliverySchedules, schedule.ToDeliverySchedule())
	}
	return transaction
}
