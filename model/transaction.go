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
	"encoding/json"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxnWithdrawal   TransactionType = "withdrawal"
	TxnDeposit      TransactionType = "deposit"
	TxnSendMoney    TransactionType = "send_money"
	TxnReceiveMoney TransactionType = "receive_money"
)

// IsTransfer reports whether the type moves value between two identities
// and therefore needs a recipient.
func (t TransactionType) IsTransfer() bool {
	return t == TxnSendMoney || t == TxnReceiveMoney
}

type TransactionStatus string

const (
	TxnStatusPending   TransactionStatus = "pending"
	TxnStatusCompleted TransactionStatus = "completed"
	TxnStatusFailed    TransactionStatus = "failed"
	TxnStatusCancelled TransactionStatus = "cancelled"
)

const (
	DefaultCurrencyFrom = "AED"
	DefaultCurrencyTo   = "USD"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// maxAmount is the first value that no longer fits numeric(12,2).
var maxAmount = decimal.New(1, 10)

// maxExchangeRate is the first value that no longer fits numeric(10,6).
var maxExchangeRate = decimal.New(1, 4)

type Transaction struct {
	TransactionID      string              `json:"id"`
	IdentityID         string              `json:"user_id"`
	CardID             *string             `json:"card_id"`
	Type               TransactionType     `json:"transaction_type"`
	Amount             decimal.NullDecimal `json:"amount"`
	Status             TransactionStatus   `json:"status"`
	Timestamp          time.Time           `json:"timestamp"`
	CurrencyFrom       string              `json:"currency_from"`
	CurrencyTo         string              `json:"currency_to"`
	ExchangeRate       decimal.NullDecimal `json:"exchange_rate"`
	RecipientID        *string             `json:"recipient_id"`
	MessageToRecipient *string             `json:"message_to_recipient,omitempty"`
	DeliveryLocations  []DeliveryLocation  `json:"delivery_locations,omitempty"`
	DeliverySchedules  []DeliverySchedule  `json:"delivery_schedules,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (transaction *Transaction) ToJSON() ([]byte, error) {
	return json.Marshal(transaction)
}

// ApplyDefaults fills the currency pair the way an omitted field is stored.
func (transaction *Transaction) ApplyDefaults() {
	if transaction.CurrencyFrom == "" {
		transaction.CurrencyFrom = DefaultCurrencyFrom
	}
	if transaction.CurrencyTo == "" {
		transaction.CurrencyTo = DefaultCurrencyTo
	}
}

// Validate checks the structure of a transaction and its delivery payloads.
// Ownership and reference checks need storage and live in the service.
func (transaction Transaction) Validate() error {
	return validation.ValidateStruct(&transaction,
		validation.Field(&transaction.Type, validation.Required,
			validation.In(TxnWithdrawal, TxnDeposit, TxnSendMoney, TxnReceiveMoney).Error("must be one of withdrawal, deposit, send_money, receive_money")),
		validation.Field(&transaction.Amount, validation.Required.Error("is required"),
			validation.By(decimalRange(decimal.Zero, maxAmount.Sub(decimal.New(1, -2)))),
			validation.By(decimalPlaces(2))),
		validation.Field(&transaction.CurrencyFrom, validation.Required, validation.Match(currencyPattern).Error("must be a 3-letter currency code")),
		validation.Field(&transaction.CurrencyTo, validation.Required, validation.Match(currencyPattern).Error("must be a 3-letter currency code")),
		validation.Field(&transaction.ExchangeRate, validation.By(decimalPlaces(6)), validation.By(func(value interface{}) error {
			rate, _ := value.(decimal.NullDecimal)
			if rate.Valid {
				return decimalRange(decimal.Zero, maxExchangeRate.Sub(decimal.New(1, -6)))(rate.Decimal)
			}
			return nil
		})),
		validation.Field(&transaction.CardID, validation.Required),
		validation.Field(&transaction.DeliveryLocations),
		validation.Field(&transaction.DeliverySchedules),
	)
}
