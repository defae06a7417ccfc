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
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ID prefixes for every persisted entity.
const (
	IdentityPrefix         = "idt"
	EmployeePrefix         = "emp"
	CardPrefix             = "crd"
	TransactionPrefix      = "txn"
	DeliveryLocationPrefix = "dlc"
	DeliverySchedulePrefix = "dsc"
	SignaturePrefix        = "sig"
)

// GenerateUUIDWithSuffix generates a UUID with a given module name as a suffix.
// This is useful for creating unique identifiers with context-specific prefixes.
func GenerateUUIDWithSuffix(module string) string {
	id := uuid.New() // Generate a new UUID.
	uuidStr := id.String()
	idWithSuffix := fmt.Sprintf("%s_%s", module, uuidStr) // Append the module as a suffix to the UUID.
	return idWithSuffix
}

// decimalPlaces returns a rule function rejecting values with more than places fraction digits.
func decimalPlaces(places int32) func(value interface{}) error {
	return func(value interface{}) error {
		var d decimal.Decimal
		switch v := value.(type) {
		case decimal.Decimal:
			d = v
		case decimal.NullDecimal:
			if !v.Valid {
				return nil
			}
			d = v.Decimal
		default:
			return errors.New("must be a decimal")
		}
		if !d.Equal(d.Round(places)) {
			return fmt.Errorf("must have at most %d decimal places", places)
		}
		return nil
	}
}

// decimalRange returns a rule function rejecting values outside [min, max].
// An unset NullDecimal passes; presence is checked by validation.Required.
func decimalRange(min, max decimal.Decimal) func(value interface{}) error {
	return func(value interface{}) error {
		var d decimal.Decimal
		switch v := value.(type) {
		case decimal.Decimal:
			d = v
		case decimal.NullDecimal:
			if !v.Valid {
				return nil
			}
			d = v.Decimal
		default:
			return errors.New("must be a decimal")
		}
		if d.LessThan(min) || d.GreaterThan(max) {
			return fmt.Errorf("must be between %s and %s", min.String(), max.String())
		}
		return nil
	}
}
