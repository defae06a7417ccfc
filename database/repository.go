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

	"github.com/sanadpay/sanad/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	identity    // Interface for identity-related operations
	employee    // Interface for role assignments
	card        // Interface for card-on-file lookups
	transaction // Interface for ledger entries
	delivery    // Interface for delivery locations and schedules
	signature   // Interface for digital signatures
}

// identity defines methods for handling identities.
type identity interface {
	CreateIdentity(ctx context.Context, identity *model.Identity) error                          // Inserts a new identity
	GetIdentityByID(ctx context.Context, id string) (*model.Identity, error)                     // Retrieves an identity by ID
	GetIdentityByEmail(ctx context.Context, email string) (*model.Identity, error)               // Retrieves an identity by its login email
	GetAllIdentities(ctx context.Context) ([]model.Identity, error)                              // Retrieves every identity
	UpdateIdentityStatus(ctx context.Context, id string, status model.UserStatus) error          // Overwrites the verification status
	SubmitVerification(ctx context.Context, id string, faceScan string, emiratesID string) error // Stores biometric data and resets status to pending
}

// employee defines methods for handling role assignments.
type employee interface {
	CreateEmployee(ctx context.Context, employee *model.Employee) error
	GetEmployeeByID(ctx context.Context, id string) (*model.Employee, error)
	GetEmployeeByIdentity(ctx context.Context, identityID string) (*model.Employee, error)
	GetAllEmployees(ctx context.Context) ([]model.Employee, error)
	UpdateEmployeeRole(ctx context.Context, id string, role model.Role) error
	DeleteEmployee(ctx context.Context, id string) error
}

// card defines read access to cards on file.
type card interface {
	GetCardByID(ctx context.Context, id string) (*model.Card, error)
	GetCardsByIdentity(ctx context.Context, identityID string) ([]model.Card, error)
}

// transaction defines methods for handling ledger entries.
type transaction interface {
	RecordTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) // Inserts an entry and its delivery sub-records atomically
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)                 // Retrieves an entry with its delivery sub-records
	GetTransactionsByIdentity(ctx context.Context, identityID string, types []model.TransactionType, limit, offset int) ([]model.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, id string, from, to model.TransactionStatus) error // Moves an entry from one status to another
}

// delivery defines methods for handling delivery sub-records.
type delivery interface {
	CreateDeliveryLocation(ctx context.Context, location *model.DeliveryLocation) error
	GetDeliveryLocation(ctx context.Context, id string) (*model.DeliveryLocation, error)
	GetDeliveryLocationsByIdentity(ctx context.Context, identityID string) ([]model.DeliveryLocation, error)
	UpdateDeliveryLocation(ctx context.Context, location *model.DeliveryLocation) error
	DeleteDeliveryLocation(ctx context.Context, id string) error

	CreateDeliverySchedule(ctx context.Context, schedule *model.DeliverySchedule) error
	GetDeliverySchedule(ctx context.Context, id string) (*model.DeliverySchedule, error)
	GetDeliverySchedulesByIdentity(ctx context.Context, identityID string) ([]model.DeliverySchedule, error)
	UpdateDeliverySchedule(ctx context.Context, schedule *model.DeliverySchedule) error
	DeleteDeliverySchedule(ctx context.Context, id string) error
}

// signature defines methods for handling digital signatures.
type signature interface {
	UpsertSignature(ctx context.Context, sig *model.DigitalSignature) (*model.DigitalSignature, error) // Inserts or replaces the user's signature
	GetSignatureByIdentity(ctx context.Context, identityID string) (*model.DigitalSignature, error)
}
