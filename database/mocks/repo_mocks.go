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

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sanadpay/sanad/database"
	"github.com/sanadpay/sanad/model"
)

// MockDataSource is a mock implementation of the IDataSource interface
type MockDataSource struct {
	mock.Mock
}

var _ database.IDataSource = (*MockDataSource)(nil)

// Identity methods

func (m *MockDataSource) CreateIdentity(ctx context.Context, identity *model.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockDataSource) GetIdentityByID(ctx context.Context, id string) (*model.Identity, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Identity); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) GetIdentityByEmail(ctx context.Context, email string) (*model.Identity, error) {
	args := m.Called(ctx, email)
	if v, ok := args.Get(0).(*model.Identity); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) GetAllIdentities(ctx context.Context) ([]model.Identity, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Identity); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) UpdateIdentityStatus(ctx context.Context, id string, status model.UserStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockDataSource) SubmitVerification(ctx context.Context, id string, faceScan string, emiratesID string) error {
	args := m.Called(ctx, id, faceScan, emiratesID)
	return args.Error(0)
}

// Employee methods

func (m *MockDataSource) CreateEmployee(ctx context.Context, employee *model.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockDataSource) GetEmployeeByID(ctx context.Context, id string) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Employee); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) GetEmployeeByIdentity(ctx context.Context, identityID string) (*model.Employee, error) {
	args := m.Called(ctx, identityID)
	if v, ok := args.Get(0).(*model.Employee); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) GetAllEmployees(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Employee); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) UpdateEmployeeRole(ctx context.Context, id string, role model.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockDataSource) DeleteEmployee(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Card methods

func (m *MockDataSource) GetCardByID(ctx context.Context, id string) (*model.Card, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Card); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) GetCardsByIdentity(ctx context.Context, identityID string) ([]model.Card, error) {
	args := m.Called(ctx, identityID)
	if v, ok := args.Get(0).([]model.Card); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Transaction methods

func (m *MockDataSource) RecordTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	args := m.Called(ctx, txn)
	if v, ok := args.Get(0).(*model.Transaction); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Transaction); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) GetTransactionsByIdentity(ctx context.Context, identityID string, types []model.TransactionType, limit, offset int) ([]model.Transaction, error) {
	args := m.Called(ctx, identityID, types, limit, offset)
	if v, ok := args.Get(0).([]model.Transaction); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) UpdateTransactionStatus(ctx context.Context, id string, from, to model.TransactionStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

// Delivery methods

func (m *MockDataSource) CreateDeliveryLocation(ctx context.Context, location *model.DeliveryLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockDataSource) GetDeliveryLocation(ctx context.Context, id string) (*model.DeliveryLocation, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.DeliveryLocation); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) GetDeliveryLocationsByIdentity(ctx context.Context, identityID string) ([]model.DeliveryLocation, error) {
	args := m.Called(ctx, identityID)
	if v, ok := args.Get(0).([]model.DeliveryLocation); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) UpdateDeliveryLocation(ctx context.Context, location *model.DeliveryLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockDataSource) DeleteDeliveryLocation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDataSource) CreateDeliverySchedule(ctx context.Context, schedule *model.DeliverySchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockDataSource) GetDeliverySchedule(ctx context.Context, id string) (*model.DeliverySchedule, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.DeliverySchedule); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) GetDeliverySchedulesByIdentity(ctx context.Context, identityID string) ([]model.DeliverySchedule, error) {
	args := m.Called(ctx, identityID)
	if v, ok := args.Get(0).([]model.DeliverySchedule); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) UpdateDeliverySchedule(ctx context.Context, schedule *model.DeliverySchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockDataSource) DeleteDeliverySchedule(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Signature methods

func (m *MockDataSource) UpsertSignature(ctx context.Context, sig *model.DigitalSignature) (*model.DigitalSignature, error) {
	args := m.Called(ctx, sig)
	if v, ok := args.Get(0).(*model.DigitalSignature); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) GetSignatureByIdentity(ctx context.Context, identityID string) (*model.DigitalSignature, error) {
	args := m.Called(ctx, identityID)
	if v, ok := args.Get(0).(*model.DigitalSignature); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
