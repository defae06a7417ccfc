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

	"github.com/sirupsen/logrus"

	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/model"
)

func parseAssignableRole(role string) (model.Role, error) {
	parsed, ok := model.ParseRole(strings.TrimSpace(role))
	if !ok {
		return model.RoleNone, invalidInput("role must be one of admin, staff", map[string]string{"role": role})
	}
	return parsed, nil
}

func (s *Sanad) newEmployee(identity *model.Identity, role model.Role) *model.Employee {
	now := s.now()
	return &model.Employee{
		EmployeeID: model.GenerateUUIDWithSuffix(model.EmployeePrefix),
		IdentityID: identity.IdentityID,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
		Email:      identity.Email,
		FullName:   identity.FullName(),
	}
}

// CreateEmployee assigns a back-office role to an existing identity. Admin
// only. An identity already holding a role is rejected and its assignment
// is left untouched.
//
// Parameters:
// - ctx context.Context: The context for the operation.
// - caller model.Caller: The acting admin.
// - identityID string: The identity receiving the role.
// - role string: admin or staff.
//
// Returns:
// - *model.Employee: The new role assignment.
// - error: FORBIDDEN, INVALID_INPUT (bad role or duplicate) or NOT_FOUND (unknown identity).
func (s *Sanad) CreateEmployee(ctx context.Context, caller model.Caller, identityID string, role string) (*model.Employee, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	parsed, err := parseAssignableRole(role)
	if err != nil {
		return nil, err
	}

	identity, err := s.datasource.GetIdentityByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	existing, err := s.datasource.GetEmployeeByIdentity(ctx, identity.IdentityID)
	switch {
	case err == nil && existing != nil:
		return nil, invalidInput("user is already an employee", map[string]string{"employee_id": existing.EmployeeID})
	case err != nil && !apierror.HasCode(err, apierror.ErrNotFound):
		return nil, err
	}

	employee := s.newEmployee(identity, parsed)
	if err := s.datasource.CreateEmployee(ctx, employee); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"employee_id": employee.EmployeeID, "role": parsed, "by": caller.ID()}).Info("employee created")
	return employee, nil
}

// UpdateEmployee changes the role of an existing assignment. Admin only.
func (s *Sanad) UpdateEmployee(ctx context.Context, caller model.Caller, employeeID string, role string) (*model.Employee, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	parsed, err := parseAssignableRole(role)
	if err != nil {
		return nil, err
	}

	employee, err := s.datasource.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := s.datasource.UpdateEmployeeRole(ctx, employee.EmployeeID, parsed); err != nil {
		return nil, err
	}

	employee.Role = parsed
	employee.UpdatedAt = s.now()
	return employee, nil
}

// ListEmployees returns every role assignment. Admin only.
func (s *Sanad) ListEmployees(ctx context.Context, caller model.Caller) ([]model.Employee, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.datasource.GetAllEmployees(ctx)
}

// DeleteEmployee revokes a role assignment. The identity survives. Admin only.
func (s *Sanad) DeleteEmployee(ctx context.Context, caller model.Caller, employeeID string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := s.datasource.DeleteEmployee(ctx, employeeID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"employee_id": employeeID, "by": caller.ID()}).Info("employee deleted")
	return nil
}

// GrantRole bootstraps a role assignment without an acting admin. It backs
// the operator CLI and must never be reachable from the HTTP surface. An
// existing assignment is updated in place.
func (s *Sanad) GrantRole(ctx context.Context, email string, role string) (*model.Employee, error) {
	parsed, err := parseAssignableRole(role)
	if err != nil {
		return nil, err
	}

	identity, err := s.datasource.GetIdentityByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	existing, err := s.datasource.GetEmployeeByIdentity(ctx, identity.IdentityID)
	if err == nil {
		if err := s.datasource.UpdateEmployeeRole(ctx, existing.EmployeeID, parsed); err != nil {
			return nil, err
		}
		existing.Role = parsed
		return existing, nil
	}
	if !apierror.HasCode(err, apierror.ErrNotFound) {
		return nil, err
	}

	employee := s.newEmployee(identity, parsed)
	if err := s.datasource.CreateEmployee(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}
