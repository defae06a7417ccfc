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
	"time"

	"go.opentelemetry.io/otel"

	"github.com/sanadpay/sanad/model"
)

// CreateEmployee assigns a role to an identity. An identity holds at most
// one role assignment; a second one fails with INVALID_INPUT.
func (d Datasource) CreateEmployee(ctx context.Context, employee *model.Employee) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Saving employee to db")
	defer span.End()

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO sanad.employees (employee_id, user_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, employee.EmployeeID, employee.IdentityID, employee.Role, employee.CreatedAt, employee.UpdatedAt)
	if err != nil {
		span.RecordError(err)
		return wrapError(err, "Failed to create employee")
	}
	return nil
}

const employeeSelect = `
	SELECT e.employee_id, e.user_id, e.role, e.created_at, e.updated_at, i.email,
		trim(concat_ws(' ', i.first_name, i.last_name))
	FROM sanad.employees e
	JOIN sanad.identities i ON i.identity_id = e.user_id`

func scanEmployee(row rowScanner) (*model.Employee, error) {
	employee := &model.Employee{}
	err := row.Scan(&employee.EmployeeID, &employee.IdentityID, &employee.Role, &employee.CreatedAt,
		&employee.UpdatedAt, &employee.Email, &employee.FullName)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (d Datasource) GetEmployeeByID(ctx context.Context, id string) (*model.Employee, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching employee by id")
	defer span.End()

	employee, err := scanEmployee(d.Conn.QueryRowContext(ctx, employeeSelect+` WHERE e.employee_id = $1`, id))
	if err != nil {
		return nil, wrapRowError(err, fmt.Sprintf("Employee with ID '%s' not found", id), "Failed to retrieve employee")
	}
	return employee, nil
}

// GetEmployeeByIdentity returns the role assignment of an identity, or
// NOT_FOUND if it has none.
func (d Datasource) GetEmployeeByIdentity(ctx context.Context, identityID string) (*model.Employee, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching employee by identity")
	defer span.End()

	employee, err := scanEmployee(d.Conn.QueryRowContext(ctx, employeeSelect+` WHERE e.user_id = $1`, identityID))
	if err != nil {
		return nil, wrapRowError(err, "Identity has no role assignment", "Failed to retrieve employee")
	}
	return employee, nil
}

func (d Datasource) GetAllEmployees(ctx context.Context) ([]model.Employee, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching all employees")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, employeeSelect+` ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, wrapError(err, "Failed to retrieve employees")
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, wrapError(err, "Failed to scan employee")
		}
		employees = append(employees, *employee)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "Failed to iterate employees")
	}
	return employees, nil
}

func (d Datasource) UpdateEmployeeRole(ctx context.Context, id string, role model.Role) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Updating employee role")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE sanad.employees
		SET role = $2, updated_at = $3
		WHERE employee_id = $1
	`, id, role, time.Now())
	if err != nil {
		return wrapError(err, "Failed to update employee")
	}
	return expectAffected(result, fmt.Sprintf("Employee with ID '%s' not found", id))
}

// DeleteEmployee removes a role assignment. The identity itself is kept.
func (d Datasource) DeleteEmployee(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Deleting employee")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `DELETE FROM sanad.employees WHERE employee_id = $1`, id)
	if err != nil {
		return wrapError(err, "Failed to delete employee")
	}
	return expectAffected(result, fmt.Sprintf("Employee with ID '%s' not found", id))
}
