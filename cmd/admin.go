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
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// adminCommands groups operator actions that bypass the HTTP surface.
func adminCommands(s *sanadInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "operator commands",
	}
	cmd.AddCommand(grantRoleCommand(s))
	return cmd
}

// grantRoleCommand bootstraps the first admin, and any later role, by email.
func grantRoleCommand(s *sanadInstance) *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "grant",
		Short: "grant an employee role to an existing account",
		Run: func(cmd *cobra.Command, args []string) {
			employee, err := s.sanad.GrantRole(context.Background(), email, role)
			if err != nil {
				log.Fatalf("Error granting role: %v", err)
			}
			fmt.Printf("Granted %s to %s (employee %s)\n", employee.Role, email, employee.EmployeeID)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the account receiving the role")
	cmd.Flags().StringVar(&role, "role", "admin", "role to grant: admin or staff")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
