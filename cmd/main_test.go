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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanadpay/sanad/config"
	"github.com/sanadpay/sanad/internal/biometric"
)

func TestMigrationSource(t *testing.T) {
	migrations, err := migrationSource().FindMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 6)

	ids := make([]string, 0, len(migrations))
	for _, m := range migrations {
		ids = append(ids, m.Id)
		assert.NotEmpty(t, m.Up, m.Id)
		assert.NotEmpty(t, m.Down, m.Id)
	}
	assert.Equal(t, []string{
		"1_identities.sql",
		"2_employees.sql",
		"3_cards.sql",
		"4_transactions.sql",
		"5_delivery.sql",
		"6_digital_signatures.sql",
	}, ids)
}

func TestNewCLI_Commands(t *testing.T) {
	cli := NewCLI()
	names := map[string]bool{}
	for _, c := range cli.cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"start", "migrate", "admin", "config"} {
		assert.True(t, names[want], want)
	}
}

func TestBiometricOracle(t *testing.T) {
	oracle, err := biometricOracle(config.BiometricConfig{})
	require.NoError(t, err)
	assert.IsType(t, &biometric.StubOracle{}, oracle)

	path := filepath.Join(t.TempDir(), "provider.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://x\nresponse_mapping:\n  status_field: status\n  accepted_values: [ok]\n"), 0o600))
	oracle, err = biometricOracle(config.BiometricConfig{ProviderConfigFile: path})
	require.NoError(t, err)
	assert.IsType(t, &biometric.ProviderOracle{}, oracle)

	_, err = biometricOracle(config.BiometricConfig{ProviderConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestServeWithShutdown_FlushesOnStartFailure(t *testing.T) {
	shutdownCalls := 0
	shutdown := func(context.Context) error {
		shutdownCalls++
		return errors.New("exporter unavailable")
	}

	err := serveWithShutdown(context.Background(), gin.New(), config.ServerConfig{Port: "-1"}, shutdown)
	assert.Error(t, err)
	assert.Equal(t, 1, shutdownCalls)
}
