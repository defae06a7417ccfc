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
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sanadpay/sanad"
	"github.com/sanadpay/sanad/config"
	"github.com/sanadpay/sanad/database"
	"github.com/sanadpay/sanad/internal/biometric"
	"github.com/sanadpay/sanad/internal/notification"
	"github.com/sanadpay/sanad/internal/password"
	"github.com/sanadpay/sanad/internal/token"
)

// Sanad represents the CLI application, encapsulating the root Cobra command.
type Sanad struct {
	cmd *cobra.Command
}

// sanadInstance holds the core service and its configuration for the subcommands.
type sanadInstance struct {
	sanad *sanad.Sanad
	cnf   *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and wires the core service before any command runs.
func preRun(app *sanadInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(*configFile); err != nil {
			log.Fatal("error loading config: ", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newSanad, err := setupSanad(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.sanad = newSanad
		app.cnf = cnf
		return nil
	}
}

// setupSanad connects the datasource and the default boundary adapters.
func setupSanad(cfg *config.Configuration) (*sanad.Sanad, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "error getting datasource")
	}

	tokens := token.NewJWTService(
		cfg.Auth.SecretKey,
		cfg.Auth.Issuer,
		time.Duration(cfg.Auth.AccessTokenTTLSec)*time.Second,
		time.Duration(cfg.Auth.RefreshTokenTTLSec)*time.Second,
	)

	oracle, err := biometricOracle(cfg.Biometric)
	if err != nil {
		return nil, errors.Wrap(err, "error loading biometric provider")
	}

	newSanad, err := sanad.NewSanad(db, tokens, password.NewHasher(0), oracle)
	if err != nil {
		return nil, errors.Wrap(err, "error creating sanad")
	}
	return newSanad, nil
}

// biometricOracle uses the configured provider, or the local stub when none is set.
func biometricOracle(cfg config.BiometricConfig) (sanad.BiometricOracle, error) {
	if cfg.ProviderConfigFile == "" {
		return biometric.NewStubOracle(), nil
	}
	providerCfg, err := biometric.LoadProviderConfig(cfg.ProviderConfigFile)
	if err != nil {
		return nil, err
	}
	return biometric.NewProviderOracle(*providerCfg)
}

// NewCLI creates the command-line interface for the Sanad server.
func NewCLI() *Sanad {
	var configFile string
	s := &sanadInstance{}

	var rootCmd = &cobra.Command{
		Use:   "sanad",
		Short: "Sanad payments and delivery backend",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./sanad.json", "Configuration file for the sanad server")
	rootCmd.PersistentPreRunE = preRun(s, &configFile)

	rootCmd.AddCommand(serverCommands(s))
	rootCmd.AddCommand(migrateCommands(s))
	rootCmd.AddCommand(adminCommands(s))
	rootCmd.AddCommand(configCommands(s))

	return &Sanad{cmd: rootCmd}
}

func (s Sanad) executeCLI() {
	if err := s.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
