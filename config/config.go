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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT = "5001"

	DEFAULT_ACCESS_TOKEN_TTL_SEC  = 15 * 60
	DEFAULT_REFRESH_TOKEN_TTL_SEC = 7 * 24 * 60 * 60
	DEFAULT_TOKEN_ISSUER          = "sanad"
)

var ConfigStore atomic.Value

type ServerConfig struct {
	SSL    bool   `json:"ssl" envconfig:"SANAD_SERVER_SSL"`
	Domain string `json:"domain" envconfig:"SANAD_SERVER_SSL_DOMAIN"`
	Email  string `json:"ssl_email" envconfig:"SANAD_SERVER_SSL_EMAIL"`
	Port   string `json:"port" envconfig:"SANAD_SERVER_PORT"`
}

type DataSourceConfig struct {
	Dns string `json:"dns" envconfig:"SANAD_DATA_SOURCE_DNS"`
}

type AuthConfig struct {
	SecretKey          string `json:"secret_key" envconfig:"SANAD_AUTH_SECRET_KEY"`
	Issuer             string `json:"issuer" envconfig:"SANAD_AUTH_ISSUER"`
	AccessTokenTTLSec  int    `json:"access_token_ttl_sec" envconfig:"SANAD_AUTH_ACCESS_TOKEN_TTL_SEC"`
	RefreshTokenTTLSec int    `json:"refresh_token_ttl_sec" envconfig:"SANAD_AUTH_REFRESH_TOKEN_TTL_SEC"`
}

type RateLimitConfig struct {
	RequestsPerSecond  *float64 `json:"requests_per_second" envconfig:"SANAD_RATE_LIMIT_RPS"`
	Burst              *int     `json:"burst" envconfig:"SANAD_RATE_LIMIT_BURST"`
	CleanupIntervalSec *int     `json:"cleanup_interval_sec" envconfig:"SANAD_RATE_LIMIT_CLEANUP_INTERVAL_SEC"`
}

type BiometricConfig struct {
	ProviderConfigFile string `json:"provider_config_file" envconfig:"SANAD_BIOMETRIC_PROVIDER_CONFIG_FILE"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url" envconfig:"SANAD_NOTIFICATION_SLACK_WEBHOOK_URL"`
}

type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

type OtelExporter struct {
	OtelExporterOtlpProtocol string `json:"otel_exporter_otlp_protocol" envconfig:"SANAD_OTEL_EXPORTER_OTLP_PROTOCOL"`
	OtelExporterOtlpEndpoint string `json:"otel_exporter_otlp_endpoint" envconfig:"SANAD_OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpHeaders  string `json:"otel_exporter_otlp_headers" envconfig:"SANAD_OTEL_EXPORTER_OTLP_HEADERS"`
}

type Configuration struct {
	ProjectName     string           `json:"project_name" envconfig:"SANAD_PROJECT_NAME"`
	EnableTelemetry bool             `json:"enable_telemetry" envconfig:"SANAD_ENABLE_TELEMETRY"`
	Server          ServerConfig     `json:"server"`
	DataSource      DataSourceConfig `json:"data_source"`
	Auth            AuthConfig       `json:"auth"`
	Biometric       BiometricConfig  `json:"biometric"`
	Notification    Notification     `json:"notification"`
	RateLimit       RateLimitConfig  `json:"rate_limit"`
	OtelExporter    OtelExporter     `json:"otel_exporter"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("sanad", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called sanad.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Sanad Server"
	}

	if cnf.DataSource.Dns == "" {
		log.Println("Error: Data source DNS is empty. It's a required field.")
		return errors.New("data source DNS is required")
	}

	if cnf.Auth.SecretKey == "" {
		log.Println("Error: Auth secret key is empty. It's a required field.")
		return errors.New("auth secret key is required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)
	cnf.Auth.Issuer = strings.TrimSpace(cnf.Auth.Issuer)
	cnf.Biometric.ProviderConfigFile = strings.TrimSpace(cnf.Biometric.ProviderConfigFile)

	// Set default value for Port if it's empty
	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.Auth.Issuer == "" {
		cnf.Auth.Issuer = DEFAULT_TOKEN_ISSUER
	}
	if cnf.Auth.AccessTokenTTLSec <= 0 {
		cnf.Auth.AccessTokenTTLSec = DEFAULT_ACCESS_TOKEN_TTL_SEC
	}
	if cnf.Auth.RefreshTokenTTLSec <= 0 {
		cnf.Auth.RefreshTokenTTLSec = DEFAULT_REFRESH_TOKEN_TTL_SEC
	}
	if cnf.Auth.RefreshTokenTTLSec < cnf.Auth.AccessTokenTTLSec {
		return errors.New("refresh token ttl must not be shorter than access token ttl")
	}

	// Rate limiting is disabled by default (when both RPS and Burst are nil)
	if cnf.RateLimit.RequestsPerSecond != nil && cnf.RateLimit.Burst == nil {
		defaultBurst := 2 * int(*cnf.RateLimit.RequestsPerSecond)
		cnf.RateLimit.Burst = &defaultBurst
		log.Printf("Warning: Rate limit burst not specified. Setting default value: %d", defaultBurst)
	}
	if cnf.RateLimit.RequestsPerSecond == nil && cnf.RateLimit.Burst != nil {
		defaultRPS := float64(*cnf.RateLimit.Burst) / 2
		cnf.RateLimit.RequestsPerSecond = &defaultRPS
		log.Printf("Warning: Rate limit RPS not specified. Setting default value: %.2f", defaultRPS)
	}

	// Set default cleanup interval if not specified
	if cnf.RateLimit.CleanupIntervalSec == nil {
		defaultCleanup := 10800 // 3 hours in seconds
		cnf.RateLimit.CleanupIntervalSec = &defaultCleanup
	}

	return nil
}

// SetOtelExporterEnvs exports the configured OTLP settings as the standard
// OTEL_* variables read by the OpenTelemetry exporters.
func SetOtelExporterEnvs() error {
	cnf, err := Fetch()
	if err != nil {
		return err
	}
	envs := map[string]string{
		"OTEL_EXPORTER_OTLP_PROTOCOL": cnf.OtelExporter.OtelExporterOtlpProtocol,
		"OTEL_EXPORTER_OTLP_ENDPOINT": cnf.OtelExporter.OtelExporterOtlpEndpoint,
		"OTEL_EXPORTER_OTLP_HEADERS":  cnf.OtelExporter.OtelExporterOtlpHeaders,
	}
	for key, value := range envs {
		if value == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
