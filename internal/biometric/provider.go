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

package biometric

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sanadpay/sanad/internal/request"
)

// ProviderConfig describes an external face-match provider reached over HTTP.
type ProviderConfig struct {
	Name            string          `yaml:"name"`
	BaseURL         string          `yaml:"base_url"`
	VerifyEndpoint  string          `yaml:"verify_endpoint"`
	APIKey          string          `yaml:"api_key"`
	APISecret       string          `yaml:"api_secret,omitempty"`
	AuthType        string          `yaml:"auth_type"`
	AuthHeader      string          `yaml:"auth_header,omitempty"`
	FieldMapping    FieldMapping    `yaml:"field_mapping,omitempty"`
	ResponseMapping ResponseMapping `yaml:"response_mapping"`
}

// FieldMapping renames the request fields for providers with their own schema.
type FieldMapping struct {
	FaceScan   string `yaml:"face_scan"`
	EmiratesID string `yaml:"emirates_id"`
}

// ResponseMapping locates the verdict in the provider's answer. StatusField
// is a dotted path into the JSON body.
type ResponseMapping struct {
	StatusField    string   `yaml:"status_field"`
	AcceptedValues []string `yaml:"accepted_values"`
}

// LoadProviderConfig reads a provider definition from a YAML file.
func LoadProviderConfig(path string) (*ProviderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProviderConfig(data)
}

func ParseProviderConfig(data []byte) (*ProviderConfig, error) {
	var cfg ProviderConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *ProviderConfig) validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("biometric provider base_url is required")
	}
	if strings.TrimSpace(c.ResponseMapping.StatusField) == "" {
		return errors.New("biometric provider response_mapping.status_field is required")
	}
	if len(c.ResponseMapping.AcceptedValues) == 0 {
		return errors.New("biometric provider response_mapping.accepted_values is required")
	}
	if c.FieldMapping.FaceScan == "" {
		c.FieldMapping.FaceScan = "face_scan"
	}
	if c.FieldMapping.EmiratesID == "" {
		c.FieldMapping.EmiratesID = "emirates_id"
	}
	return nil
}

// ProviderOracle asks an external provider whether a face scan matches a
// national id. Any answer outside the accepted values is a rejection,
// including review or pending states.
type ProviderOracle struct {
	config ProviderConfig
}

func NewProviderOracle(cfg ProviderConfig) (*ProviderOracle, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &ProviderOracle{config: cfg}, nil
}

func (p *ProviderOracle) Verify(ctx context.Context, faceScan, emiratesID string) (bool, error) {
	payload, err := request.ToJsonReq(map[string]string{
		p.config.FieldMapping.FaceScan:   faceScan,
		p.config.FieldMapping.EmiratesID: emiratesID,
	})
	if err != nil {
		return false, err
	}

	url := strings.TrimRight(p.config.BaseURL, "/") + p.config.VerifyEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, payload)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	p.addAuth(req)

	var body map[string]interface{}
	if _, err := request.Call(req, &body); err != nil {
		return false, fmt.Errorf("%s verification failed: %w", p.config.Name, err)
	}

	status, _ := nestedValue(body, p.config.ResponseMapping.StatusField).(string)
	for _, accepted := range p.config.ResponseMapping.AcceptedValues {
		if strings.EqualFold(accepted, status) {
			return true, nil
		}
	}
	return false, nil
}

func (p *ProviderOracle) addAuth(req *http.Request) {
	switch strings.ToLower(p.config.AuthType) {
	case "basic":
		auth := base64.StdEncoding.EncodeToString([]byte(p.config.APIKey + ":" + p.config.APISecret))
		req.Header.Set("Authorization", "Basic "+auth)
	case "header":
		header := p.config.AuthHeader
		if header == "" {
			header = "X-API-Key"
		}
		req.Header.Set(header, p.config.APIKey)
	default:
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}
}

func nestedValue(data map[string]interface{}, path string) interface{} {
	current := interface{}(data)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = m[part]
	}
	return current
}
