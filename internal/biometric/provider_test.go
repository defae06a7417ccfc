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
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProviderConfig() ProviderConfig {
	return ProviderConfig{
		Name:           "facematch",
		BaseURL:        "https://facematch.example.com/",
		VerifyEndpoint: "/v1/verify",
		APIKey:         "key",
		AuthType:       "bearer",
		ResponseMapping: ResponseMapping{
			StatusField:    "result.status",
			AcceptedValues: []string{"match"},
		},
	}
}

func TestParseProviderConfig(t *testing.T) {
	cfg, err := ParseProviderConfig([]byte(`
name: facematch
base_url: https://facematch.example.com
verify_endpoint: /v1/verify
api_key: key
auth_type: header
auth_header: X-Provider-Key
response_mapping:
  status_field: result.status
  accepted_values: [match, approved]
`))
	require.NoError(t, err)
	assert.Equal(t, "X-Provider-Key", cfg.AuthHeader)
	assert.Equal(t, []string{"match", "approved"}, cfg.ResponseMapping.AcceptedValues)
	assert.Equal(t, "face_scan", cfg.FieldMapping.FaceScan)
	assert.Equal(t, "emirates_id", cfg.FieldMapping.EmiratesID)
}

func TestParseProviderConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing base url", "response_mapping:\n  status_field: status\n  accepted_values: [ok]\n"},
		{"missing status field", "base_url: https://x\nresponse_mapping:\n  accepted_values: [ok]\n"},
		{"missing accepted values", "base_url: https://x\nresponse_mapping:\n  status_field: status\n"},
		{"not yaml", "base_url: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProviderConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadProviderConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provider.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://x\nresponse_mapping:\n  status_field: status\n  accepted_values: [ok]\n"), 0o600))

	cfg, err := LoadProviderConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://x", cfg.BaseURL)

	_, err = LoadProviderConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestProviderOracle_Verify(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{"accepted", "match", true},
		{"accepted ignores case", "MATCH", true},
		{"rejected", "no_match", false},
		{"review counts as rejection", "manual_review", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder(http.MethodPost, "https://facematch.example.com/v1/verify",
				func(req *http.Request) (*http.Response, error) {
					assert.Equal(t, "Bearer key", req.Header.Get("Authorization"))
					var body map[string]string
					if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
						return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
					}
					assert.Equal(t, "scan", body["face_scan"])
					assert.Equal(t, "784-1995-1234567-1", body["emirates_id"])
					return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
						"result": map[string]interface{}{"status": tt.status},
					})
				})

			oracle, err := NewProviderOracle(testProviderConfig())
			require.NoError(t, err)

			ok, err := oracle.Verify(context.Background(), "scan", "784-1995-1234567-1")
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestProviderOracle_ProviderError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, "https://facematch.example.com/v1/verify",
		httpmock.NewStringResponder(http.StatusBadGateway, "upstream down"))

	oracle, err := NewProviderOracle(testProviderConfig())
	require.NoError(t, err)

	ok, err := oracle.Verify(context.Background(), "scan", "784-1995-1234567-1")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestProviderOracle_MissingStatusField(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, "https://facematch.example.com/v1/verify",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{"result": "match"}))

	oracle, err := NewProviderOracle(testProviderConfig())
	require.NoError(t, err)

	ok, err := oracle.Verify(context.Background(), "scan", "784-1995-1234567-1")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestProviderOracle_AuthTypes(t *testing.T) {
	tests := []struct {
		name     string
		authType string
		header   string
		want     string
	}{
		{"basic", "basic", "Authorization", "Basic a2V5OnNlY3JldA=="},
		{"custom header", "header", "X-API-Key", "key"},
		{"bearer by default", "", "Authorization", "Bearer key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testProviderConfig()
			cfg.AuthType = tt.authType
			cfg.APISecret = "secret"
			oracle, err := NewProviderOracle(cfg)
			require.NoError(t, err)

			req, _ := http.NewRequest(http.MethodPost, "https://facematch.example.com", nil)
			oracle.addAuth(req)
			assert.Equal(t, tt.want, req.Header.Get(tt.header))
		})
	}
}
