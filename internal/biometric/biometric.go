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

// Package biometric holds the default face-match oracle used when no
// external liveness provider is configured.
package biometric

import (
	"context"
	"strings"
)

// StubOracle accepts any non-empty face scan. It stands in for a real
// face-match/liveness provider.
type StubOracle struct{}

func NewStubOracle() *StubOracle {
	return &StubOracle{}
}

// Verify reports whether faceScan is acceptable for emiratesID.
func (o *StubOracle) Verify(ctx context.Context, faceScan, emiratesID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return strings.TrimSpace(faceScan) != "" && strings.TrimSpace(emiratesID) != "", nil
}
