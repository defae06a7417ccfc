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

	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/model"
)

// ListCards returns the cards on file for the caller only.
func (s *Sanad) ListCards(ctx context.Context, caller model.Caller) ([]model.Card, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	return s.datasource.GetCardsByIdentity(ctx, caller.ID())
}

// GetCard returns one of the caller's cards. Cards owned by anyone else are reported as not found.
func (s *Sanad) GetCard(ctx context.Context, caller model.Caller, cardID string) (*model.Card, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}

	card, err := s.datasource.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if !card.OwnedBy(caller.ID()) {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, "card not found", nil)
	}
	return card, nil
}

// CreateCard always fails: cards are provisioned by the payment provider.
func (s *Sanad) CreateCard(_ context.Context, _ model.Caller) (*model.Card, error) {
	return nil, apierror.NewAPIError(apierror.ErrForbidden, "not permitted, use external provisioning", nil)
}
