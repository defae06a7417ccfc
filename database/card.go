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

	"go.opentelemetry.io/otel"

	"github.com/sanadpay/sanad/model"
)

const cardColumns = `card_id, user_id, last_four, expiry, cardholder_name, payment_method_id, is_active, created_at`

func scanCard(row rowScanner) (*model.Card, error) {
	card := &model.Card{}
	err := row.Scan(&card.CardID, &card.IdentityID, &card.LastFour, &card.Expiry, &card.CardholderName,
		&card.PaymentMethodID, &card.IsActive, &card.CreatedAt)
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (d Datasource) GetCardByID(ctx context.Context, id string) (*model.Card, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching card by id")
	defer span.End()

	row := d.Conn.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM sanad.cards WHERE card_id = $1`, id)
	card, err := scanCard(row)
	if err != nil {
		return nil, wrapRowError(err, fmt.Sprintf("Card with ID '%s' not found", id), "Failed to retrieve card")
	}
	return card, nil
}

// GetCardsByIdentity lists the cards owned by identityID, newest first.
func (d Datasource) GetCardsByIdentity(ctx context.Context, identityID string) ([]model.Card, error) {
	ctx, span := otel.Tracer("sanad.database").Start(ctx, "Fetching cards by identity")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT `+cardColumns+`
		FROM sanad.cards
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, identityID)
	if err != nil {
		return nil, wrapError(err, "Failed to retrieve cards")
	}
	defer rows.Close()

	cards := []model.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, wrapError(err, "Failed to scan card")
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "Failed to iterate cards")
	}
	return cards, nil
}
