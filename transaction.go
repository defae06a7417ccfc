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
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/model"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var transferTypes = []model.TransactionType{model.TxnSendMoney, model.TxnReceiveMoney}

// CreateTransaction records a new ledger entry owned by the caller, with
// its delivery locations and schedules, or nothing at all.
//
// The caller must be approved before the payload is looked at. The card
// must exist and belong to the caller. Transfers need a recipient that
// resolves to an existing identity. The entry is stored as pending.
//
// Parameters:
// - ctx context.Context: The context for the operation.
// - caller model.Caller: The initiating identity.
// - transaction model.Transaction: The requested entry and its delivery sub-records.
//
// Returns:
// - *model.Transaction: The stored entry.
// - error: FORBIDDEN, INVALID_INPUT, or a storage error.
func (s *Sanad) CreateTransaction(ctx context.Context, caller model.Caller, transaction model.Transaction) (*model.Transaction, error) {
	ctx, span := otel.Tracer("sanad.transaction").Start(ctx, "CreateTransaction")
	defer span.End()

	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	return s.createTransaction(ctx, caller, transaction)
}

// CreateTransfer is CreateTransaction restricted to send_money and
// receive_money. The type defaults to send_money.
func (s *Sanad) CreateTransfer(ctx context.Context, caller model.Caller, transaction model.Transaction) (*model.Transaction, error) {
	ctx, span := otel.Tracer("sanad.transaction").Start(ctx, "CreateTransfer")
	defer span.End()

	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	if transaction.Type == "" {
		transaction.Type = model.TxnSendMoney
	}
	if !transaction.Type.IsTransfer() {
		return nil, invalidInput("transfer type must be send_money or receive_money", map[string]model.TransactionType{"transaction_type": transaction.Type})
	}
	return s.createTransaction(ctx, caller, transaction)
}

func (s *Sanad) createTransaction(ctx context.Context, caller model.Caller, transaction model.Transaction) (*model.Transaction, error) {
	transaction.ApplyDefaults()
	// A counterpart only exists for transfers; anything else drops it.
	if !transaction.Type.IsTransfer() || (transaction.RecipientID != nil && strings.TrimSpace(*transaction.RecipientID) == "") {
		transaction.RecipientID = nil
	}
	if err := transaction.Validate(); err != nil {
		return nil, invalidInput(err.Error(), err)
	}

	if err := s.checkCardOwnership(ctx, caller, *transaction.CardID); err != nil {
		return nil, err
	}

	if transaction.Type.IsTransfer() {
		if transaction.RecipientID == nil {
			return nil, invalidInput("recipient_id is required for send_money and receive_money", nil)
		}
		if err := s.checkCounterpart(ctx, *transaction.RecipientID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	transaction.TransactionID = model.GenerateUUIDWithSuffix(model.TransactionPrefix)
	transaction.IdentityID = caller.ID()
	transaction.Status = model.TxnStatusPending
	transaction.Timestamp = now
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	for i := range transaction.DeliveryLocations {
		location := &transaction.DeliveryLocations[i]
		location.LocationID = model.GenerateUUIDWithSuffix(model.DeliveryLocationPrefix)
		location.TransactionID = transaction.TransactionID
		location.CreatedAt = now
	}
	for i := range transaction.DeliverySchedules {
		schedule := &transaction.DeliverySchedules[i]
		schedule.ScheduleID = model.GenerateUUIDWithSuffix(model.DeliverySchedulePrefix)
		schedule.TransactionID = transaction.TransactionID
		schedule.CreatedAt = now
		schedule.Normalize()
	}

	stored, err := s.datasource.RecordTransaction(ctx, &transaction)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": stored.TransactionID,
		"type":           stored.Type,
		"locations":      len(stored.DeliveryLocations),
		"schedules":      len(stored.DeliverySchedules),
	}).Info("transaction recorded")
	return stored, nil
}

func (s *Sanad) checkCardOwnership(ctx context.Context, caller model.Caller, cardID string) error {
	card, err := s.datasource.GetCardByID(ctx, cardID)
	if err != nil && !apierror.HasCode(err, apierror.ErrNotFound) {
		return err
	}
	if err != nil || !card.OwnedBy(caller.ID()) {
		return invalidInput("instrument does not belong to caller", map[string]string{"card_id": cardID})
	}
	return nil
}

func (s *Sanad) checkCounterpart(ctx context.Context, recipientID string) error {
	_, err := s.datasource.GetIdentityByID(ctx, recipientID)
	if err == nil {
		return nil
	}
	if apierror.HasCode(err, apierror.ErrNotFound) {
		return invalidInput("counterpart not found", map[string]string{"recipient_id": recipientID})
	}
	return err
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListTransactions returns the caller's own entries of every type, newest first.
func (s *Sanad) ListTransactions(ctx context.Context, caller model.Caller, limit, offset int) ([]model.Transaction, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset)
	return s.datasource.GetTransactionsByIdentity(ctx, caller.ID(), nil, limit, offset)
}

// ListTransfers returns the caller's own send_money and receive_money entries.
func (s *Sanad) ListTransfers(ctx context.Context, caller model.Caller, limit, offset int) ([]model.Transaction, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset)
	return s.datasource.GetTransactionsByIdentity(ctx, caller.ID(), transferTypes, limit, offset)
}

// GetTransaction returns one of the caller's entries with its delivery sub-records.
func (s *Sanad) GetTransaction(ctx context.Context, caller model.Caller, transactionID string) (*model.Transaction, error) {
	if err := requireApproved(caller); err != nil {
		return nil, err
	}
	return s.ownedTransaction(ctx, caller, transactionID)
}

// CancelTransaction moves a pending entry to cancelled. Any other status is final.
func (s *Sanad) CancelTransaction(ctx context.Context, caller model.Caller, transactionID string) (*model.Transaction, error) {
	ctx, span := otel.Tracer("sanad.transaction").Start(ctx, "CancelTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", transactionID))

	if err := requireApproved(caller); err != nil {
		return nil, err
	}

	transaction, err := s.ownedTransaction(ctx, caller, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.Status != model.TxnStatusPending {
		return nil, invalidInput("only pending transactions can be cancelled", map[string]model.TransactionStatus{"status": transaction.Status})
	}

	if err := s.datasource.UpdateTransactionStatus(ctx, transaction.TransactionID, model.TxnStatusPending, model.TxnStatusCancelled); err != nil {
		return nil, err
	}

	transaction.Status = model.TxnStatusCancelled
	transaction.UpdatedAt = s.now()
	return transaction, nil
}

// ownedTransaction loads an entry and hides it from anyone but its owner.
func (s *Sanad) ownedTransaction(ctx context.Context, caller model.Caller, transactionID string) (*model.Transaction, error) {
	transaction, err := s.datasource.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.IdentityID != caller.ID() {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, "transaction not found", nil)
	}
	return transaction, nil
}
