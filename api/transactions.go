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
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sanadpay/sanad/api/middleware"
	model2 "github.com/sanadpay/sanad/api/model"
)

// StartTransaction records a withdrawal, deposit or transfer together with
// its delivery locations and schedules.
//
// Responses:
// - 403 Forbidden: If the caller's account is not approved.
// - 400 Bad Request: For an invalid payload, a card the caller does not own, or an unknown recipient.
// - 201 Created: With the pending transaction.
func (a Api) StartTransaction(c *gin.Context) {
	var req model2.CreateTransaction
	if !bindJSON(c, &req) {
		return
	}

	transaction, err := a.sanad.CreateTransaction(c.Request.Context(), middleware.CallerFrom(c), req.ToTransaction())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

// CreateTransfer records a send_money or receive_money entry. The type
// defaults to send_money.
func (a Api) CreateTransfer(c *gin.Context) {
	var req model2.CreateTransaction
	if !bindJSON(c, &req) {
		return
	}

	transaction, err := a.sanad.CreateTransfer(c.Request.Context(), middleware.CallerFrom(c), req.ToTransaction())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

func (a Api) ListTransactions(c *gin.Context) {
	limit, offset, err := pageParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	transactions, err := a.sanad.ListTransactions(c.Request.Context(), middleware.CallerFrom(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (a Api) ListTransfers(c *gin.Context) {
	limit, offset, err := pageParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	transfers, err := a.sanad.ListTransfers(c.Request.Context(), middleware.CallerFrom(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transfers)
}

func (a Api) GetTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	transaction, err := a.sanad.GetTransaction(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// CancelTransaction moves a pending transaction to cancelled.
func (a Api) CancelTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	transaction, err := a.sanad.CancelTransaction(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}
