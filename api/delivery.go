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

func (a Api) ListDeliveryLocations(c *gin.Context) {
	locations, err := a.sanad.ListDeliveryLocations(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (a Api) CreateDeliveryLocation(c *gin.Context) {
	var req model2.DeliveryLocation
	if !bindJSON(c, &req) {
		return
	}

	location, err := a.sanad.CreateDeliveryLocation(c.Request.Context(), middleware.CallerFrom(c), req.ToDeliveryLocation())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, location)
}

func (a Api) UpdateDeliveryLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model2.DeliveryLocation
	if !bindJSON(c, &req) {
		return
	}

	location, err := a.sanad.UpdateDeliveryLocation(c.Request.Context(), middleware.CallerFrom(c), id, req.ToDeliveryLocation())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func (a Api) DeleteDeliveryLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.sanad.DeleteDeliveryLocation(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	noContent(c)
}

func (a Api) ListDeliverySchedules(c *gin.Context) {
	schedules, err := a.sanad.ListDeliverySchedules(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (a Api) CreateDeliverySchedule(c *gin.Context) {
	var req model2.DeliverySchedule
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := a.sanad.CreateDeliverySchedule(c.Request.Context(), middleware.CallerFrom(c), req.ToDeliverySchedule())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

func (a Api) UpdateDeliverySchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model2.DeliverySchedule
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := a.sanad.UpdateDeliverySchedule(c.Request.Context(), middleware.CallerFrom(c), id, req.ToDeliverySchedule())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (a Api) DeleteDeliverySchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.sanad.DeleteDeliverySchedule(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	noContent(c)
}

// CaptureSignature stores the caller's signature, replacing any earlier one.
//
// Responses:
// - 400 Bad Request: If signature_data is missing or the purpose is unknown.
// - 404 Not Found: If transaction_id names a transaction the caller does not own.
// - 201 Created: With the stored signature.
func (a Api) CaptureSignature(c *gin.Context) {
	var req model2.CaptureSignature
	if !bindJSON(c, &req) {
		return
	}

	signature, err := a.sanad.CaptureSignature(c.Request.Context(), middleware.CallerFrom(c), req.SignatureData, req.Purpose, req.TransactionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, signature)
}

func (a Api) GetSignature(c *gin.Context) {
	signature, err := a.sanad.GetSignature(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, signature)
}
