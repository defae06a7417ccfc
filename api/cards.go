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
	"github.com/sanadpay/sanad/internal/apierror"
)

// CreateCard is always refused; cards arrive through the payment provider.
func (a Api) CreateCard(c *gin.Context) {
	_, err := a.sanad.CreateCard(c.Request.Context(), middleware.CallerFrom(c))
	if err == nil {
		err = apierror.NewAPIError(apierror.ErrInternalServer, "card creation unexpectedly succeeded", nil)
	}
	respondError(c, err)
}

func (a Api) ListCards(c *gin.Context) {
	cards, err := a.sanad.ListCards(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (a Api) GetCard(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	card, err := a.sanad.GetCard(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}
