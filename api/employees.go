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

func (a Api) CreateEmployee(c *gin.Context) {
	var req model2.CreateEmployee
	if !bindJSON(c, &req) {
		return
	}

	employee, err := a.sanad.CreateEmployee(c.Request.Context(), middleware.CallerFrom(c), req.UserID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (a Api) UpdateEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model2.UpdateEmployee
	if !bindJSON(c, &req) {
		return
	}

	employee, err := a.sanad.UpdateEmployee(c.Request.Context(), middleware.CallerFrom(c), id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (a Api) ListEmployees(c *gin.Context) {
	employees, err := a.sanad.ListEmployees(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (a Api) DeleteEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.sanad.DeleteEmployee(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	noContent(c)
}
