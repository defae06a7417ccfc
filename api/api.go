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
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/sanadpay/sanad"
	"github.com/sanadpay/sanad/api/middleware"
	"github.com/sanadpay/sanad/config"
)

type Api struct {
	sanad  *sanad.Sanad
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/login", a.Login)
	router.POST("/token/refresh", a.RefreshToken)
	router.POST("/register", a.Register)

	authed := router.Group("/", middleware.Authenticate(a.sanad))

	authed.GET("/users", a.ListUsers)
	authed.POST("/users/:id/change-status", a.ChangeUserStatus)

	authed.GET("/cards", a.ListCards)
	authed.GET("/cards/:id", a.GetCard)
	authed.POST("/cards", a.CreateCard)

	authed.POST("/transactions/start", a.StartTransaction)
	authed.GET("/transactions", a.ListTransactions)
	authed.GET("/transactions/:id", a.GetTransaction)
	authed.POST("/transactions/:id/cancel", a.CancelTransaction)

	authed.POST("/transfers", a.CreateTransfer)
	authed.GET("/transfers", a.ListTransfers)

	authed.GET("/delivery-locations", a.ListDeliveryLocations)
	authed.POST("/delivery-locations", a.CreateDeliveryLocation)
	authed.PUT("/delivery-locations/:id", a.UpdateDeliveryLocation)
	authed.DELETE("/delivery-locations/:id", a.DeleteDeliveryLocation)

	authed.GET("/delivery-schedules", a.ListDeliverySchedules)
	authed.POST("/delivery-schedules", a.CreateDeliverySchedule)
	authed.PUT("/delivery-schedules/:id", a.UpdateDeliverySchedule)
	authed.DELETE("/delivery-schedules/:id", a.DeleteDeliverySchedule)

	authed.POST("/employees/create", a.CreateEmployee)
	authed.PUT("/employees/update/:id", a.UpdateEmployee)
	authed.GET("/employees/all", a.ListEmployees)
	authed.DELETE("/employees/delete/:id", a.DeleteEmployee)

	authed.POST("/delivery/verify-face-id", a.VerifyFaceID)
	authed.POST("/delivery/signature", a.CaptureSignature)
	authed.GET("/delivery/signature", a.GetSignature)

	return a.router
}

func NewAPI(s *sanad.Sanad) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()
	r.Use(otelgin.Middleware(conf.ProjectName))
	r.Use(middleware.RateLimitMiddleware(conf))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, "server running...")
	})

	return &Api{sanad: s, router: r}
}
