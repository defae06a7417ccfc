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
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/internal/notification"
)

// respondError writes err as {"code","message"} with the status its code
// maps to. Anything that is not an APIError is reported as internal and
// sent to the error notifier.
func respondError(c *gin.Context, err error) {
	apiErr, ok := apierror.As(err)
	if !ok {
		apiErr = apierror.NewAPIError(apierror.ErrInternalServer, "internal server error", err)
	}
	if apiErr.Code == apierror.ErrInternalServer {
		logrus.WithField("path", c.FullPath()).Error(err)
		notification.NotifyError(err)
	}
	c.JSON(apierror.MapErrorToHTTPStatus(apiErr), gin.H{"code": apiErr.Code, "message": apiErr.Message})
}

// bindJSON decodes the request body into dst, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid request body", err))
		return false
	}
	return true
}

// validated answers 400 when err is a validation failure.
func validated(c *gin.Context, err error) bool {
	if err != nil {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil))
		return false
	}
	return true
}

// pageParams reads limit and offset from the query string. Missing values
// are left at zero for the core to default.
func pageParams(c *gin.Context) (int, int, error) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	offset, err := intQuery(c, "offset")
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInvalidInput, key+" must be an integer", nil)
	}
	return value, nil
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if id == "" {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, "id is required. pass id in the route /:id", nil))
		return "", false
	}
	return id, true
}
