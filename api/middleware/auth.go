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

package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sanadpay/sanad/internal/apierror"
	"github.com/sanadpay/sanad/model"
)

const (
	AuthorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
	callerKey           = "caller"
)

// Authenticator resolves a bearer token to a caller.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.Caller, error)
}

// Authenticate returns a middleware that requires a bearer access token and
// stores the resolved caller on the context. Role and status come from
// storage on every request, so a block or role change takes effect at once.
//
// Responses:
// - 401 Unauthorized: When the token is missing, invalid, expired, or the account is not verified.
// - 500 Internal Server Error: When the caller cannot be resolved.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			abortWithError(c, apierror.NewAPIError(apierror.ErrUnauthenticated, "Authentication required. Use Authorization: Bearer <token>", nil))
			return
		}

		caller, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// CallerFrom returns the caller stored by Authenticate, or the unauthenticated
// zero caller.
func CallerFrom(c *gin.Context) model.Caller {
	value, ok := c.Get(callerKey)
	if !ok {
		return model.Caller{}
	}
	caller, _ := value.(model.Caller)
	return caller
}

func extractBearer(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader(AuthorizationHeader))
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

func abortWithError(c *gin.Context, err error) {
	apiErr, ok := apierror.As(err)
	if !ok {
		apiErr = apierror.NewAPIError(apierror.ErrInternalServer, "failed to authenticate request", err)
	}
	c.AbortWithStatusJSON(apierror.MapErrorToHTTPStatus(apiErr), gin.H{"code": apiErr.Code, "message": apiErr.Message})
}
