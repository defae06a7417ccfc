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

package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ErrorCode string

const (
	ErrInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrAccountInactive    ErrorCode = "ACCOUNT_INACTIVE"
	ErrUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
)

// Kind groups error codes into the failure classes callers branch on.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

type APIError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details interface{}) APIError {
	if code == ErrInternalServer && details != nil {
		logrus.Error(details)
	}
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// As extracts an APIError from err, following wrapped errors.
func As(err error) (APIError, bool) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return APIError{}, false
}

// KindOf reports the failure class of err. Errors that are not APIErrors are internal.
func KindOf(err error) Kind {
	apiErr, ok := As(err)
	if !ok {
		return KindInternal
	}
	switch apiErr.Code {
	case ErrInvalidCredentials, ErrAccountInactive, ErrUnauthenticated:
		return KindAuthentication
	case ErrForbidden:
		return KindAuthorization
	case ErrInvalidInput:
		return KindValidation
	case ErrNotFound:
		return KindNotFound
	default:
		return KindInternal
	}
}

// HasCode reports whether err is an APIError carrying code.
func HasCode(err error, code ErrorCode) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Code == code
}

func MapErrorToHTTPStatus(err error) int {
	if apiErr, ok := As(err); ok {
		switch apiErr.Code {
		case ErrInvalidCredentials, ErrAccountInactive, ErrUnauthenticated:
			return http.StatusUnauthorized
		case ErrForbidden:
			return http.StatusForbidden
		case ErrNotFound:
			return http.StatusNotFound
		case ErrInvalidInput:
			return http.StatusBadRequest
		case ErrInternalServer:
			return http.StatusInternalServerError
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
