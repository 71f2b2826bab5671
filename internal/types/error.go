// error.go
//
// A Go service for the easyform form-building API
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of easyform-api.
// easyform-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// easyform-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with easyform-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes rendered in the "error" field of failure responses
const (
	CodeMissingFields    = "missing_fields"
	CodeMissingID        = "missing_id"
	CodeInvalidBody      = "invalid_body"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeStore            = "db_error"
	CodePDF              = "pdf_error"
	CodeInternal         = "internal_error"
)

// CustomError carries an HTTP status, an error code and an optional cause.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Err     error  `json:"-"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// ValidationError reports a missing or empty required field (400).
func ValidationError(code, message string) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Type: code, Message: message}
}

// NotFoundError reports that no document matched (404).
func NotFoundError(message string) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Type: CodeNotFound, Message: message}
}

// ConflictError reports an identifier collision on create (409).
func ConflictError(message string) *CustomError {
	return &CustomError{Code: http.StatusConflict, Type: CodeConflict, Message: message}
}

// MethodNotAllowedError reports an unsupported HTTP verb (405).
func MethodNotAllowedError(method string) *CustomError {
	return &CustomError{
		Code:    http.StatusMethodNotAllowed,
		Type:    CodeMethodNotAllowed,
		Message: fmt.Sprintf("method %s not allowed", method),
	}
}

// StoreError wraps any data store failure (500). The cause message is exposed.
func StoreError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return &CustomError{Code: http.StatusInternalServerError, Type: CodeStore, Message: err.Error(), Err: err}
}

// AsCustomError extracts a CustomError from err, if there is one.
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
