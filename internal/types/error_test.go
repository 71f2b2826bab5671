// error_test.go
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

package types_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/localnerve/easyform-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := types.StoreError(fmt.Errorf("insert company: %w", cause))

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, types.CodeStore, err.Type)
	assert.Equal(t, "insert company: connection refused", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestStoreErrorKeepsCustomErrors(t *testing.T) {
	notFound := types.NotFoundError("form not found")
	wrapped := fmt.Errorf("approve: %w", notFound)

	assert.Same(t, notFound, types.StoreError(wrapped))
}

func TestAsCustomError(t *testing.T) {
	ce, ok := types.AsCustomError(fmt.Errorf("outer: %w", types.ConflictError("exists")))
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, ce.Code)
	assert.Equal(t, types.CodeConflict, ce.Type)

	_, ok = types.AsCustomError(errors.New("plain"))
	assert.False(t, ok)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, types.ValidationError(types.CodeMissingFields, "x").Code)
	assert.Equal(t, http.StatusNotFound, types.NotFoundError("x").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, types.MethodNotAllowedError("DELETE").Code)
	assert.Contains(t, types.MethodNotAllowedError("DELETE").Message, "DELETE")
}
