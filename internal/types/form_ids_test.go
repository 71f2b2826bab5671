// form_ids_test.go
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
	"encoding/json"
	"testing"

	"github.com/localnerve/easyform-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormIDsUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.FormIDs
	}{
		{"array", `["a","b"]`, types.FormIDs{"a", "b"}},
		{"single", `"a"`, types.FormIDs{"a"}},
		{"null", `null`, types.FormIDs{}},
		{"empty array", `[]`, types.FormIDs{}},
		{"repeats", `["a","b","a"]`, types.FormIDs{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids types.FormIDs
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ids))
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFormIDsRejectsNonStrings(t *testing.T) {
	var ids types.FormIDs
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &ids))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"a"}`), &ids))

	_, err := types.ParseFormIDs(true)
	assert.Error(t, err)
}

func TestParseFormIDs(t *testing.T) {
	ids, err := types.ParseFormIDs("form_x")
	require.NoError(t, err)
	assert.Equal(t, types.FormIDs{"form_x"}, ids)

	ids, err = types.ParseFormIDs([]interface{}{"F1", "F1", "F2"})
	require.NoError(t, err)
	assert.Equal(t, types.FormIDs{"F1", "F2"}, ids)

	ids, err = types.ParseFormIDs(nil)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}
