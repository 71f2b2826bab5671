// form_ids.go
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
	"encoding/json"
	"errors"
)

// FormIDs is a company's list of approved form identifiers. It decodes from
// a single id or an array of ids and keeps the first occurrence of each.
type FormIDs []string

var errFormIDs = errors.New("approvedForms must be a form id or an array of form ids")

// ParseFormIDs converts a decoded JSON value. Null is an empty list.
func ParseFormIDs(value interface{}) (FormIDs, error) {
	switch v := value.(type) {
	case nil:
		return FormIDs{}, nil
	case string:
		return FormIDs{v}, nil
	case []interface{}:
		ids := make(FormIDs, 0, len(v))
		for _, item := range v {
			id, ok := item.(string)
			if !ok {
				return nil, errFormIDs
			}
			ids = append(ids, id)
		}
		return ids.Unique(), nil
	case []string:
		return FormIDs(v).Unique(), nil
	}
	return nil, errFormIDs
}

// UnmarshalJSON accepts the same shapes as ParseFormIDs
func (f *FormIDs) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ids, err := ParseFormIDs(raw)
	if err != nil {
		return err
	}
	*f = ids
	return nil
}

// Unique drops repeated ids, keeping order. The result is never nil.
func (f FormIDs) Unique() FormIDs {
	seen := make(map[string]struct{}, len(f))
	out := make(FormIDs, 0, len(f))
	for _, id := range f {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
