// embed.go
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

package data

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed.json
var seedJSON []byte

// Seed is sample data for a development store: raw request bodies, as a
// client would post them.
type Seed struct {
	Companies   []map[string]interface{} `json:"companies"`
	Forms       []map[string]interface{} `json:"forms"`
	Submissions []map[string]interface{} `json:"submissions"`
	// Approvals pair a form id with the index of a seeded company
	Approvals []SeedApproval `json:"approvals"`
}

// SeedApproval approves FormID for the company seeded at CompanyIndex
type SeedApproval struct {
	FormID       string `json:"formId"`
	CompanyIndex int    `json:"companyIndex"`
}

// LoadSeed parses the embedded sample data
func LoadSeed() (*Seed, error) {
	var seed Seed
	if err := json.Unmarshal(seedJSON, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed.json: %w", err)
	}
	return &seed, nil
}
