// company.go
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

package models

import "time"

// Company is a customer account that owns approved forms
type Company struct {
	ID            string           `gorm:"primaryKey;size:64" json:"_id" bson:"_id,omitempty"`
	Name          string           `gorm:"size:255;not null" json:"name" bson:"name"`
	Email         string           `gorm:"size:255;not null" json:"email" bson:"email"`
	CreatedAt     time.Time        `json:"createdAt" bson:"createdAt"`
	ApprovedForms JSONList[string] `json:"approvedForms" bson:"approvedForms"`
	Metadata      JSONObject       `json:"metadata" bson:"metadata"`
}

// TableName overrides the table name for Company
func (Company) TableName() string {
	return "companies"
}

// Address returns metadata.address as a string, or "" when absent.
func (c *Company) Address() string {
	if c == nil || c.Metadata == nil {
		return ""
	}
	if address, ok := c.Metadata["address"].(string); ok {
		return address
	}
	return ""
}

// CompanyUpdate holds the whitelisted company fields present in an update.
// A nil field was not supplied and is left untouched.
type CompanyUpdate struct {
	Name          *string
	Email         *string
	Metadata      *JSONObject
	ApprovedForms *JSONList[string]
}

// IsEmpty reports whether no updatable field was supplied
func (u CompanyUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Metadata == nil && u.ApprovedForms == nil
}

// Apply copies the supplied fields onto company
func (u CompanyUpdate) Apply(company *Company) {
	if u.Name != nil {
		company.Name = *u.Name
	}
	if u.Email != nil {
		company.Email = *u.Email
	}
	if u.Metadata != nil {
		company.Metadata = *u.Metadata
	}
	if u.ApprovedForms != nil {
		company.ApprovedForms = *u.ApprovedForms
	}
}

// HasApprovedForm reports whether formID is already in the approved set
func (c *Company) HasApprovedForm(formID string) bool {
	for _, id := range c.ApprovedForms {
		if id == formID {
			return true
		}
	}
	return false
}
