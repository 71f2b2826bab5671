// form.go
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

// Form is a form template. Forms start unapproved and are claimed by a
// company through the approval flow.
type Form struct {
	ID          string                           `gorm:"primaryKey;size:191" json:"_id" bson:"_id"`
	Title       string                           `gorm:"size:255;not null" json:"title" bson:"title"`
	Description string                           `gorm:"type:text" json:"description" bson:"description"`
	Category    string                           `gorm:"size:255" json:"category" bson:"category"`
	Active      bool                             `gorm:"not null" json:"active" bson:"active"`
	Fields      JSONList[map[string]interface{}] `json:"fields" bson:"fields"`
	Approved    bool                             `gorm:"not null" json:"approved" bson:"approved"`
	CompanyID   *string                          `gorm:"size:64;index" json:"companyId" bson:"companyId"`
	ApprovedAt  *time.Time                       `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	CreatedAt   time.Time                        `gorm:"index" json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time                        `json:"updatedAt" bson:"updatedAt"`
}

// TableName overrides the table name for Form
func (Form) TableName() string {
	return "forms"
}

// FormUpdate holds the replaceable form fields of an update
type FormUpdate struct {
	Title       string
	Description string
	Category    string
	Active      bool
	Fields      JSONList[map[string]interface{}]
	UpdatedAt   time.Time
}

// Apply copies the update onto form
func (u FormUpdate) Apply(form *Form) {
	form.Title = u.Title
	form.Description = u.Description
	form.Category = u.Category
	form.Active = u.Active
	form.Fields = u.Fields
	form.UpdatedAt = u.UpdatedAt
}
