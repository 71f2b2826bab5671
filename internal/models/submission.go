// submission.go
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

// Answer is one field/value pair of a submission
type Answer struct {
	FieldID string      `json:"fieldId" bson:"fieldId"`
	Label   string      `json:"label" bson:"label"`
	Type    string      `json:"type" bson:"type"`
	Value   interface{} `json:"value" bson:"value"`
}

// Submission is an immutable set of answers to a form on behalf of a company.
// CompanyID and FormID are free-text references and are never validated.
type Submission struct {
	ID        string           `gorm:"primaryKey;size:64" json:"_id" bson:"_id,omitempty"`
	CompanyID string           `gorm:"size:191;not null;index" json:"companyId" bson:"companyId"`
	FormID    string           `gorm:"size:191;not null;index" json:"formId" bson:"formId"`
	Answers   JSONList[Answer] `json:"answers" bson:"answers"`
	CreatedAt time.Time        `gorm:"index" json:"createdAt" bson:"createdAt"`
}

// TableName overrides the table name for Submission
func (Submission) TableName() string {
	return "submissions"
}

// SubmissionFilter holds the optional exact-match list filters
type SubmissionFilter struct {
	CompanyID string
	FormID    string
}
