// submissions.go
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

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/models"
	"github.com/localnerve/easyform-api/internal/types"
)

// SubmissionListLimit caps the submission list
const SubmissionListLimit = 200

// NewSubmission validates a raw request body and builds the submission to insert.
// companyId, formId and a non-empty answers array are required; answers that
// are not objects are dropped.
func NewSubmission(body map[string]interface{}) (*models.Submission, error) {
	companyID := trimmed(body["companyId"])
	formID := trimmed(body["formId"])
	answers := coerceAnswers(body["answers"])

	if companyID == "" || formID == "" || len(answers) == 0 {
		return nil, types.ValidationError(types.CodeMissingFields,
			"companyId, formId and a non-empty answers array are required")
	}

	return &models.Submission{
		CompanyID: companyID,
		FormID:    formID,
		Answers:   answers,
		CreatedAt: Now(),
	}, nil
}

// CreateSubmission persists submission and returns its generated identifier
func CreateSubmission(ctx context.Context, store database.Store, submission *models.Submission) (string, error) {
	if err := store.CreateSubmission(ctx, submission); err != nil {
		return "", types.StoreError(err)
	}
	return submission.ID, nil
}

// GetSubmission fetches one submission
func GetSubmission(ctx context.Context, store database.Store, id string) (*models.Submission, error) {
	submission, err := store.GetSubmission(ctx, id)
	if err != nil {
		return nil, translate(err, "submission not found")
	}
	return submission, nil
}

// ListSubmissions returns up to SubmissionListLimit submissions, newest first
func ListSubmissions(ctx context.Context, store database.Store, filter models.SubmissionFilter) ([]models.Submission, error) {
	submissions, err := store.ListSubmissions(ctx, filter, SubmissionListLimit)
	if err != nil {
		return nil, types.StoreError(err)
	}
	return submissions, nil
}

func coerceAnswers(value interface{}) models.JSONList[models.Answer] {
	list, ok := value.([]interface{})
	if !ok {
		return nil
	}

	answers := make(models.JSONList[models.Answer], 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		answers = append(answers, models.Answer{
			FieldID: text(entry["fieldId"]),
			Label:   text(entry["label"]),
			Type:    text(entry["type"]),
			Value:   entry["value"],
		})
	}
	return answers
}

// text renders scalar identifiers; JSON numbers arrive as float64
func text(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	}
	return fmt.Sprint(value)
}
