// submissions_test.go
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

package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/localnerve/easyform-api/internal/models"
	"github.com/localnerve/easyform-api/internal/services"
	"github.com/localnerve/easyform-api/internal/testenv"
	"github.com/localnerve/easyform-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmissionValidation(t *testing.T) {
	bodies := []map[string]interface{}{
		{},
		{"companyId": "C1", "formId": "F1"},
		{"companyId": "C1", "formId": "F1", "answers": []interface{}{}},
		{"companyId": "C1", "formId": "F1", "answers": "not an array"},
		{"formId": "F1", "answers": []interface{}{map[string]interface{}{"fieldId": "q"}}},
		{"companyId": "C1", "answers": []interface{}{map[string]interface{}{"fieldId": "q"}}},
	}
	for _, body := range bodies {
		_, err := services.NewSubmission(body)
		requireCustomError(t, err, http.StatusBadRequest, types.CodeMissingFields)
	}
}

func TestSubmissionRoundTripPreservesOrder(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()

	submission, err := services.NewSubmission(map[string]interface{}{
		"companyId": "C1",
		"formId":    "F1",
		"answers": []interface{}{
			map[string]interface{}{"fieldId": "z", "label": "Last name", "type": "text", "value": "Doe"},
			map[string]interface{}{"fieldId": "a", "label": "Agree", "type": "checkbox", "value": true},
			map[string]interface{}{"fieldId": "m", "label": "Count", "type": "number", "value": 3.0},
		},
	})
	require.NoError(t, err)

	id, err := services.CreateSubmission(ctx, store, submission)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	fetched, err := services.GetSubmission(ctx, store, id)
	require.NoError(t, err)
	assert.Equal(t, "C1", fetched.CompanyID)
	assert.Equal(t, models.JSONList[models.Answer]{
		{FieldID: "z", Label: "Last name", Type: "text", Value: "Doe"},
		{FieldID: "a", Label: "Agree", Type: "checkbox", Value: true},
		{FieldID: "m", Label: "Count", Type: "number", Value: 3.0},
	}, fetched.Answers)

	_, err = services.GetSubmission(ctx, store, "missing")
	requireCustomError(t, err, http.StatusNotFound, types.CodeNotFound)
}

func TestListSubmissionsFilters(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()

	answers := []interface{}{map[string]interface{}{"fieldId": "q", "value": "v"}}
	for _, ref := range [][2]string{{"C1", "F1"}, {"C1", "F2"}, {"C2", "F1"}} {
		submission, err := services.NewSubmission(map[string]interface{}{
			"companyId": ref[0], "formId": ref[1], "answers": answers,
		})
		require.NoError(t, err)
		_, err = services.CreateSubmission(ctx, store, submission)
		require.NoError(t, err)
	}

	all, err := services.ListSubmissions(ctx, store, models.SubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byForm, err := services.ListSubmissions(ctx, store, models.SubmissionFilter{FormID: "F1"})
	require.NoError(t, err)
	assert.Len(t, byForm, 2)

	both, err := services.ListSubmissions(ctx, store, models.SubmissionFilter{CompanyID: "C2", FormID: "F1"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "C2", both[0].CompanyID)
}
