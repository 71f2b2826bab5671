// submission_document_test.go
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
	"errors"
	"net/http"
	"testing"

	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/models"
	"github.com/localnerve/easyform-api/internal/services"
	"github.com/localnerve/easyform-api/internal/testenv"
	"github.com/localnerve/easyform-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type brokenCompanyStore struct {
	database.Store
}

func (brokenCompanyStore) GetCompany(context.Context, string) (*models.Company, error) {
	return nil, errors.New("connection reset")
}

func TestLoadSubmissionDocument(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := services.LoadSubmissionDocument(ctx, store, "missing", nil)
	requireCustomError(t, err, http.StatusNotFound, types.CodeNotFound)

	form, err := services.CreateForm(ctx, store, services.NormalizeForm(map[string]interface{}{"title": "Intake"}, ""))
	require.NoError(t, err)

	submission := &models.Submission{
		CompanyID: "unknown-company",
		FormID:    form.ID,
		Answers:   models.JSONList[models.Answer]{{FieldID: "q", Value: "v"}},
		CreatedAt: services.Now(),
	}
	id, err := services.CreateSubmission(ctx, store, submission)
	require.NoError(t, err)

	doc, err := services.LoadSubmissionDocument(ctx, store, id, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, id, doc.Submission.ID)
	assert.Nil(t, doc.Company)
	require.NotNil(t, doc.Form)
	assert.Equal(t, "Intake", doc.Form.Title)
}

func TestLoadSubmissionDocumentLogsLookupFailures(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()

	id, err := services.CreateSubmission(ctx, store, &models.Submission{
		CompanyID: "C1",
		FormID:    "form_none",
		Answers:   models.JSONList[models.Answer]{{FieldID: "q", Value: "v"}},
		CreatedAt: services.Now(),
	})
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	doc, err := services.LoadSubmissionDocument(ctx, brokenCompanyStore{store}, id, zap.New(core))
	require.NoError(t, err)
	assert.Nil(t, doc.Company)
	assert.Nil(t, doc.Form)

	// A missing form is not worth a warning; a failing company lookup is
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "C1", entries[0].ContextMap()["company_id"])
}
