// gorm_store_test.go
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

package database_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/models"
	"github.com/localnerve/easyform-api/internal/testenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompany(name string) *models.Company {
	return &models.Company{
		Name:          name,
		Email:         strings.ToLower(name) + "@example.com",
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
		ApprovedForms: models.JSONList[string]{},
		Metadata:      models.JSONObject{"address": "1 Main St"},
	}
}

func TestGormStoreCompanyLookupAcceptsNativeAndLiteralIDs(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()

	generated := newCompany("Acme")
	require.NoError(t, store.CreateCompany(ctx, generated))
	require.NotEmpty(t, generated.ID)

	found, err := store.GetCompany(ctx, strings.ToUpper(generated.ID))
	require.NoError(t, err)
	assert.Equal(t, generated.ID, found.ID)
	assert.Equal(t, "1 Main St", found.Address())

	literal := newCompany("Literal")
	literal.ID = "company-literal"
	require.NoError(t, store.CreateCompany(ctx, literal))

	found, err = store.GetCompany(ctx, "company-literal")
	require.NoError(t, err)
	assert.Equal(t, "Literal", found.Name)

	_, err = store.GetCompany(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestGormStoreUpdateCompanyKeepsOtherFields(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()

	company := newCompany("Before")
	require.NoError(t, store.CreateCompany(ctx, company))

	name := "Acme"
	updated, err := store.UpdateCompany(ctx, company.ID, models.CompanyUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)

	fetched, err := store.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", fetched.Name)
	assert.Equal(t, company.Email, fetched.Email)
	assert.Equal(t, "1 Main St", fetched.Address())

	_, err = store.UpdateCompany(ctx, "missing", models.CompanyUpdate{Name: &name})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestGormStoreAddApprovedFormIsIdempotent(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()

	company := newCompany("C1")
	require.NoError(t, store.CreateCompany(ctx, company))

	require.NoError(t, store.AddApprovedForm(ctx, company.ID, "F1"))
	require.NoError(t, store.AddApprovedForm(ctx, company.ID, "F1"))

	fetched, err := store.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JSONList[string]{"F1"}, fetched.ApprovedForms)

	assert.NoError(t, store.AddApprovedForm(ctx, "no-such-company", "F1"))
}

func TestGormStoreFormLifecycle(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	older := &models.Form{ID: "form_older", Title: "Older", Active: true, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour)}
	newer := &models.Form{ID: "form_newer", Title: "Newer", Active: false, CreatedAt: now, UpdatedAt: now,
		Fields: models.JSONList[map[string]interface{}]{{"id": "name", "type": "text"}}}
	require.NoError(t, store.CreateForm(ctx, older))
	require.NoError(t, store.CreateForm(ctx, newer))

	assert.ErrorIs(t, store.CreateForm(ctx, &models.Form{ID: "form_older", Title: "Again"}), database.ErrConflict)

	forms, err := store.ListForms(ctx, 200)
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, "form_newer", forms[0].ID)
	assert.False(t, forms[0].Active)
	assert.Equal(t, "text", forms[0].Fields[0]["type"])

	updated, err := store.UpdateForm(ctx, "form_older", models.FormUpdate{Title: "Renamed", Active: true, UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "form_older", updated.ID)

	_, err = store.UpdateForm(ctx, "form_missing", models.FormUpdate{Title: "x"})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestGormStoreApproveForm(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, store.CreateForm(ctx, &models.Form{ID: "F1", Title: "F1", Active: true, CreatedAt: now, UpdatedAt: now}))

	form, err := store.ApproveForm(ctx, "F1", "C1", now)
	require.NoError(t, err)
	assert.True(t, form.Approved)
	require.NotNil(t, form.CompanyID)
	assert.Equal(t, "C1", *form.CompanyID)

	fetched, err := store.GetForm(ctx, "F1")
	require.NoError(t, err)
	assert.True(t, fetched.Approved)
	assert.Equal(t, "C1", *fetched.CompanyID)
	require.NotNil(t, fetched.ApprovedAt)

	_, err = store.ApproveForm(ctx, "missing", "C1", now)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestGormStoreSubmissions(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	answers := models.JSONList[models.Answer]{
		{FieldID: "b", Label: "B", Type: "text", Value: "second"},
		{FieldID: "a", Label: "A", Type: "checkbox", Value: true},
	}
	first := &models.Submission{CompanyID: "C1", FormID: "F1", Answers: answers, CreatedAt: now.Add(-time.Minute)}
	second := &models.Submission{CompanyID: "C1", FormID: "F2", Answers: answers, CreatedAt: now}
	third := &models.Submission{CompanyID: "C2", FormID: "F1", Answers: answers, CreatedAt: now}
	for _, s := range []*models.Submission{first, second, third} {
		require.NoError(t, store.CreateSubmission(ctx, s))
	}

	fetched, err := store.GetSubmission(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Answers, 2)
	assert.Equal(t, "b", fetched.Answers[0].FieldID)
	assert.Equal(t, true, fetched.Answers[1].Value)

	byCompany, err := store.ListSubmissions(ctx, models.SubmissionFilter{CompanyID: "C1"}, 200)
	require.NoError(t, err)
	require.Len(t, byCompany, 2)
	assert.Equal(t, second.ID, byCompany[0].ID)

	both, err := store.ListSubmissions(ctx, models.SubmissionFilter{CompanyID: "C1", FormID: "F1"}, 200)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, first.ID, both[0].ID)

	all, err := store.ListSubmissions(ctx, models.SubmissionFilter{}, 2)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
