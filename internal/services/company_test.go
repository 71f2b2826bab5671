// company_test.go
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

func TestNewCompanyRequiresNameAndEmail(t *testing.T) {
	for _, in := range []services.CompanyInput{
		{},
		{Name: "Acme"},
		{Email: "a@example.com"},
		{Name: "   ", Email: "a@example.com"},
	} {
		_, err := services.NewCompany(in)
		requireCustomError(t, err, http.StatusBadRequest, types.CodeMissingFields)
	}
}

func TestNewCompanyDefaults(t *testing.T) {
	company, err := services.NewCompany(services.CompanyInput{
		Name:          "Acme",
		Email:         "a@example.com",
		ApprovedForms: types.FormIDs{"F1", "F2", "F1"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.JSONList[string]{"F1", "F2"}, company.ApprovedForms)
	assert.NotNil(t, company.Metadata)
	assert.False(t, company.CreatedAt.IsZero())

	company, err = services.NewCompany(services.CompanyInput{Name: "Acme", Email: "a@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, company.ApprovedForms)
	assert.Empty(t, company.ApprovedForms)
}

func TestParseCompanyUpdateWhitelist(t *testing.T) {
	_, err := services.ParseCompanyUpdate(map[string]interface{}{"foo": "bar", "createdAt": "x"})
	requireCustomError(t, err, http.StatusBadRequest, types.CodeMissingFields)

	update, err := services.ParseCompanyUpdate(map[string]interface{}{"name": "Acme", "foo": "bar"})
	require.NoError(t, err)
	require.NotNil(t, update.Name)
	assert.Equal(t, "Acme", *update.Name)
	assert.Nil(t, update.Email)
	assert.Nil(t, update.Metadata)

	update, err = services.ParseCompanyUpdate(map[string]interface{}{
		"approvedForms": []interface{}{"F1", "F1", "F2"},
		"metadata":      map[string]interface{}{"address": "2 Side St"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.JSONList[string]{"F1", "F2"}, *update.ApprovedForms)
	assert.Equal(t, "2 Side St", (*update.Metadata)["address"])

	_, err = services.ParseCompanyUpdate(map[string]interface{}{"name": 12.0})
	requireCustomError(t, err, http.StatusBadRequest, types.CodeInvalidBody)
}

func TestParseCompanyUpdateApprovedFormsShapes(t *testing.T) {
	update, err := services.ParseCompanyUpdate(map[string]interface{}{"approvedForms": "form_y"})
	require.NoError(t, err)
	require.NotNil(t, update.ApprovedForms)
	assert.Equal(t, models.JSONList[string]{"form_y"}, *update.ApprovedForms)

	update, err = services.ParseCompanyUpdate(map[string]interface{}{"approvedForms": nil})
	require.NoError(t, err)
	require.NotNil(t, update.ApprovedForms)
	assert.Empty(t, *update.ApprovedForms)

	_, err = services.ParseCompanyUpdate(map[string]interface{}{"approvedForms": []interface{}{"F1", 2.0}})
	requireCustomError(t, err, http.StatusBadRequest, types.CodeInvalidBody)

	_, err = services.ParseCompanyUpdate(map[string]interface{}{"approvedForms": true})
	requireCustomError(t, err, http.StatusBadRequest, types.CodeInvalidBody)
}

func TestUpdateCompanyThenFetch(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()

	company, err := services.NewCompany(services.CompanyInput{
		Name:     "Before",
		Email:    "before@example.com",
		Metadata: models.JSONObject{"address": "1 Main St"},
	})
	require.NoError(t, err)
	id, err := services.CreateCompany(ctx, store, company)
	require.NoError(t, err)

	update, err := services.ParseCompanyUpdate(map[string]interface{}{"name": "Acme"})
	require.NoError(t, err)
	_, err = services.UpdateCompany(ctx, store, id, update)
	require.NoError(t, err)

	fetched, err := services.GetCompany(ctx, store, id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", fetched.Name)
	assert.Equal(t, "before@example.com", fetched.Email)
	assert.Equal(t, "1 Main St", fetched.Address())

	_, err = services.UpdateCompany(ctx, store, "missing", update)
	requireCustomError(t, err, http.StatusNotFound, types.CodeNotFound)

	_, err = services.GetCompany(ctx, store, "missing")
	requireCustomError(t, err, http.StatusNotFound, types.CodeNotFound)
}

func TestListCompaniesCapped(t *testing.T) {
	store := testenv.NewSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < services.CompanyListLimit+5; i++ {
		company, err := services.NewCompany(services.CompanyInput{Name: "C", Email: "c@example.com"})
		require.NoError(t, err)
		_, err = services.CreateCompany(ctx, store, company)
		require.NoError(t, err)
	}

	companies, err := services.ListCompanies(ctx, store)
	require.NoError(t, err)
	assert.Len(t, companies, services.CompanyListLimit)
}
