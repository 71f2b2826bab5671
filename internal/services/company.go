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

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/models"
	"github.com/localnerve/easyform-api/internal/types"
)

// CompanyListLimit caps the company list
const CompanyListLimit = 100

// CompanyInput is the request body for company creation
type CompanyInput struct {
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Metadata      models.JSONObject `json:"metadata,omitempty"`
	ApprovedForms types.FormIDs     `json:"approvedForms,omitempty"`
}

// NewCompany validates input and builds the company document to insert
func NewCompany(in CompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, types.ValidationError(types.CodeMissingFields, "name and email are required")
	}

	metadata := in.Metadata
	if metadata == nil {
		metadata = models.JSONObject{}
	}

	return &models.Company{
		Name:          name,
		Email:         email,
		CreatedAt:     Now(),
		ApprovedForms: models.JSONList[string](in.ApprovedForms.Unique()),
		Metadata:      metadata,
	}, nil
}

// ListCompanies returns up to CompanyListLimit companies
func ListCompanies(ctx context.Context, store database.Store) ([]models.Company, error) {
	companies, err := store.ListCompanies(ctx, CompanyListLimit)
	if err != nil {
		return nil, types.StoreError(err)
	}
	return companies, nil
}

// GetCompany fetches one company
func GetCompany(ctx context.Context, store database.Store, id string) (*models.Company, error) {
	company, err := store.GetCompany(ctx, id)
	if err != nil {
		return nil, translate(err, "company not found")
	}
	return company, nil
}

// CreateCompany persists company and returns its generated identifier
func CreateCompany(ctx context.Context, store database.Store, company *models.Company) (string, error) {
	if err := store.CreateCompany(ctx, company); err != nil {
		return "", translate(err, "company not found")
	}
	return company.ID, nil
}

// ParseCompanyUpdate keeps the whitelisted keys of body. Unknown keys are
// dropped; a body with no recognized key is a validation error.
func ParseCompanyUpdate(body map[string]interface{}) (models.CompanyUpdate, error) {
	var update models.CompanyUpdate

	for key, value := range body {
		switch key {
		case "name", "email":
			s, ok := value.(string)
			if !ok {
				return update, types.ValidationError(types.CodeInvalidBody, fmt.Sprintf("%s must be a string", key))
			}
			if key == "name" {
				update.Name = &s
			} else {
				update.Email = &s
			}

		case "metadata":
			metadata := models.JSONObject{}
			switch v := value.(type) {
			case nil:
			case map[string]interface{}:
				metadata = models.JSONObject(v)
			default:
				return update, types.ValidationError(types.CodeInvalidBody, "metadata must be an object")
			}
			update.Metadata = &metadata

		case "approvedForms":
			ids, err := types.ParseFormIDs(value)
			if err != nil {
				return update, types.ValidationError(types.CodeInvalidBody, err.Error())
			}
			approved := models.JSONList[string](ids)
			update.ApprovedForms = &approved
		}
	}

	if update.IsEmpty() {
		return update, types.ValidationError(types.CodeMissingFields,
			"no updatable fields provided (name, email, metadata, approvedForms)")
	}
	return update, nil
}

// UpdateCompany applies update and returns the updated company
func UpdateCompany(ctx context.Context, store database.Store, id string, update models.CompanyUpdate) (*models.Company, error) {
	company, err := store.UpdateCompany(ctx, id, update)
	if err != nil {
		return nil, translate(err, "company not found")
	}
	return company, nil
}
