// store.go
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

package database

import (
	"context"
	"errors"
	"time"

	"github.com/localnerve/easyform-api/internal/models"
)

// Collection names shared by every store implementation
const (
	CompaniesCollection   = "companies"
	FormsCollection       = "forms"
	SubmissionsCollection = "submissions"
)

var (
	// ErrNotFound is returned when no document matches an identifier
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a document with the same identifier exists
	ErrConflict = errors.New("duplicate identifier")
)

// Store is the document store holding companies, forms and submissions.
//
// Identifier lookups accept both the store-native identifier (UUID for SQL
// stores, ObjectId for MongoDB) and arbitrary literal strings.
type Store interface {
	ListCompanies(ctx context.Context, limit int) ([]models.Company, error)
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	CreateCompany(ctx context.Context, company *models.Company) error
	UpdateCompany(ctx context.Context, id string, update models.CompanyUpdate) (*models.Company, error)
	// AddApprovedForm is an idempotent set-add. A missing company is not an error.
	AddApprovedForm(ctx context.Context, companyID, formID string) error

	ListForms(ctx context.Context, limit int) ([]models.Form, error)
	GetForm(ctx context.Context, id string) (*models.Form, error)
	CreateForm(ctx context.Context, form *models.Form) error
	UpdateForm(ctx context.Context, id string, update models.FormUpdate) (*models.Form, error)
	ApproveForm(ctx context.Context, formID, companyID string, at time.Time) (*models.Form, error)

	ListSubmissions(ctx context.Context, filter models.SubmissionFilter, limit int) ([]models.Submission, error)
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	CreateSubmission(ctx context.Context, submission *models.Submission) error

	// Migrate creates tables or indexes
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
