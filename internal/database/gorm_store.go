// gorm_store.go
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
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/easyform-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// GormStore is a Store backed by a SQL database through GORM.
// Schemaless parts of each document live in JSON columns.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open GORM connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying connection
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// candidateIDs returns the canonical UUID form first when id parses as one,
// followed by the literal id.
func candidateIDs(id string) []string {
	if u, err := uuid.Parse(id); err == nil && u.String() != id {
		return []string{u.String(), id}
	}
	return []string{id}
}

// lockForUpdate adds SELECT ... FOR UPDATE where the dialect supports it
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	switch tx.Dialector.Name() {
	case "sqlite", "sqlserver":
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ListCompanies returns up to limit companies in store order
func (s *GormStore) ListCompanies(ctx context.Context, limit int) ([]models.Company, error) {
	companies := make([]models.Company, 0)
	err := s.session(ctx).
		Clauses(hints.CommentBefore("select", "easyform:list_companies")).
		Limit(limit).
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// GetCompany finds a company by native or literal identifier
func (s *GormStore) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := s.session(ctx).Where("id IN ?", candidateIDs(id)).First(&company).Error; err != nil {
		return nil, notFound(err)
	}
	return &company, nil
}

// CreateCompany inserts company, generating a UUID when it has no identifier
func (s *GormStore) CreateCompany(ctx context.Context, company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	if err := s.session(ctx).Create(company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// UpdateCompany replaces the supplied fields and returns the updated company
func (s *GormStore) UpdateCompany(ctx context.Context, id string, update models.CompanyUpdate) (*models.Company, error) {
	var company models.Company

	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id IN ?", candidateIDs(id)).First(&company).Error; err != nil {
			return notFound(err)
		}

		columns := make(map[string]interface{})
		if update.Name != nil {
			columns["name"] = *update.Name
		}
		if update.Email != nil {
			columns["email"] = *update.Email
		}
		if update.Metadata != nil {
			columns["metadata"] = *update.Metadata
		}
		if update.ApprovedForms != nil {
			columns["approved_forms"] = *update.ApprovedForms
		}
		if len(columns) == 0 {
			return nil
		}

		if err := tx.Model(&models.Company{}).Where("id = ?", company.ID).UpdateColumns(columns).Error; err != nil {
			return fmt.Errorf("update company: %w", err)
		}
		update.Apply(&company)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// AddApprovedForm adds formID to the company's approved set under a row lock
func (s *GormStore) AddApprovedForm(ctx context.Context, companyID, formID string) error {
	return s.session(ctx).Transaction(func(tx *gorm.DB) error {
		var company models.Company
		err := lockForUpdate(tx).Where("id IN ?", candidateIDs(companyID)).First(&company).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load company: %w", err)
		}
		if company.HasApprovedForm(formID) {
			return nil
		}

		approved := append(company.ApprovedForms, formID)
		if err := tx.Model(&models.Company{}).Where("id = ?", company.ID).
			UpdateColumn("approved_forms", approved).Error; err != nil {
			return fmt.Errorf("link approved form: %w", err)
		}
		return nil
	})
}

// ListForms returns up to limit forms, newest first
func (s *GormStore) ListForms(ctx context.Context, limit int) ([]models.Form, error) {
	forms := make([]models.Form, 0)
	err := s.session(ctx).
		Clauses(hints.CommentBefore("select", "easyform:list_forms")).
		Order("created_at DESC").
		Limit(limit).
		Find(&forms).Error
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	return forms, nil
}

// GetForm finds a form by identifier
func (s *GormStore) GetForm(ctx context.Context, id string) (*models.Form, error) {
	var form models.Form
	if err := s.session(ctx).Where("id IN ?", candidateIDs(id)).First(&form).Error; err != nil {
		return nil, notFound(err)
	}
	return &form, nil
}

// CreateForm inserts form, failing with ErrConflict when its identifier is taken
func (s *GormStore) CreateForm(ctx context.Context, form *models.Form) error {
	return s.session(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Form{}).Where("id = ?", form.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("check form id: %w", err)
		}
		if count > 0 {
			return ErrConflict
		}
		if err := tx.Create(form).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return fmt.Errorf("insert form: %w", err)
		}
		return nil
	})
}

// UpdateForm replaces the template fields of a form
func (s *GormStore) UpdateForm(ctx context.Context, id string, update models.FormUpdate) (*models.Form, error) {
	var form models.Form

	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id IN ?", candidateIDs(id)).First(&form).Error; err != nil {
			return notFound(err)
		}
		err := tx.Model(&models.Form{}).Where("id = ?", form.ID).UpdateColumns(map[string]interface{}{
			"title":       update.Title,
			"description": update.Description,
			"category":    update.Category,
			"active":      update.Active,
			"fields":      update.Fields,
			"updated_at":  update.UpdatedAt,
		}).Error
		if err != nil {
			return fmt.Errorf("update form: %w", err)
		}
		update.Apply(&form)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// ApproveForm marks a form approved for companyID
func (s *GormStore) ApproveForm(ctx context.Context, formID, companyID string, at time.Time) (*models.Form, error) {
	var form models.Form

	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id IN ?", candidateIDs(formID)).First(&form).Error; err != nil {
			return notFound(err)
		}
		err := tx.Model(&models.Form{}).Where("id = ?", form.ID).UpdateColumns(map[string]interface{}{
			"approved":    true,
			"company_id":  companyID,
			"approved_at": at,
		}).Error
		if err != nil {
			return fmt.Errorf("approve form: %w", err)
		}
		form.Approved = true
		form.CompanyID = &companyID
		form.ApprovedAt = &at
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// ListSubmissions returns up to limit submissions, newest first, with exact-match filters
func (s *GormStore) ListSubmissions(ctx context.Context, filter models.SubmissionFilter, limit int) ([]models.Submission, error) {
	query := s.session(ctx).Clauses(hints.CommentBefore("select", "easyform:list_submissions"))
	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.FormID != "" {
		query = query.Where("form_id = ?", filter.FormID)
	}

	submissions := make([]models.Submission, 0)
	if err := query.Order("created_at DESC").Limit(limit).Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// GetSubmission finds a submission by native or literal identifier
func (s *GormStore) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.session(ctx).Where("id IN ?", candidateIDs(id)).First(&submission).Error; err != nil {
		return nil, notFound(err)
	}
	return &submission, nil
}

// CreateSubmission inserts submission, generating a UUID identifier
func (s *GormStore) CreateSubmission(ctx context.Context, submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if err := s.session(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// Migrate runs AutoMigrate for all models
func (s *GormStore) Migrate(ctx context.Context) error {
	return AutoMigrate(s.session(ctx))
}

// Ping checks database connectivity
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool
func (s *GormStore) Close(ctx context.Context) error {
	return Close(s.db)
}
