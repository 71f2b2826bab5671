// forms.go
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
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/models"
	"github.com/localnerve/easyform-api/internal/types"
)

const (
	// FormListLimit caps the form list
	FormListLimit = 200

	// DefaultFormTitle replaces a missing or blank title
	DefaultFormTitle = "Untitled Form"

	formIDPrefix = "form_"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases title, collapses every run of other characters to one
// underscore and trims underscores from both ends.
func Slugify(title string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "_")
	return strings.Trim(slug, "_")
}

// FormID derives the identifier of a form created without an explicit one
func FormID(title string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "untitled"
	}
	return formIDPrefix + slug
}

// NormalizeForm builds the canonical form record from a raw request body.
// The identifier is the body "id", then existingID, then one derived from the title.
func NormalizeForm(raw map[string]interface{}, existingID string) *models.Form {
	title := trimmed(raw["title"])
	if title == "" {
		title = DefaultFormTitle
	}

	id := trimmed(raw["id"])
	if id == "" {
		id = existingID
	}
	if id == "" {
		id = FormID(title)
	}

	return &models.Form{
		ID:          id,
		Title:       title,
		Description: trimmed(raw["description"]),
		Category:    trimmed(raw["category"]),
		Active:      coerceBool(raw["active"], true),
		Fields:      coerceFields(raw["fields"]),
	}
}

// ListForms returns up to FormListLimit forms, newest first
func ListForms(ctx context.Context, store database.Store) ([]models.Form, error) {
	forms, err := store.ListForms(ctx, FormListLimit)
	if err != nil {
		return nil, types.StoreError(err)
	}
	return forms, nil
}

// GetForm fetches one form
func GetForm(ctx context.Context, store database.Store, id string) (*models.Form, error) {
	form, err := store.GetForm(ctx, id)
	if err != nil {
		return nil, translate(err, "form not found")
	}
	return form, nil
}

// CreateForm persists a normalized form as a new, unapproved form
func CreateForm(ctx context.Context, store database.Store, form *models.Form) (*models.Form, error) {
	now := Now()
	form.CreatedAt = now
	form.UpdatedAt = now
	form.Approved = false
	form.CompanyID = nil
	form.ApprovedAt = nil

	if err := store.CreateForm(ctx, form); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, types.ConflictError(fmt.Sprintf("form %s already exists", form.ID))
		}
		return nil, types.StoreError(err)
	}
	return form, nil
}

// formTemplateKeys are the body keys an update may carry
var formTemplateKeys = []string{"title", "description", "category", "active", "fields"}

// UpdateForm replaces the template fields of form id from a raw request body.
// A body without any template key leaves the form untouched.
func UpdateForm(ctx context.Context, store database.Store, id string, raw map[string]interface{}) (*models.Form, error) {
	if !hasAnyKey(raw, formTemplateKeys) {
		return nil, types.ValidationError(types.CodeMissingFields,
			"no updatable fields provided (title, description, category, active, fields)")
	}
	normalized := NormalizeForm(raw, id)

	form, err := store.UpdateForm(ctx, id, models.FormUpdate{
		Title:       normalized.Title,
		Description: normalized.Description,
		Category:    normalized.Category,
		Active:      normalized.Active,
		Fields:      normalized.Fields,
		UpdatedAt:   Now(),
	})
	if err != nil {
		return nil, translate(err, "form not found")
	}
	return form, nil
}

func hasAnyKey(body map[string]interface{}, keys []string) bool {
	for _, key := range keys {
		if _, ok := body[key]; ok {
			return true
		}
	}
	return false
}

func trimmed(value interface{}) string {
	s, _ := value.(string)
	return strings.TrimSpace(s)
}

// coerceBool follows JSON truthiness for non-boolean values
func coerceBool(value interface{}, fallback bool) bool {
	switch v := value.(type) {
	case nil:
		return fallback
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return true
}

func coerceFields(value interface{}) models.JSONList[map[string]interface{}] {
	fields := make(models.JSONList[map[string]interface{}], 0)
	list, ok := value.([]interface{})
	if !ok {
		return fields
	}
	for _, item := range list {
		if field, ok := item.(map[string]interface{}); ok {
			fields = append(fields, field)
		}
	}
	return fields
}
