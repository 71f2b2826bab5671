// submission_document.go
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

	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/models"
	"go.uber.org/zap"
)

// SubmissionDocument is a submission with its company and form, as far as they resolve
type SubmissionDocument struct {
	Submission *models.Submission
	Company    *models.Company
	Form       *models.Form
}

// LoadSubmissionDocument fetches a submission and, best-effort, its company and
// form. Only the submission lookup can fail the operation; other lookup
// failures go to log.
func LoadSubmissionDocument(ctx context.Context, store database.Store, id string, log *zap.Logger) (*SubmissionDocument, error) {
	log = nopIfNil(log)

	submission, err := GetSubmission(ctx, store, id)
	if err != nil {
		return nil, err
	}

	doc := &SubmissionDocument{Submission: submission}

	company, err := store.GetCompany(ctx, submission.CompanyID)
	switch {
	case err == nil:
		doc.Company = company
	case !errors.Is(err, database.ErrNotFound):
		log.Warn("company lookup failed, rendering without it",
			zap.String("company_id", submission.CompanyID), zap.Error(err))
	}

	form, err := store.GetForm(ctx, submission.FormID)
	switch {
	case err == nil:
		doc.Form = form
	case !errors.Is(err, database.ErrNotFound):
		log.Warn("form lookup failed, rendering without it",
			zap.String("form_id", submission.FormID), zap.Error(err))
	}

	return doc, nil
}
