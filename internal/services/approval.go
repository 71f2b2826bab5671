// approval.go
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

	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/models"
	"github.com/localnerve/easyform-api/internal/types"
	"go.uber.org/zap"
)

// ApprovalRequest names the form to approve and the company claiming it
type ApprovalRequest struct {
	FormID    string
	CompanyID string
}

// ParseApproval validates the body of an approval request
func ParseApproval(body map[string]interface{}) (ApprovalRequest, error) {
	req := ApprovalRequest{
		FormID:    trimmed(body["formId"]),
		CompanyID: trimmed(body["companyId"]),
	}
	if req.FormID == "" || req.CompanyID == "" {
		return req, types.ValidationError(types.CodeMissingFields, "formId and companyId are required")
	}
	return req, nil
}

// ApproveForm marks the form approved for the company, then adds the form to
// the company's approved set.
//
// The two steps are not atomic. When the second step fails the form stays
// approved without the reciprocal link and a store error describing that
// outcome is returned; log records it with both identifiers.
func ApproveForm(ctx context.Context, store database.Store, req ApprovalRequest, log *zap.Logger) (*models.Form, error) {
	form, err := store.ApproveForm(ctx, req.FormID, req.CompanyID, Now())
	if err != nil {
		return nil, translate(err, "form not found")
	}

	if err := store.AddApprovedForm(ctx, req.CompanyID, req.FormID); err != nil {
		nopIfNil(log).Error("form approved but company link failed",
			zap.String("form_id", req.FormID),
			zap.String("company_id", req.CompanyID),
			zap.Error(err),
		)
		return nil, types.StoreError(fmt.Errorf("form %s approved but linking it to company %s failed: %w",
			req.FormID, req.CompanyID, err))
	}

	return form, nil
}
