// submissions.go
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

package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/models"
	"github.com/localnerve/easyform-api/internal/services"
	"github.com/localnerve/easyform-api/internal/utils"
)

// SubmissionsHandler handles /api/submissions
type SubmissionsHandler struct {
	Stores *database.Provider
}

// Routes returns the method table for the resource path
func (h *SubmissionsHandler) Routes() Methods {
	return Methods{
		fiber.MethodGet:  h.Get,
		fiber.MethodPost: h.Create,
	}
}

// Get handles GET /api/submissions[?id=|?companyId=&formId=]
// @Summary List or fetch submissions
// @Description With id, fetches one submission. Otherwise lists up to 200, newest first, filtered by companyId and formId when given.
// @Tags Submissions
// @Produce json
// @Param id query string false "Submission ID"
// @Param companyId query string false "Company filter"
// @Param formId query string false "Form filter"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /submissions [get]
func (h *SubmissionsHandler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	filter := models.SubmissionFilter{
		CompanyID: c.Query("companyId"),
		FormID:    c.Query("formId"),
	}

	return h.Stores.WithStore(c.UserContext(), func(ctx context.Context, store database.Store) error {
		if id != "" {
			submission, err := services.GetSubmission(ctx, store, id)
			if err != nil {
				return err
			}
			return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"submission": submission})
		}

		submissions, err := services.ListSubmissions(ctx, store, filter)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"submissions": submissions})
	})
}

// Create handles POST /api/submissions
// @Summary Create a submission
// @Tags Submissions
// @Accept json
// @Produce json
// @Param body body object true "{companyId, formId, answers}"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /submissions [post]
func (h *SubmissionsHandler) Create(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	submission, err := services.NewSubmission(body)
	if err != nil {
		return err
	}

	return h.Stores.WithStore(c.UserContext(), func(ctx context.Context, store database.Store) error {
		id, err := services.CreateSubmission(ctx, store, submission)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"id": id})
	})
}
