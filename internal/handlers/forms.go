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

package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/services"
	"github.com/localnerve/easyform-api/internal/utils"
	"go.uber.org/zap"
)

// FormsHandler handles /api/forms, including form approval
type FormsHandler struct {
	Stores *database.Provider
	Log    *zap.Logger
}

// Routes returns the method table for the resource path
func (h *FormsHandler) Routes() Methods {
	return Methods{
		fiber.MethodGet:  h.Get,
		fiber.MethodPost: h.Create,
		fiber.MethodPut:  h.Put,
	}
}

// Get handles GET /api/forms[?id=]
// @Summary List or fetch forms
// @Description Without id, lists up to 200 forms newest first. With id, fetches one form.
// @Tags Forms
// @Produce json
// @Param id query string false "Form ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /forms [get]
func (h *FormsHandler) Get(c *fiber.Ctx) error {
	id := c.Query("id")

	return h.Stores.WithStore(c.UserContext(), func(ctx context.Context, store database.Store) error {
		if id == "" {
			forms, err := services.ListForms(ctx, store)
			if err != nil {
				return err
			}
			return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"forms": forms})
		}

		form, err := services.GetForm(ctx, store, id)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"form": form})
	})
}

// Create handles POST /api/forms
// @Summary Create a form
// @Description The id is taken from the body, or derived from the title as form_<slug>.
// @Tags Forms
// @Accept json
// @Produce json
// @Param body body object true "Form"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /forms [post]
func (h *FormsHandler) Create(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	form := services.NormalizeForm(body, "")

	return h.Stores.WithStore(c.UserContext(), func(ctx context.Context, store database.Store) error {
		created, err := services.CreateForm(ctx, store, form)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"id": created.ID, "form": created})
	})
}

// Put handles PUT /api/forms. With an id query it updates the form,
// without one it approves body.formId for body.companyId.
// @Summary Update or approve a form
// @Tags Forms
// @Accept json
// @Produce json
// @Param id query string false "Form ID to update"
// @Param body body object true "Form fields, or {formId, companyId} to approve"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /forms [put]
func (h *FormsHandler) Put(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	if id := c.Query("id"); id != "" {
		return h.update(c, id, body)
	}
	return h.approve(c, body)
}

func (h *FormsHandler) update(c *fiber.Ctx, id string, body map[string]interface{}) error {
	return h.Stores.WithStore(c.UserContext(), func(ctx context.Context, store database.Store) error {
		form, err := services.UpdateForm(ctx, store, id, body)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"form": form})
	})
}

func (h *FormsHandler) approve(c *fiber.Ctx, body map[string]interface{}) error {
	req, err := services.ParseApproval(body)
	if err != nil {
		return err
	}

	return h.Stores.WithStore(c.UserContext(), func(ctx context.Context, store database.Store) error {
		form, err := services.ApproveForm(ctx, store, req, h.Log)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"form": form})
	})
}
