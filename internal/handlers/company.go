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

package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/services"
	"github.com/localnerve/easyform-api/internal/utils"
)

// CompanyHandler handles /api/company
type CompanyHandler struct {
	Stores *database.Provider
}

// Routes returns the method table for the resource path
func (h *CompanyHandler) Routes() Methods {
	return Methods{
		fiber.MethodGet:  h.Get,
		fiber.MethodPost: h.Create,
		fiber.MethodPut:  h.Update,
	}
}

// Get handles GET /api/company[?id=]
// @Summary List or fetch companies
// @Description Without id, lists up to 100 companies. With id, fetches one company.
// @Tags Company
// @Produce json
// @Param id query string false "Company ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	id := c.Query("id")

	return h.Stores.WithStore(c.UserContext(), func(ctx context.Context, store database.Store) error {
		if id == "" {
			companies, err := services.ListCompanies(ctx, store)
			if err != nil {
				return err
			}
			return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"companies": companies})
		}

		company, err := services.GetCompany(ctx, store, id)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"company": company})
	})
}

// Create handles POST /api/company
// @Summary Create a company
// @Tags Company
// @Accept json
// @Produce json
// @Param body body services.CompanyInput true "Company"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /company [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in services.CompanyInput
	if err := decodeBody(c, &in); err != nil {
		return err
	}
	company, err := services.NewCompany(in)
	if err != nil {
		return err
	}

	return h.Stores.WithStore(c.UserContext(), func(ctx context.Context, store database.Store) error {
		id, err := services.CreateCompany(ctx, store, company)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"id": id})
	})
}

// Update handles PUT /api/company?id=
// @Summary Update a company
// @Description Replaces any of name, email, metadata and approvedForms. Other keys are ignored.
// @Tags Company
// @Accept json
// @Produce json
// @Param id query string true "Company ID"
// @Param body body object true "Fields to replace"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /company [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id, err := requireID(c)
	if err != nil {
		return err
	}
	body, err := parseBody(c)
	if err != nil {
		return err
	}
	update, err := services.ParseCompanyUpdate(body)
	if err != nil {
		return err
	}

	return h.Stores.WithStore(c.UserContext(), func(ctx context.Context, store database.Store) error {
		company, err := services.UpdateCompany(ctx, store, id, update)
		if err != nil {
			return err
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"company": company})
	})
}
