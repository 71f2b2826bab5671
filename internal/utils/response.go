// response.go
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

package utils

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends {"success": true} merged with fields
func SuccessResponse(c *fiber.Ctx, status int, fields fiber.Map) error {
	body := fiber.Map{"success": true}
	for key, value := range fields {
		body[key] = value
	}
	return c.Status(status).JSON(body)
}

// ErrorResponse sends {"error": code, "message": message}; message is omitted when empty
func ErrorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponseStruct{Error: code, Message: message})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error   string `json:"error" example:"missing_fields"`
	Message string `json:"message,omitempty" example:"name and email are required"`
}

// CreatedResponseStruct defines the schema for create responses
type CreatedResponseStruct struct {
	Success bool   `json:"success" example:"true"`
	ID      string `json:"id" example:"6650c1f2a4b5c6d7e8f90123"`
}
