// common.go
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
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/easyform-api/internal/types"
)

// Methods maps HTTP verbs to the handlers of one resource path
type Methods map[string]fiber.Handler

// Dispatch routes a request by method. OPTIONS answers an empty 204 for
// cross-origin preflight; verbs without a handler get 405.
func Dispatch(methods Methods) fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := c.Method()
		if method == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		if handler, ok := methods[method]; ok {
			return handler(c)
		}
		return types.MethodNotAllowedError(method)
	}
}

// parseBody decodes a JSON object body. An empty body is an empty object.
func parseBody(c *fiber.Ctx) (map[string]interface{}, error) {
	body := make(map[string]interface{})
	if err := decodeBody(c, &body); err != nil {
		return nil, err
	}
	if body == nil {
		body = make(map[string]interface{})
	}
	return body, nil
}

// decodeBody decodes the JSON body into v regardless of Content-Type
func decodeBody(c *fiber.Ctx, v interface{}) error {
	raw := c.Body()
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(raw, v); err != nil {
		return types.ValidationError(types.CodeInvalidBody, "request body must be a JSON object")
	}
	return nil
}

// requireID returns the trimmed "id" query parameter
func requireID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		return "", types.ValidationError(types.CodeMissingID, "id query parameter is required")
	}
	return id, nil
}
