// health.go
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

	"github.com/localnerve/easyform-api/internal/config"
	"github.com/localnerve/easyform-api/internal/database"
	"go.uber.org/zap"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every check passed
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck pings the store through the provider
func HealthCheck(ctx context.Context, cfg *config.Config, stores *database.Provider, log *zap.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status: "healthy",
		Details: map[string]string{
			"database_type":   cfg.DBType,
			"connection_mode": stores.Mode(),
		},
	}

	err := stores.WithStore(ctx, func(ctx context.Context, store database.Store) error {
		return store.Ping(ctx)
	})
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.ErrorMessage = err.Error()
		nopIfNil(log).Warn("health check failed", zap.Error(err))
		return result
	}

	result.Database = "ok"
	return result
}
