// sqlite.go
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

package testenv

import (
	"testing"

	"github.com/localnerve/easyform-api/internal/config"
	"github.com/localnerve/easyform-api/internal/database"
	"go.uber.org/zap"
)

// SQLiteConfig returns a config for a private in-memory sqlite database
func SQLiteConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		DBType:            "sqlite",
		DBDSN:             ":memory:",
		DBConnectionLimit: 1,
		DBConnectionMode:  config.ConnectionModeShared,
		LogLevel:          "error",
		LogFormat:         "json",
	}
}

// NewSQLiteStore opens a migrated in-memory store that is closed when t ends.
// The pool is held to one connection so every query sees the same database.
func NewSQLiteStore(t testing.TB) *database.GormStore {
	t.Helper()

	db, err := database.Connect(SQLiteConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return database.NewGormStore(db)
}
