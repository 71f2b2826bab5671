// connection.go
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

package database

import (
	"context"
	"fmt"
	"net"

	glebarezsqlite "github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/localnerve/easyform-api/internal/config"
	"github.com/localnerve/easyform-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Opener opens a new store handle
type Opener func(ctx context.Context) (Store, error)

// NewOpener returns the Opener for the configured DB_TYPE
func NewOpener(cfg *config.Config, log *zap.Logger) Opener {
	if cfg.IsMongo() {
		return func(ctx context.Context) (Store, error) {
			store, err := ConnectMongo(ctx, cfg, log)
			if err != nil {
				return nil, err
			}
			return store, nil
		}
	}
	return func(ctx context.Context) (Store, error) {
		db, err := Connect(cfg, log)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	}
}

// BuildDSN returns DB_DSN, or a DSN assembled from the discrete DB_* settings.
func BuildDSN(cfg *config.Config) string {
	if cfg.DBDSN != "" {
		return cfg.DBDSN
	}

	switch cfg.DBType {
	case "mysql", "mariadb":
		mc := gomysql.NewConfig()
		mc.User = cfg.DBUser
		mc.Passwd = cfg.DBPassword
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.DBHost, portOr(cfg.DBPort, "3306"))
		mc.DBName = cfg.DBDatabase
		mc.ParseTime = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()

	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBDatabase,
			portOr(cfg.DBPort, "5432"),
		)

	case "sqlserver", "mssql":
		return fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			portOr(cfg.DBPort, "1433"),
			cfg.DBDatabase,
		)

	default:
		// For SQLite, DB_DATABASE is the file path
		return cfg.DBDatabase
	}
}

// Connect establishes a SQL database connection based on the configured DB_TYPE
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	dsn := BuildDSN(cfg)

	switch cfg.DBType {
	case "mysql", "mariadb":
		dialector = mysql.Open(dsn)

	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)

	case "sqlite":
		// Pure Go driver, no cgo needed
		dialector = glebarezsqlite.Open(dsn)

	case "sqlite3":
		dialector = sqlite.Open(dsn)

	case "sqlserver", "mssql":
		dialector = sqlserver.Open(dsn)

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	// In-memory sqlite lives only as long as its connection, keep at least one idle
	idle := cfg.DBConnectionLimit / 2
	if idle < 1 {
		idle = 1
	}
	sqlDB.SetMaxOpenConns(cfg.DBConnectionLimit)
	sqlDB.SetMaxIdleConns(idle)

	log.Debug("connected to database", zap.String("db_type", cfg.DBType))

	return db, nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.Form{},
		&models.Submission{},
	)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func portOr(port, fallback string) string {
	if port == "" {
		return fallback
	}
	return port
}
