// config.go
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

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Connection modes for the store provider
const (
	ConnectionModeShared     = "shared"
	ConnectionModePerRequest = "per-request"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Store configuration
	DBType            string // mongodb, mysql, postgres, sqlite, sqlite3, sqlserver
	MongoURI          string
	DBDSN             string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBDatabase        string
	DBName            string
	DBConnectionLimit int
	DBConnectionMode  string
	DBTimeout         time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// LoadEnvFile loads environment variables from a .env file.
// An empty path loads ./.env when it exists and is otherwise a no-op.
func LoadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            strings.ToLower(getEnv("DB_TYPE", "mongodb")),
		MongoURI:          getEnv("MONGO_URI", ""),
		DBDSN:             getEnv("DB_DSN", ""),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBName:            getEnv("DB_NAME", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBConnectionMode:  strings.ToLower(getEnv("DB_CONNECTION_MODE", ConnectionModeShared)),
		DBTimeout:         getEnvAsDuration("DB_TIMEOUT", 10*time.Second),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}

	switch cfg.DBType {
	case "mongodb", "mongo", "mysql", "mariadb", "postgres", "postgresql", "sqlite", "sqlite3", "sqlserver", "mssql":
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE: %s", cfg.DBType)
	}

	switch cfg.DBConnectionMode {
	case ConnectionModeShared, ConnectionModePerRequest:
	default:
		return nil, fmt.Errorf("DB_CONNECTION_MODE must be %q or %q, got %q",
			ConnectionModeShared, ConnectionModePerRequest, cfg.DBConnectionMode)
	}

	if cfg.DBConnectionLimit < 1 {
		cfg.DBConnectionLimit = 1
	}

	return cfg, nil
}

// IsMongo reports whether the configured store is MongoDB
func (c *Config) IsMongo() bool {
	return c.DBType == "mongodb" || c.DBType == "mongo"
}

// ConnectionString returns the raw connection string configured for the store type.
func (c *Config) ConnectionString() string {
	if c.IsMongo() {
		return c.MongoURI
	}
	return c.DBDSN
}

// HasConnectionString reports presence, not validity, of a store connection setting.
func (c *Config) HasConnectionString() bool {
	if c.IsMongo() {
		return strings.HasPrefix(c.MongoURI, "mongodb")
	}
	return c.DBDSN != "" || c.DBDatabase != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("5s") or plain seconds ("5")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
