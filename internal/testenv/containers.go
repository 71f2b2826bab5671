// containers.go
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
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/easyform-api/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Default images, overridable per call
const (
	MongoImage    = "mongo:7"
	MariaDBImage  = "mariadb:11"
	PostgresImage = "postgres:16-alpine"
)

const (
	dbUser     = "easyform"
	dbPassword = "easyform"
	dbDatabase = "easyform"
)

// StoreContainer is a running database container and the config that reaches it
type StoreContainer struct {
	Container testcontainers.Container
	Config    *config.Config
}

// Terminate stops and removes the container
func (sc *StoreContainer) Terminate(ctx context.Context) error {
	if sc == nil || sc.Container == nil {
		return nil
	}
	return sc.Container.Terminate(ctx)
}

// StartStore starts a container for dbType: mongodb, mariadb/mysql or postgres.
// An empty image selects the default for the type.
func StartStore(ctx context.Context, dbType, image string) (*StoreContainer, error) {
	switch dbType {
	case "mongodb", "mongo":
		return startContainer(ctx, "mongodb", orDefault(image, MongoImage), "27017", nil,
			wait.ForLog("Waiting for connections"))

	case "mariadb", "mysql":
		env := map[string]string{
			"MARIADB_ROOT_PASSWORD": dbPassword,
			"MARIADB_DATABASE":      dbDatabase,
			"MARIADB_USER":          dbUser,
			"MARIADB_PASSWORD":      dbPassword,
		}
		return startContainer(ctx, "mariadb", orDefault(image, MariaDBImage), "3306", env,
			wait.ForLog("ready for connections").WithOccurrence(2))

	case "postgres", "postgresql":
		env := map[string]string{
			"POSTGRES_USER":     dbUser,
			"POSTGRES_PASSWORD": dbPassword,
			"POSTGRES_DB":       dbDatabase,
		}
		return startContainer(ctx, "postgres", orDefault(image, PostgresImage), "5432", env,
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2))
	}
	return nil, fmt.Errorf("no container for database type: %s", dbType)
}

func startContainer(ctx context.Context, dbType, image, port string, env map[string]string, ready *wait.LogStrategy) (*StoreContainer, error) {
	tcpPort, err := nat.NewPort("tcp", port)
	if err != nil {
		return nil, fmt.Errorf("failed to create port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env:          env,
			WaitingFor: wait.ForAll(
				ready,
				wait.ForListeningPort(tcpPort),
			).WithDeadline(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", image, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	cfg := &config.Config{
		Port:              "0",
		DBType:            dbType,
		DBConnectionLimit: 5,
		DBConnectionMode:  config.ConnectionModeShared,
		DBTimeout:         30 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
	}
	if dbType == "mongodb" {
		cfg.MongoURI = fmt.Sprintf("mongodb://%s:%s/%s", host, mapped.Port(), dbDatabase)
	} else {
		cfg.DBHost = host
		cfg.DBPort = mapped.Port()
		cfg.DBUser = dbUser
		cfg.DBPassword = dbPassword
		cfg.DBDatabase = dbDatabase
	}

	return &StoreContainer{Container: container, Config: cfg}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
