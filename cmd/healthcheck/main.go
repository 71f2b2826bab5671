// main.go
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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/easyform-api/internal/config"
	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/services"
	"github.com/localnerve/easyform-api/internal/utils"
	"go.uber.org/zap"
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", "", "path to a .env file")
	flag.Parse()

	if err := config.LoadEnvFile(envFile); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// A probe opens and closes its own connection
	stores := database.NewProvider(database.NewOpener(cfg, zap.NewNop()),
		config.ConnectionModePerRequest, cfg.DBTimeout, zap.NewNop())

	// Perform health check
	result := services.HealthCheck(context.Background(), cfg, stores, zap.NewNop())
	if err := utils.PingServer(cfg.Port); err != nil {
		result.Status = "unhealthy"
		result.Details["server_error"] = err.Error()
	} else {
		result.Details["server"] = "ok"
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if !result.Healthy() {
		os.Exit(1)
	}
	os.Exit(0)
}
