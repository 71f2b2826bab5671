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
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/localnerve/easyform-api/internal/config"
	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/logging"
	"github.com/localnerve/easyform-api/internal/server"
	"go.uber.org/zap"
)

// @title easyform API
// @version 1.0.0
// @description Companies, forms, submissions and submission PDFs for the easyform form builder
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/easyform-api
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", "", "path to a .env file (default ./.env when present)")
	flag.Parse()

	if err := config.LoadEnvFile(envFile); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	logger.Info("starting",
		zap.String("db_type", cfg.DBType),
		zap.String("connection_mode", cfg.DBConnectionMode),
		zap.Bool("store_uri_present", cfg.HasConnectionString()),
	)

	stores := database.NewProviderFromConfig(cfg, logger)

	// Create tables and indexes once at startup; a store that is down now
	// is retried per request.
	migrateCtx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	err = stores.WithStore(migrateCtx, func(ctx context.Context, store database.Store) error {
		return store.Migrate(ctx)
	})
	cancel()
	if err != nil {
		logger.Warn("store migration failed", zap.Error(err))
	}

	app := server.New(server.Options{
		Config: cfg,
		Stores: stores,
		Logger: logger,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("gracefully shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	logger.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	if err := stores.Close(context.Background()); err != nil {
		logger.Warn("failed to close store", zap.Error(err))
	}
	logger.Info("server stopped")
}
