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
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/localnerve/easyform-api/data"
	"github.com/localnerve/easyform-api/internal/config"
	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/services"
	"github.com/localnerve/easyform-api/internal/testenv"
	"go.uber.org/zap"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "type", "", "store type: mongodb, mariadb or postgres (default DB_TYPE, then mongodb)")
	var image string
	flag.StringVar(&image, "image", "", "container image (default per store type)")
	var seed bool
	flag.BoolVar(&seed, "seed", false, "load the sample companies, forms and submissions")
	flag.Parse()

	usage := `
Start a throwaway document store in a container and print the environment
that points easyform-api at it. The container is removed on exit.

Usage:

devstore [-h] [-f ENV_FILE_PATH] [-type TYPE] [-image IMAGE] [-seed]

example
  devstore -type mariadb -seed > .env.dev
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := config.LoadEnvFile(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	}
	if dbType == "" {
		dbType = os.Getenv("DB_TYPE")
	}
	if dbType == "" {
		dbType = "mongodb"
	}

	ctx := context.Background()
	sc, err := testenv.StartStore(ctx, dbType, image)
	if err != nil {
		log.Fatalf("Failed to start store container: %v\n", err)
	}
	defer func() {
		if err := sc.Terminate(context.Background()); err != nil {
			log.Printf("Failed to terminate store container: %v\n", err)
		}
	}()

	store, err := database.NewOpener(sc.Config, zap.NewNop())(ctx)
	if err != nil {
		log.Printf("Failed to connect to store container: %v\n", err)
		return
	}
	defer store.Close(context.Background()) //nolint:errcheck

	if err := store.Migrate(ctx); err != nil {
		log.Printf("Failed to migrate store: %v\n", err)
		return
	}
	if seed {
		if err := seedStore(ctx, store); err != nil {
			log.Printf("Failed to seed store: %v\n", err)
			return
		}
		log.Printf("Seeded sample data\n")
	}

	printEnv(sc.Config)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-sigs
	log.Printf("Received signal: %v, terminating store container...\n", sig)
}

func printEnv(cfg *config.Config) {
	fmt.Printf("DB_TYPE=%s\n", cfg.DBType)
	if cfg.IsMongo() {
		fmt.Printf("MONGO_URI=%s\n", cfg.MongoURI)
		return
	}
	fmt.Printf("DB_HOST=%s\nDB_PORT=%s\nDB_USER=%s\nDB_PASSWORD=%s\nDB_DATABASE=%s\n",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBDatabase)
}

func seedStore(ctx context.Context, store database.Store) error {
	sample, err := data.LoadSeed()
	if err != nil {
		return err
	}

	companyIDs := make([]string, 0, len(sample.Companies))
	for _, body := range sample.Companies {
		in := services.CompanyInput{}
		in.Name, _ = body["name"].(string)
		in.Email, _ = body["email"].(string)
		if metadata, ok := body["metadata"].(map[string]interface{}); ok {
			in.Metadata = metadata
		}
		company, err := services.NewCompany(in)
		if err != nil {
			return err
		}
		id, err := services.CreateCompany(ctx, store, company)
		if err != nil {
			return err
		}
		companyIDs = append(companyIDs, id)
	}

	for _, body := range sample.Forms {
		if _, err := services.CreateForm(ctx, store, services.NormalizeForm(body, "")); err != nil {
			return err
		}
	}

	for _, a := range sample.Approvals {
		req := services.ApprovalRequest{FormID: a.FormID, CompanyID: companyIDs[a.CompanyIndex]}
		if _, err := services.ApproveForm(ctx, store, req, zap.NewNop()); err != nil {
			return err
		}
	}

	for _, body := range sample.Submissions {
		if index, ok := body["companyIndex"].(float64); ok {
			body["companyId"] = companyIDs[int(index)]
		}
		submission, err := services.NewSubmission(body)
		if err != nil {
			return err
		}
		if _, err := services.CreateSubmission(ctx, store, submission); err != nil {
			return err
		}
	}
	return nil
}
