// server.go
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

package server

import (
	"errors"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/easyform-api/internal/config"
	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/handlers"
	"github.com/localnerve/easyform-api/internal/middleware"
	"github.com/localnerve/easyform-api/internal/render"
	"github.com/localnerve/easyform-api/internal/types"
	"github.com/localnerve/easyform-api/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "github.com/localnerve/easyform-api/docs/api" // Swagger docs
)

// Resource paths
const (
	CompanyPath       = "/api/company"
	FormsPath         = "/api/forms"
	SubmissionsPath   = "/api/submissions"
	SubmissionPDFPath = "/api/submission-pdf"
	HealthPath        = "/api/health"
	MetricsPath       = "/metrics"
)

// Options configures New
type Options struct {
	Config   *config.Config
	Stores   *database.Provider
	Logger   *zap.Logger
	Renderer *render.Renderer
}

// New builds the Fiber app with middleware and routes
func New(opts Options) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.NewRenderer()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
	})

	// Prometheus metrics, one registry per app. The middleware sits outside
	// RequestLogger so it records the status the error handler wrote.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := fiberprometheus.NewWithRegistry(registry, "easyform-api", "easyform", "http", nil)
	app.Use(metrics.Middleware)

	// Global middleware
	app.Use(middleware.RequestLogger(log, opts.Config.HasConnectionString()))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))
	app.Use(compress.New(compress.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == SubmissionPDFPath
		},
	}))

	metrics.RegisterAt(app, MetricsPath)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	companies := &handlers.CompanyHandler{Stores: opts.Stores}
	forms := &handlers.FormsHandler{Stores: opts.Stores, Log: log}
	submissions := &handlers.SubmissionsHandler{Stores: opts.Stores}
	pdf := &handlers.SubmissionPDFHandler{Stores: opts.Stores, Renderer: renderer, Log: log}
	health := &handlers.HealthHandler{Config: opts.Config, Stores: opts.Stores, Log: log}

	app.All(CompanyPath, handlers.Dispatch(companies.Routes()))
	app.All(FormsPath, handlers.Dispatch(forms.Routes()))
	app.All(SubmissionsPath, handlers.Dispatch(submissions.Routes()))
	app.All(SubmissionPDFPath, handlers.Dispatch(pdf.Routes()))
	app.Get(HealthPath, health.Get)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return types.NotFoundError("resource not found")
	})

	return app
}

// ErrorHandler renders every error as {"error": code, "message": message}
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		code := types.CodeInternal
		message := err.Error()

		var fe *fiber.Error
		if ce, ok := types.AsCustomError(err); ok {
			status, code, message = ce.Code, ce.Type, ce.Message
		} else if errors.As(err, &fe) {
			status, message = fe.Code, fe.Message
			switch fe.Code {
			case fiber.StatusNotFound:
				code = types.CodeNotFound
			case fiber.StatusMethodNotAllowed:
				code = types.CodeMethodNotAllowed
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				code = types.CodeInvalidBody
			}
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("error_code", code),
				zap.Error(err),
			)
		}

		return utils.ErrorResponse(c, status, code, message)
	}
}
