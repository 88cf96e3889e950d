package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/novatech/taskflow/internal/config"
	"github.com/novatech/taskflow/internal/platform/postgres"
	"github.com/novatech/taskflow/internal/service"
	"github.com/novatech/taskflow/internal/store"
	"github.com/novatech/taskflow/internal/web"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore   store.TaskStore
	taskService service.TaskService
	webHandler  *web.Handler
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logging, and the database connection must
// already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.webHandler, err = web.NewHandler(app.taskService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create web handler: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
