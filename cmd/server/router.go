package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/novatech/taskflow/internal/api"
	apiMiddleware "github.com/novatech/taskflow/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware: the JSON API under /api and the HTML pages at the root.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	r.Route("/api", taskHandler.RegisterRoutes)

	app.webHandler.RegisterRoutes(r)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
