package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// healthCheckHandler reports the build and whether the database answers. A failed ping turns the response into a 503.
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status, code, database := "available", http.StatusOK, "ok"

	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := app.db.PingContext(ctx); err != nil {
			app.logger.Warn("database ping failed", slog.String("error", err.Error()))
			status, code, database = "unavailable", http.StatusServiceUnavailable, "unreachable"
		}
	}

	env := envelope{
		"status":   status,
		"database": database,
		"system_info": map[string]string{
			"environment": app.config.Environment,
			"version":     app.config.Version,
		},
	}

	if err := app.writeJSON(w, code, env, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
