package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

// HealthCheckHandler reports dependency health as JSON. Each check runs with
// the request context bounded by timeout. Any failure turns the response into
// 503 and is logged; failure details are not exposed to the caller.
//
//	{"status":"ok","checks":{"storage":"ok"}}
func HealthCheckHandler(log *slog.Logger, timeout time.Duration, checks map[string]CheckFunc) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		status := http.StatusOK
		report := struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks,omitempty"`
		}{Status: "ok", Checks: make(map[string]string, len(checks))}

		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "health check failed", logger.Component(name), logger.Error(err))
				report.Checks[name] = "unavailable"
				report.Status = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			report.Checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	}
}
