package app

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/klokku/calendarui/internal/config"
	log "github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID returns the id attached by the request middleware, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Reuse or assign X-Request-Id and expose it to downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := req.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)
			ctx := context.WithValue(req.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	// Access log
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			started := deps.Clock.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, req)

			entry := log.WithFields(log.Fields{
				"request_id": RequestID(req.Context()),
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     rec.status,
				"duration":   deps.Clock.Now().Sub(started).Round(time.Microsecond),
			})
			if rec.status >= http.StatusInternalServerError {
				entry.Warn("request failed")
			} else {
				entry.Debug("request served")
			}
		})
	})
}
