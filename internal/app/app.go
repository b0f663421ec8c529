package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/calendarui/internal/config"
	"github.com/klokku/calendarui/internal/utils"
	"github.com/klokku/calendarui/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(cfg config.Application, clock utils.Clock) (*Application, error) {
	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps, err := BuildDependencies(cfg, clock)
	if err != nil {
		return nil, err
	}

	if err := seedCalendar(context.Background(), deps.CalendarService, cfg.Seed); err != nil {
		return nil, err
	}

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: cfg.Server.WriteTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

func (a *Application) Handler() http.Handler {
	return a.router
}

// Run starts the HTTP server and blocks until ctx is done or the server fails.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// seedCalendar loads the configured YAML and ICS files. The ICS file is
// loaded last and replaces the YAML content when both are set.
func seedCalendar(ctx context.Context, service *calendar.Service, seed config.Seed) error {
	if seed.EventsFile != "" {
		events, err := calendar.LoadSeed(seed.EventsFile)
		if err != nil {
			return err
		}
		if err := service.Seed(ctx, events); err != nil {
			return err
		}
	}

	if seed.ICSFile != "" {
		f, err := os.Open(seed.ICSFile)
		if err != nil {
			return fmt.Errorf("failed to open ICS seed: %w", err)
		}
		defer f.Close()
		if _, err := service.ImportICS(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
