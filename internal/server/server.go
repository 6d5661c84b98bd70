/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/orderboard/internal/api"
	"github.com/friendsincode/orderboard/internal/audit"
	"github.com/friendsincode/orderboard/internal/board"
	"github.com/friendsincode/orderboard/internal/config"
	"github.com/friendsincode/orderboard/internal/db"
	"github.com/friendsincode/orderboard/internal/events"
	"github.com/friendsincode/orderboard/internal/models"
	"github.com/friendsincode/orderboard/internal/seed"
	"github.com/friendsincode/orderboard/internal/storage"
	"github.com/friendsincode/orderboard/internal/telemetry"
	"github.com/friendsincode/orderboard/internal/timeline"
)

// Server bundles the HTTP surface and supporting services.
type Server struct {
	cfg        *config.Config
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
	closers    []func() error

	db        *gorm.DB
	store     *board.Store
	projector *timeline.Projector
	api       *api.API
	bus       *events.Bus
	auditSvc  *audit.Service

	bgCancel context.CancelFunc
	bgWG     sync.WaitGroup
}

// New constructs the server and wires dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(securityHeadersMiddleware)
	router.Use(telemetry.TracingMiddleware("orderboard-api"))
	router.Use(telemetry.MetricsMiddleware)
	// Skip the request timeout for WebSocket upgrades, they are long-lived.
	router.Use(func(next http.Handler) http.Handler {
		timeout := middleware.Timeout(60 * time.Second)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Upgrade") == "websocket" {
				next.ServeHTTP(w, r)
				return
			}
			timeout(next).ServeHTTP(w, r)
		})
	})

	srv := &Server{
		cfg:    cfg,
		logger: logger,
		router: router,
		bus:    events.NewBus(),
	}

	if err := srv.initDependencies(); err != nil {
		return nil, err
	}

	srv.configureRoutes()
	srv.startBackgroundWorkers()

	addr := fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort)
	srv.httpServer = &http.Server{
		Addr:              addr,
		Handler:           srv.router,
		ReadHeaderTimeout: 15 * time.Second,
		// WriteTimeout stays 0 so the board feed can hold its connection.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	return srv, nil
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'; base-uri 'self'")

		// Only advertise HSTS for requests served over HTTPS.
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) initDependencies() error {
	database, err := db.Connect(s.cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(database); err != nil {
		return err
	}
	s.db = database
	s.DeferClose(func() error { return db.Close(database) })

	centers, orders, err := s.seedData()
	if err != nil {
		return err
	}

	s.auditSvc = audit.NewService(database, s.bus, s.logger)
	s.store = board.New(storage.NewGormKV(database), centers, orders, s.bus, s.logger)
	s.projector = timeline.New(s.cfg.WeekStart)
	s.api = api.New(s.store, s.projector, s.bus, s.logger)
	s.api.SetAuditService(s.auditSvc)

	return nil
}

// seedData resolves the fallback dataset, preferring a configured seed file
// over the bundled one.
func (s *Server) seedData() ([]models.WorkCenter, []models.WorkOrder, error) {
	if s.cfg.SeedFile != "" {
		centers, orders, err := seed.LoadFile(s.cfg.SeedFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load seed file: %w", err)
		}
		s.logger.Info().Str("path", s.cfg.SeedFile).Msg("using seed file")
		return centers, orders, nil
	}
	return seed.Centers(), seed.Orders(time.Now()), nil
}

func (s *Server) configureRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Handle("/metrics", telemetry.Handler())

	s.api.Routes(s.router)
}

func (s *Server) startBackgroundWorkers() {
	ctx, cancel := context.WithCancel(context.Background())
	s.bgCancel = cancel

	s.bgWG.Add(1)
	go func() {
		defer s.bgWG.Done()
		s.auditSvc.Start(ctx)
	}()

	s.bgWG.Add(1)
	go func() {
		defer s.bgWG.Done()
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				db.UpdateConnectionMetrics(s.db)
			}
		}
	}()
}

func (s *Server) stopBackgroundWorkers() {
	if s.bgCancel == nil {
		return
	}
	s.bgCancel()
	s.bgWG.Wait()
	s.bgCancel = nil
}

// HTTPServer exposes the underlying http.Server for lifecycle control.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// Router exposes the configured handler, used by tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Store exposes the board store.
func (s *Server) Store() *board.Store {
	return s.store
}

// Close releases owned resources in reverse order.
func (s *Server) Close() error {
	s.stopBackgroundWorkers()
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// DeferClose registers a cleanup hook.
func (s *Server) DeferClose(fn func() error) {
	s.closers = append(s.closers, fn)
}
