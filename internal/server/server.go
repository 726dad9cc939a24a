// Package server provides the HTTP server for jcadmin.
// It handles routing, middleware configuration, and server lifecycle management.
//
// The server wires the jcblock-backed caller service into chi handlers,
// runs a background poll that keeps the file cache honest, and shuts down
// gracefully on SIGINT or SIGTERM.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/jcadmin/internal/config"
	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/handlers"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
	"github.com/yasinhessnawi1/jcadmin/internal/service"
	"github.com/yasinhessnawi1/jcadmin/internal/utils/ratelimit"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// CallerHandler serves calls, callers, lists and classification.
	CallerHandler *handlers.CallerHandler
}

// fileWatcher is implemented by caller services that can react to file
// changes as they happen.
type fileWatcher interface {
	WatchFiles(ctx context.Context) error
}

// Server represents the jcadmin API server.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// callerService is the domain service behind every handler
	callerService handlers.CallerServiceInterface

	// httpServer is the underlying HTTP server
	httpServer *http.Server

	// mutationLimits throttles classify, rename and delete per client
	mutationLimits *ratelimit.Store

	// stopMaintenance cancels the background poll loop
	stopMaintenance context.CancelFunc
	maintenanceWG   sync.WaitGroup
}

// NewServer creates a new server instance backed by the jcblock files named
// in cfg. The name database is bootstrapped from the files when missing.
//
// Parameters:
//   - ctx: Context for the bootstrap file reads
//   - cfg: Application configuration
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if the caller service cannot be initialized
func NewServer(ctx context.Context, cfg *config.AppConfig) (*Server, error) {
	callerService, err := service.NewCallerServiceFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up caller service: %w", err)
	}

	return NewServerWithService(cfg, callerService), nil
}

// NewServerWithService creates a server around an already constructed
// caller service.
func NewServerWithService(cfg *config.AppConfig, callerService handlers.CallerServiceInterface) *Server {
	s := &Server{
		Config:        cfg,
		callerService: callerService,
	}

	s.setupHandlers()
	s.setupRateLimits()
	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s
}

// setupHandlers initializes all HTTP request handlers.
func (s *Server) setupHandlers() {
	version := models.VersionInfo{
		Name:        s.Config.App.Name,
		Version:     s.Config.App.Version,
		Environment: s.Config.App.Environment,
	}

	s.Handlers = &Handlers{
		CallerHandler: handlers.NewCallerHandler(s.callerService, version),
	}
}

// setupRateLimits creates the mutation limiter store when rate limiting is enabled.
func (s *Server) setupRateLimits() {
	if !s.Config.RateLimit.Enabled {
		return
	}

	s.mutationLimits = ratelimit.NewStore(ratelimit.Rate{
		RequestsPerSecond: s.Config.RateLimit.RequestsPerSecond,
		Burst:             s.Config.RateLimit.Burst,
	}, constants.RateLimiterIdleTTL)
}

// Start starts the HTTP server and sets up signal handling for graceful shutdown.
// It runs in a blocking mode, waiting for either server errors or shutdown signals.
//
// Returns:
//   - An error if the server fails to start or encounters an error during operation
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Str("jcblock_dir", s.Config.Files.Dir).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	s.SetupMaintenanceTasks(constants.CacheRefreshInterval)

	select {
	case err := <-serverErrors:
		s.stopMaintenanceTasks()
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// and stopping the background poll loop.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopMaintenanceTasks()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}

// SetupMaintenanceTasks starts a background loop that polls the jcblock
// file modification times every interval. Polling drops cache entries for
// files jcblock rewrote behind our back. With files.watch enabled a file
// watcher drops them as soon as they change. Idle rate limiters are evicted
// on their own schedule.
func (s *Server) SetupMaintenanceTasks(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopMaintenance = cancel

	if watcher, ok := s.callerService.(fileWatcher); ok && s.Config.Files.Watch {
		s.maintenanceWG.Add(1)
		go func() {
			defer s.maintenanceWG.Done()
			if err := watcher.WatchFiles(ctx); err != nil {
				log.Warn().Err(err).Msg("File watcher unavailable, relying on polling")
			}
		}()
	}

	if s.mutationLimits != nil {
		s.maintenanceWG.Add(1)
		go func() {
			defer s.maintenanceWG.Done()
			s.mutationLimits.RunCleanup(ctx, constants.RateLimiterCleanupInterval)
		}()
	}

	s.maintenanceWG.Add(1)
	go func() {
		defer s.maintenanceWG.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.callerService.PollModificationTimes(ctx); err != nil && ctx.Err() == nil {
					log.Warn().Err(err).Msg("Background poll failed")
				}
			}
		}
	}()
}

// stopMaintenanceTasks cancels the poll loop and waits for it to exit.
func (s *Server) stopMaintenanceTasks() {
	if s.stopMaintenance == nil {
		return
	}
	s.stopMaintenance()
	s.maintenanceWG.Wait()
	s.stopMaintenance = nil
}
