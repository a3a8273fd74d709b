package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"resumelens/internal/catalog"
	"resumelens/internal/observability"
	"resumelens/internal/store"
)

// Start starts the HTTP server with all configured components and
// blocks until ctx is cancelled or the server fails
func (s *Server) Start(ctx context.Context) error {
	om, err := s.initializeObservability()
	if err != nil {
		return err
	}
	defer s.shutdownObservability(om)

	if err := s.initializeCatalog(om); err != nil {
		return err
	}
	defer s.stopCatalog()

	if err := s.initializeStorage(); err != nil {
		return err
	}
	defer s.closeStorage()

	httpServer := s.setupHTTPServer(om)

	if err := s.configureTLS(httpServer); err != nil {
		return err
	}

	s.displayServerInfo()

	return s.startWithGracefulShutdown(ctx, httpServer)
}

// initializeObservability sets up observability components
func (s *Server) initializeObservability() (*observability.ObservabilityManager, error) {
	obsConfig := observability.GetObservabilityConfig(s.AppConfig, s.Version)

	om, err := observability.NewObservabilityManager(obsConfig, s.AppConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	return om, nil
}

// shutdownObservability handles observability cleanup
func (s *Server) shutdownObservability(om *observability.ObservabilityManager) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := om.Shutdown(ctx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown observability")
	}
}

// initializeCatalog loads the role catalog and starts the file watcher
// when hot reload is configured
func (s *Server) initializeCatalog(om *observability.ObservabilityManager) error {
	provider, err := catalog.NewProvider(s.AppConfig.Catalog.Path, s.Logger)
	if err != nil {
		return fmt.Errorf("failed to load role catalog: %w", err)
	}

	metrics := om.GetMetrics()
	provider.SetReloadHook(func(success bool) {
		metrics.RecordCatalogReload(context.Background(), success)
	})

	if s.AppConfig.Catalog.Watch && s.AppConfig.Catalog.Path != "" {
		if err := provider.Watch(); err != nil {
			return fmt.Errorf("failed to watch catalog file: %w", err)
		}
	}

	s.catalog = provider
	return nil
}

func (s *Server) stopCatalog() {
	if s.catalog != nil {
		if err := s.catalog.Stop(); err != nil {
			s.Logger.LogError(err, "Failed to stop catalog watcher")
		}
	}
}

// initializeStorage opens the history database when persistence is
// enabled and arms the write circuit breaker
func (s *Server) initializeStorage() error {
	if !s.AppConfig.Storage.Enabled {
		return nil
	}

	history, err := store.Open(s.AppConfig.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}

	s.history = history
	s.storeBreaker = NewStoreBreaker(s.AppConfig.Server.StoreBreaker, s.Logger)
	return nil
}

func (s *Server) closeStorage() {
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close history store")
		}
	}
}

// setupHTTPServer creates and configures the HTTP server
func (s *Server) setupHTTPServer(om *observability.ObservabilityManager) *http.Server {
	mux := s.setupRoutes(om)
	handler := om.HTTPMiddleware()(mux)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}
}

// configureTLS applies server-mode TLS settings when enabled
func (s *Server) configureTLS(server *http.Server) error {
	if s.TLSConfig.Mode != "server" {
		return nil
	}

	if s.TLSConfig.CertFile == "" || s.TLSConfig.KeyFile == "" {
		return fmt.Errorf("TLS server mode requires certFile and keyFile")
	}

	server.TLSConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	return nil
}

// displayServerInfo logs the effective server configuration
func (s *Server) displayServerInfo() {
	s.Logger.Info("Server configuration",
		"address", fmt.Sprintf("%s:%s", s.Host, s.Port),
		"tls_mode", s.TLSConfig.Mode,
		"auth_enabled", len(s.APIKeys) > 0,
		"rate_limit_enabled", s.RateLimit != nil && s.RateLimit.Enabled,
		"storage_enabled", s.history != nil,
		"catalog_watch", s.AppConfig.Catalog.Watch,
		"roles", s.catalog.Current().Len())
}

// startWithGracefulShutdown starts the HTTP server and shuts it down
// cleanly when ctx is cancelled
func (s *Server) startWithGracefulShutdown(ctx context.Context, server *http.Server) error {
	serverErrors := make(chan error, 1)

	go func() {
		s.Logger.Info("Starting HTTP server",
			"address", server.Addr,
			"tls_enabled", server.TLSConfig != nil)

		var err error
		if server.TLSConfig != nil {
			err = server.ListenAndServeTLS(s.TLSConfig.CertFile, s.TLSConfig.KeyFile)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.Logger.Info("Received shutdown signal, starting graceful shutdown")
		return s.performGracefulShutdown(server)
	}
}

// performGracefulShutdown handles the graceful shutdown process
func (s *Server) performGracefulShutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Clean up rate limiter if enabled
	s.cleanupRateLimiter()

	s.Logger.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		return server.Close()
	}

	s.Logger.Info("Server shutdown completed successfully")
	return nil
}

// cleanupRateLimiter cleans up the rate limiter resources
func (s *Server) cleanupRateLimiter() {
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
		s.Logger.Info("Rate limiter cleaned up")
	}
}
