package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/config"
	"github.com/autopdf/autopdf/internal/generate"
	"github.com/autopdf/autopdf/internal/home"
	"github.com/autopdf/autopdf/internal/render"
	"github.com/autopdf/autopdf/internal/server/endpoints"
	"github.com/autopdf/autopdf/internal/svcctx"
	"github.com/autopdf/autopdf/internal/usage"
)

// Server is the main autopdf HTTP server.
// It owns the generator and the usage counters, loading the counters on
// start and saving them on shutdown.
type Server struct {
	httpServer *http.Server
	generator  *generate.Service
	writer     *render.Writer
	usage      *usage.Store
	configMgr  *config.Manager
	logger     *slog.Logger

	services         *svcctx.Services // attached to every request
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
	ready   bool
}

// Config is what New needs. Zero values fall back to 127.0.0.1:8080, the
// built-in defaults and slog.Default.
type Config struct {
	Host string
	Port string

	// Home is where usage counters are persisted. Nil keeps them in memory.
	Home *home.Dir

	// ConfigManager feeds layout settings to the generator on every reload.
	ConfigManager *config.Manager

	Logger *slog.Logger
}

// New wires the generator, PDF writer and usage store. It validates the
// starting configuration but does not listen.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	appCfg := config.DefaultConfig()
	if cfg.ConfigManager != nil {
		appCfg = cfg.ConfigManager.Get()
	}
	if err := appCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	statsPath := ""
	if cfg.Home != nil {
		statsPath = cfg.Home.StatsPath()
	}
	store := usage.NewStore(statsPath)

	s := &Server{
		generator: generate.New(generate.Config{
			Settings: appCfg.GeneratorSettings(),
			Observer: store,
			Logger:   cfg.Logger,
		}),
		writer: render.NewWriter(render.Config{
			FontPath: appCfg.Render.FontPath,
			Logger:   cfg.Logger,
		}),
		usage:     store,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}

	// Layout settings follow the config file; the font is read once.
	if cfg.ConfigManager != nil {
		cfg.ConfigManager.OnChange(func(c *config.Config) {
			s.generator.Update(c.GeneratorSettings())
			cfg.Logger.Info("generator reloaded from config")
		})
	}

	s.services = &svcctx.Services{
		Generator:     s.generator,
		Writer:        s.writer,
		Usage:         s.usage,
		ConfigManager: cfg.ConfigManager,
		Logger:        cfg.Logger,
		Home:          cfg.Home,
	}

	s.endpointRegistry = endpoints.NewRegistry()

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start loads the usage counters and serves HTTP until ctx is done or the
// listener fails. Either way it shuts down and saves the counters.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.usage.Load(); err != nil {
		s.logger.Warn("failed to load usage counters, starting from zero", "path", s.usage.Path(), "error", err)
	}

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
		}
	}

	return s.shutdown()
}

// shutdown stops the HTTP server and saves the usage counters.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	if err := s.usage.Save(); err != nil {
		s.logger.Error("failed to save usage counters", "path", s.usage.Path(), "error", err)
	}

	s.mu.Lock()
	s.running = false
	s.ready = false
	s.mu.Unlock()

	s.logger.Info("server stopped")
	return nil
}

// IsRunning reports whether Start is in progress.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Generator returns the document generator.
func (s *Server) Generator() *generate.Service {
	return s.generator
}

// Usage returns the usage counters.
func (s *Server) Usage() *usage.Store {
	return s.usage
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Routes lists the HTTP routes the server answers.
func (s *Server) Routes() []api.Route {
	return s.endpointRegistry.Routes()
}

// Handler is the full middleware chain, usable without a listener.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
