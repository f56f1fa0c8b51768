// Package server holds the process-wide dependencies of the book service and
// runs its HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/deppfellow/book-inventory/internal/config"
	"github.com/deppfellow/book-inventory/internal/database"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/book-inventory/internal/logger"
)

// DefaultShutdownTimeout bounds how long Run waits for in-flight requests.
const DefaultShutdownTimeout = 30 * time.Second

// Server is shared by repositories, handlers and middleware. DB is opened once
// in New and may be nil in tests that never touch the store.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database

	httpServer *http.Server
	listener   net.Listener
}

// New connects to the document store and returns a Server ready for
// SetupHTTPServer.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// SetupHTTPServer wraps handler in an http.Server using the configured port
// and timeouts (whole seconds).
func (s *Server) SetupHTTPServer(handler http.Handler) {
	srv := s.Config.Server
	s.httpServer = &http.Server{
		Addr:         ":" + srv.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(srv.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(srv.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(srv.IdleTimeout) * time.Second,
	}
}

// Listen binds the configured address. Start calls it when needed; calling it
// first lets the caller learn the bound address, e.g. for port "0".
func (s *Server) Listen() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}
	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or "" before Listen.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start serves until Shutdown. A clean shutdown returns nil.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.Logger.Info().
		Str("addr", s.Addr()).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
// with the given timeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			s.Logger.Error().Err(err).Msg("server stopped unexpectedly")
			return errors.Join(err, s.Shutdown(context.Background()))
		}
		return s.Shutdown(context.Background())
	case <-ctx.Done():
		s.Logger.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serveErr
}

// Shutdown drains the HTTP server, disconnects the store and flushes New
// Relic. Every step runs even if an earlier one fails.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	s.LoggerService.Shutdown()

	return errors.Join(errs...)
}
