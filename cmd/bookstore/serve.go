package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/book-inventory/internal/handler"
	"github.com/deppfellow/book-inventory/internal/repository"
	"github.com/deppfellow/book-inventory/internal/router"
	"github.com/deppfellow/book-inventory/internal/server"
	"github.com/deppfellow/book-inventory/internal/service"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return err
	}

	repos := repository.NewRepositories(srv)
	services := service.NewService(repos)
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, server.DefaultShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		return err
	}

	log.Info().Msg("server exited")
	return nil
}
