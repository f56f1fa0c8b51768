package main

import (
	"github.com/deppfellow/book-inventory/internal/config"
	"github.com/deppfellow/book-inventory/internal/logger"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookstore",
	Short: "Book inventory HTTP service",
	Long: `bookstore serves a JSON CRUD API for schema-less book documents
stored in a MongoDB collection.

Configuration comes from the environment (and a .env file when present).
PORT and MONGODB_URI are honoured; every setting can also be given with the
BOOKSTORE_ prefix, e.g. BOOKSTORE_DATABASE__NAME.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dbcheckCmd)
}

// bootstrap loads config and builds the root logger shared by every command.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Nop(), errors.Wrap(err, "failed to load config")
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, zerolog.Nop(), errors.Wrap(err, "failed to initialize logger service")
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	return cfg, loggerService, log, nil
}
