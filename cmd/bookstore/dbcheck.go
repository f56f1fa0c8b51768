package main

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/book-inventory/internal/database"
	"github.com/deppfellow/book-inventory/internal/repository"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var dbcheckTimeout time.Duration

var dbcheckCmd = &cobra.Command{
	Use:   "dbcheck",
	Short: "Check the store connection and count stored books",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		db, err := database.New(cfg, &log, loggerService)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), dbcheckTimeout)
		defer cancel()

		start := time.Now()
		if err := db.Ping(ctx); err != nil {
			return errors.Wrap(err, "ping failed")
		}
		pingTime := time.Since(start)

		count, err := repository.NewBookRepository(db.Books()).Count(ctx)
		if err != nil {
			return errors.Wrap(err, "count failed")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database:   %s\n", cfg.Database.Name)
		fmt.Fprintf(out, "Collection: %s\n", cfg.Database.Collection)
		fmt.Fprintf(out, "Ping:       %s\n", pingTime.Round(time.Millisecond))
		fmt.Fprintf(out, "Books:      %d\n", count)

		return nil
	},
}

func init() {
	dbcheckCmd.Flags().DurationVar(&dbcheckTimeout, "timeout", 10*time.Second, "timeout for the ping and count")
}
