// Package database contains the logic for establishing
// connections to the MongoDB document store.
//
// It handles:
//   - building client options from config (server API v1, app name)
//   - wiring command logging (local env) and New Relic (nrmongo) monitors
//   - connecting, pinging, and disconnecting the shared client
package database

import (
	"context"
	"time"

	"github.com/deppfellow/book-inventory/internal/config"
	loggerConfig "github.com/deppfellow/book-inventory/internal/logger"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database wraps the MongoDB client and the database holding the books.
//
// The client is process-wide: it is created once at startup and shared by
// every request. The driver's connection pool makes it safe for concurrent use.
type Database struct {
	Client *mongo.Client

	database   *mongo.Database
	collection string
	log        *zerolog.Logger
}

// DisconnectTimeout bounds how long Close waits for in-flight operations.
const DisconnectTimeout = 10 * time.Second

// New creates a MongoDB client with instrumentation and verifies it with a ping.
//
// Behavior:
//   - In local env: log every command through the app logger
//   - With New Relic: wrap the monitor chain with nrmongo
//   - Connect and ping within database.connect_timeout
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	var monitor *event.CommandMonitor

	// Very noisy, which is why it is only in local.
	if cfg.IsLocal() {
		monitor = newCommandLogger(logger, cfg.Observability.Logging.SlowQueryThreshold)
	}

	// nrmongo calls the wrapped monitor too, so both run when enabled.
	if loggerService.GetApplication() != nil {
		monitor = nrmongo.NewCommandMonitor(monitor)
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	clientOptions := options.Client().
		ApplyURI(cfg.Database.URI).
		SetServerAPIOptions(serverAPI).
		SetAppName(config.ServiceName)

	if monitor != nil {
		clientOptions.SetMonitor(monitor)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create mongo client")
	}

	// Connect is lazy; ping so startup fails fast if the store is down.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping database")
	}

	logger.Info().
		Str("database", cfg.Database.Name).
		Str("collection", cfg.Database.Collection).
		Msg("connected to the database")

	return &Database{
		Client:     client,
		database:   client.Database(cfg.Database.Name),
		collection: cfg.Database.Collection,
		log:        logger,
	}, nil
}

// Books returns the collection holding book documents.
func (db *Database) Books() *mongo.Collection {
	return db.database.Collection(db.collection)
}

// Ping checks that the primary is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting up to DisconnectTimeout.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection")

	ctx, cancel := context.WithTimeout(context.Background(), DisconnectTimeout)
	defer cancel()

	if err := db.Client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, "failed to disconnect database client")
	}
	return nil
}
