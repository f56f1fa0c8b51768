package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// newCommandLogger returns a command monitor that logs every store command.
//
// Started and succeeded commands are logged at debug level. Commands slower
// than slowThreshold, and failed commands, are logged at warn level.
// A zero threshold disables slow command reporting.
func newCommandLogger(logger *zerolog.Logger, slowThreshold time.Duration) *event.CommandMonitor {
	storeLogger := logger.With().Str("component", "mongo").Logger()

	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			storeLogger.Debug().
				Str("command", evt.CommandName).
				Str("database", evt.DatabaseName).
				Int64("request_id", evt.RequestID).
				Msg("store command started")
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			e := storeLogger.Debug()
			if slowThreshold > 0 && evt.Duration > slowThreshold {
				e = storeLogger.Warn().Bool("slow", true)
			}
			e.Str("command", evt.CommandName).
				Int64("request_id", evt.RequestID).
				Dur("duration", evt.Duration).
				Msg("store command succeeded")
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			storeLogger.Warn().
				Str("command", evt.CommandName).
				Int64("request_id", evt.RequestID).
				Dur("duration", evt.Duration).
				Str("failure", evt.Failure).
				Msg("store command failed")
		},
	}
}
