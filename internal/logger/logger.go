// Package logger builds the zerolog root logger and the optional New Relic
// application it forwards logs and traces to.
package logger
