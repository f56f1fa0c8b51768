// Package middleware holds the functions that intercept HTTP requests
// before they reach the handlers.
//
// It covers request correlation ids, the request-scoped logger,
// access logging, CORS, panic recovery, secure headers, New Relic
// tracing, and the global error handler that shapes every error
// response
package middleware
