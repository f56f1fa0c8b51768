// Package errs defines custom error types and utilities.
//
// Its purpose is to give every failure a client-facing HTTP status and a
// fixed, human-readable message, while keeping the underlying cause for
// server-side logs only.
package errs
