// Package handler turns HTTP requests into book service calls.
//
// Each route declares a request type that binds and validates itself; Handle
// runs it through the shared pipeline and writes the JSON result.
package handler
