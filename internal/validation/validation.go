// Package validation contains the logic for binding and validating
// request data.
//
// It uses the `validator` library to enforce rules (like required
// fields or identifier formats) defined in struct tags and extracts
// validation errors into a format that is readable in logs
package validation
