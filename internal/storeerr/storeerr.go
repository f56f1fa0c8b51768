// Package storeerr specifically handles document store driver errors.
//
// It classifies the errors returned by the MongoDB driver into a small
// set of codes (invalid identifier, store unavailable, command rejected)
// so handlers can branch on them without inspecting driver types.
package storeerr
