// Package repository handles all interactions with the document store.
//
// It wraps the books collection and exposes single-document operations,
// translating driver results into explicit (value, found, error) returns
// so the service layer never has to inspect driver errors.
package repository
