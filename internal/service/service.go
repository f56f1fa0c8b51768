// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, applies the book rules,
// and calls the collection gateway to interact with the data
package service
