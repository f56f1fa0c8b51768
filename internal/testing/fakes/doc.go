// Package fakes provides in-memory stand-ins for the store gateway.
//
// Books mirrors the repository contract: identifiers are parsed the same
// way, not found is reported through booleans, and errors are classified
// store errors. Any operation can be made to fail:
//
//	books := fakes.NewBooks()
//	books.FailWith(repository.OpList, errors.New("connection refused"))
package fakes
