// Package model holds the types exchanged between the store, the service
// layer, and HTTP clients.
package model

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the document key holding the store-assigned identifier.
const IDField = "_id"

// Book is a schema-less document with a store-assigned identifier.
//
// Fields never contains IDField; the identifier lives in ID so it cannot be
// overwritten by caller-supplied data. Documents written outside the service
// may carry a non-ObjectID identifier; it is kept in ForeignID and ID stays
// zero.
type Book struct {
	ID        primitive.ObjectID
	ForeignID interface{}
	Fields    map[string]interface{}
}

// NewBook builds a Book from caller fields, dropping any IDField entry.
func NewBook(id primitive.ObjectID, fields map[string]interface{}) Book {
	return Book{ID: id, Fields: WithoutID(fields)}
}

// BookFromDocument projects the identifier out of a stored document.
func BookFromDocument(doc bson.M) (Book, error) {
	raw, ok := doc[IDField]
	if !ok {
		return Book{}, fmt.Errorf("document has no %s field", IDField)
	}

	var book Book
	if id, ok := raw.(primitive.ObjectID); ok {
		book.ID = id
	} else {
		book.ForeignID = normalize(raw)
	}

	fields := make(map[string]interface{}, len(doc)-1)
	for key, value := range doc {
		if key == IDField {
			continue
		}
		fields[key] = normalize(value)
	}

	book.Fields = fields
	return book, nil
}

// identifier returns the stored form of the book's identifier.
func (b Book) identifier() interface{} {
	if b.ForeignID != nil {
		return b.ForeignID
	}
	return b.ID
}

// Document returns the stored form of the book, identifier included.
func (b Book) Document() bson.M {
	doc := make(bson.M, len(b.Fields)+1)
	for key, value := range b.Fields {
		doc[key] = value
	}
	doc[IDField] = b.identifier()
	return doc
}

// MarshalJSON renders the book as a flat object with "_id" as a hex string,
// or as stored for a foreign identifier.
func (b Book) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(b.Fields)+1)
	for key, value := range b.Fields {
		out[key] = value
	}
	if b.ForeignID != nil {
		out[IDField] = b.ForeignID
	} else {
		out[IDField] = b.ID.Hex()
	}
	return json.Marshal(out)
}

// WithoutID returns a copy of fields without the identifier key.
// A nil map yields an empty, non-nil map.
func WithoutID(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		if key == IDField {
			continue
		}
		out[key] = value
	}
	return out
}

// normalize turns driver container types into plain maps and slices so
// nested values serialize as JSON objects and arrays.
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case primitive.D:
		out := make(map[string]interface{}, len(v))
		for _, elem := range v {
			out[elem.Key] = normalize(elem.Value)
		}
		return out
	case primitive.M:
		out := make(map[string]interface{}, len(v))
		for key, elem := range v {
			out[key] = normalize(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, elem := range v {
			out[key] = normalize(elem)
		}
		return out
	case primitive.A:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = normalize(elem)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = normalize(elem)
		}
		return out
	default:
		return value
	}
}
