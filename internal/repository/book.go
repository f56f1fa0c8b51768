package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/book-inventory/internal/model"
	"github.com/deppfellow/book-inventory/internal/storeerr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Operation names attached to classified store errors.
const (
	OpList   = "list"
	OpFind   = "find"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
	OpCount  = "count"
)

// BookRepository is the gateway to the books collection.
//
// Not found is never an error here: lookups report it through a boolean.
// Errors are always *storeerr.Error.
type BookRepository struct {
	collection *mongo.Collection
}

// NewBookRepository wraps an existing collection handle.
func NewBookRepository(collection *mongo.Collection) *BookRepository {
	return &BookRepository{collection: collection}
}

// ParseID converts a hex identifier into an ObjectID.
func ParseID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, storeerr.NewInvalidIdentifier(op, id, err)
	}
	return oid, nil
}

// ListAll returns every book in storage order. An empty collection yields
// an empty, non-nil slice.
func (r *BookRepository) ListAll(ctx context.Context) ([]model.Book, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, storeerr.Classify(OpList, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeerr.Classify(OpList, err)
	}

	books := make([]model.Book, 0, len(docs))
	for _, doc := range docs {
		book, err := model.BookFromDocument(doc)
		if err != nil {
			return nil, storeerr.Classify(OpList, err)
		}
		books = append(books, book)
	}

	return books, nil
}

// FindByID returns the book with the given identifier.
// found is false when no document matches.
func (r *BookRepository) FindByID(ctx context.Context, id string) (book model.Book, found bool, err error) {
	oid, err := ParseID(OpFind, id)
	if err != nil {
		return model.Book{}, false, err
	}

	var doc bson.M
	err = r.collection.FindOne(ctx, bson.M{model.IDField: oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Book{}, false, nil
	}
	if err != nil {
		return model.Book{}, false, storeerr.Classify(OpFind, err)
	}

	book, err = model.BookFromDocument(doc)
	if err != nil {
		return model.Book{}, false, storeerr.Classify(OpFind, err)
	}

	return book, true, nil
}

// Insert stores fields as a new document under a freshly generated identifier.
// A caller-supplied identifier is discarded. acknowledged follows the
// collection's write concern; an unacknowledged write (w=0) is not an error.
func (r *BookRepository) Insert(ctx context.Context, fields map[string]interface{}) (book model.Book, acknowledged bool, err error) {
	book = model.NewBook(primitive.NewObjectID(), fields)

	_, err = r.collection.InsertOne(ctx, book.Document())
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return book, false, nil
	}
	if err != nil {
		return model.Book{}, false, storeerr.Classify(OpInsert, err)
	}

	return book, r.collection.WriteConcern().Acknowledged(), nil
}

// UpdateByID merges fields into the matching document with $set.
// Fields absent from the update keep their stored values.
//
// matched is false when no document has the identifier. An update with no
// fields left after dropping the identifier only checks for existence.
func (r *BookRepository) UpdateByID(ctx context.Context, id string, fields map[string]interface{}) (matched bool, err error) {
	oid, err := ParseID(OpUpdate, id)
	if err != nil {
		return false, err
	}

	set := model.WithoutID(fields)
	if len(set) == 0 {
		return r.exists(ctx, OpUpdate, oid)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{model.IDField: oid}, bson.M{"$set": set})
	if err != nil {
		return false, storeerr.Classify(OpUpdate, err)
	}

	return result.MatchedCount > 0, nil
}

// DeleteByID removes the matching document.
// deleted is false when no document has the identifier.
func (r *BookRepository) DeleteByID(ctx context.Context, id string) (deleted bool, err error) {
	oid, err := ParseID(OpDelete, id)
	if err != nil {
		return false, err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{model.IDField: oid})
	if err != nil {
		return false, storeerr.Classify(OpDelete, err)
	}

	return result.DeletedCount > 0, nil
}

// Count returns the number of stored books.
//
// CountDocuments runs an aggregation, which the strict server API allows;
// the legacy count command it would otherwise use is not part of API v1.
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, storeerr.Classify(OpCount, err)
	}
	return n, nil
}

func (r *BookRepository) exists(ctx context.Context, op string, oid primitive.ObjectID) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{model.IDField: 1})

	err := r.collection.FindOne(ctx, bson.M{model.IDField: oid}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, storeerr.Classify(op, err)
	}
	return true, nil
}
