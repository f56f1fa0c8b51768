package fakes

import (
	"context"
	"sync"

	"github.com/deppfellow/book-inventory/internal/model"
	"github.com/deppfellow/book-inventory/internal/repository"
	"github.com/deppfellow/book-inventory/internal/storeerr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Books is an in-memory book gateway, safe for concurrent use.
type Books struct {
	mu       sync.Mutex
	order    []primitive.ObjectID
	docs     map[primitive.ObjectID]map[string]interface{}
	failures map[string]error
	unacked  bool
}

func NewBooks() *Books {
	return &Books{
		docs:     make(map[primitive.ObjectID]map[string]interface{}),
		failures: make(map[string]error),
	}
}

// FailWith makes every later call of op return err, classified.
func (b *Books) FailWith(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = err
}

// Unacknowledged makes later inserts report unacknowledged writes, as a
// collection with w=0 does.
func (b *Books) Unacknowledged() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unacked = true
}

// Seed stores fields directly and returns the assigned identifier.
func (b *Books) Seed(fields map[string]interface{}) primitive.ObjectID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insert(fields)
}

// Len returns the number of stored books.
func (b *Books) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.docs)
}

func (b *Books) ListAll(ctx context.Context) ([]model.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(repository.OpList); err != nil {
		return nil, err
	}

	books := make([]model.Book, 0, len(b.order))
	for _, id := range b.order {
		books = append(books, model.NewBook(id, copyFields(b.docs[id])))
	}
	return books, nil
}

func (b *Books) FindByID(ctx context.Context, id string) (model.Book, bool, error) {
	oid, err := repository.ParseID(repository.OpFind, id)
	if err != nil {
		return model.Book{}, false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(repository.OpFind); err != nil {
		return model.Book{}, false, err
	}

	fields, ok := b.docs[oid]
	if !ok {
		return model.Book{}, false, nil
	}
	return model.NewBook(oid, copyFields(fields)), true, nil
}

func (b *Books) Insert(ctx context.Context, fields map[string]interface{}) (model.Book, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(repository.OpInsert); err != nil {
		return model.Book{}, false, err
	}

	id := b.insert(fields)
	return model.NewBook(id, copyFields(b.docs[id])), !b.unacked, nil
}

func (b *Books) UpdateByID(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	oid, err := repository.ParseID(repository.OpUpdate, id)
	if err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(repository.OpUpdate); err != nil {
		return false, err
	}

	stored, ok := b.docs[oid]
	if !ok {
		return false, nil
	}
	for key, value := range model.WithoutID(fields) {
		stored[key] = value
	}
	return true, nil
}

func (b *Books) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := repository.ParseID(repository.OpDelete, id)
	if err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.failure(repository.OpDelete); err != nil {
		return false, err
	}

	if _, ok := b.docs[oid]; !ok {
		return false, nil
	}

	delete(b.docs, oid)
	for i, stored := range b.order {
		if stored == oid {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (b *Books) insert(fields map[string]interface{}) primitive.ObjectID {
	id := primitive.NewObjectID()
	b.docs[id] = copyFields(model.WithoutID(fields))
	b.order = append(b.order, id)
	return id
}

func (b *Books) failure(op string) error {
	if err, ok := b.failures[op]; ok {
		return storeerr.Classify(op, err)
	}
	return nil
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		out[key] = value
	}
	return out
}
