package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// InsertResult is the summary returned after a book is stored.
// Acknowledged is false when the collection's write concern is w=0.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// MessageResponse is the body of every non-document response.
type MessageResponse struct {
	Message string `json:"message"`
}
