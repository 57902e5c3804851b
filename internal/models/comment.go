package models

import "time"

// Comment is append-only: created, never edited or moved.
type Comment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	CardID    string    `json:"cardId" bson:"cardId"`
	AuthorID  string    `json:"authorId" bson:"authorId"`
	Body      string    `json:"body" bson:"body"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type AddCommentRequest struct {
	Body string `json:"body" binding:"required"`
}
