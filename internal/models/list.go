package models

import "time"

type List struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	BoardID   string    `json:"boardId" bson:"boardId"`
	Title     string    `json:"title" bson:"title"`
	Order     int64     `json:"order" bson:"order"`
	Archived  bool      `json:"archived" bson:"archived"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateListRequest struct {
	Title    string   `json:"title" binding:"required"`
	Position Position `json:"position"`
}

type MoveListRequest struct {
	Position Position `json:"position" binding:"required"`
}
