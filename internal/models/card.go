package models

import "time"

type Card struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	ListID      string     `json:"listId" bson:"listId"`
	BoardID     string     `json:"boardId" bson:"boardId"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Order       int64      `json:"order" bson:"order"`
	DueDate     *time.Time `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	LabelIDs    []string   `json:"labelIds" bson:"labelIds"`
	Archived    bool       `json:"archived" bson:"archived"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type CreateCardRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Position    Position `json:"position"`
}

type UpdateCardRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

type MoveCardRequest struct {
	TargetListID string   `json:"targetListId" binding:"required"`
	Position     Position `json:"position" binding:"required"`
}
