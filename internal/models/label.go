package models

type Label struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	BoardID string `json:"boardId" bson:"boardId"`
	Name    string `json:"name" bson:"name"`
	Color   string `json:"color,omitempty" bson:"color,omitempty"`
}

type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}
