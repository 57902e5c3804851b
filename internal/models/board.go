package models

import (
	"time"
)

// Visibility controls who can read a board without a membership.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityOrg     Visibility = "org"
	VisibilityPublic  Visibility = "public"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityOrg, VisibilityPublic:
		return true
	}
	return false
}

type Board struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	Title      string     `json:"title" bson:"title"`
	Visibility Visibility `json:"visibility" bson:"visibility"`
	OwnerID    string     `json:"ownerId" bson:"ownerId"`
	OrgID      string     `json:"orgId,omitempty" bson:"orgId,omitempty"`
	Archived   bool       `json:"archived" bson:"archived"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty" bson:"archivedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type CreateBoardRequest struct {
	Title      string `json:"title" binding:"required"`
	Visibility string `json:"visibility"`
}

type RenameRequest struct {
	Title string `json:"title" binding:"required"`
}

// BoardView is the full board read shape: lists in display order, each with
// its cards in display order.
type BoardView struct {
	Board *Board      `json:"board"`
	Lists []*ListView `json:"lists"`
}

type ListView struct {
	List  *List   `json:"list"`
	Cards []*Card `json:"cards"`
}
