package models

import "time"

// Role is a board-scoped capability level. Higher roles hold every
// permission of the roles below them.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	// RoleNone marks a caller without a membership row.
	RoleNone Role = ""
)

// Rank orders roles for capability comparison. RoleNone ranks below all.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	}
	return 0
}

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleMember
}

// Membership ties a user to a board with a role. (userId, boardId) is unique.
type Membership struct {
	UserID    string    `json:"userId" bson:"userId"`
	BoardID   string    `json:"boardId" bson:"boardId"`
	Role      Role      `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type SetMemberRoleRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// Identity is the verified caller handed to the core by the auth boundary.
type Identity struct {
	UserID string
	OrgID  string
}
