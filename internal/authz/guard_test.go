package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kanbanbox-be/internal/models"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name   string
		role   models.Role
		action Action
		want   bool
	}{
		{"member creates card", models.RoleMember, ActionCreateCard, true},
		{"member moves list", models.RoleMember, ActionMoveList, true},
		{"member cannot delete card", models.RoleMember, ActionDeleteCard, false},
		{"member cannot rename board", models.RoleMember, ActionRenameBoard, false},
		{"member cannot manage members", models.RoleMember, ActionManageMembers, false},
		{"admin deletes list", models.RoleAdmin, ActionDeleteList, true},
		{"admin renames board", models.RoleAdmin, ActionRenameBoard, true},
		{"admin cannot delete board", models.RoleAdmin, ActionDeleteBoard, false},
		{"admin cannot transfer ownership", models.RoleAdmin, ActionTransferOwnership, false},
		{"owner deletes board", models.RoleOwner, ActionDeleteBoard, true},
		{"owner transfers ownership", models.RoleOwner, ActionTransferOwnership, true},
		{"non-member denied everything", models.RoleNone, ActionViewBoard, false},
		{"unknown action denied", models.RoleOwner, Action("format_disk"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.action))
		})
	}
}

// Higher roles must be able to do everything lower roles can.
func TestRoleHierarchy(t *testing.T) {
	ladder := []models.Role{models.RoleNone, models.RoleMember, models.RoleAdmin, models.RoleOwner}
	for action := range minRole {
		for i := 0; i+1 < len(ladder); i++ {
			if Allowed(ladder[i], action) {
				assert.True(t, Allowed(ladder[i+1], action),
					"%s allowed for %s but not for %s", action, ladder[i], ladder[i+1])
			}
		}
	}
}

func TestCanRead(t *testing.T) {
	private := &models.Board{Visibility: models.VisibilityPrivate}
	public := &models.Board{Visibility: models.VisibilityPublic}
	org := &models.Board{Visibility: models.VisibilityOrg, OrgID: "acme"}

	tests := []struct {
		name  string
		board *models.Board
		role  models.Role
		id    models.Identity
		want  bool
	}{
		{"member reads private", private, models.RoleMember, models.Identity{}, true},
		{"owner reads private", private, models.RoleOwner, models.Identity{}, true},
		{"stranger blocked from private", private, models.RoleNone, models.Identity{UserID: "u1"}, false},
		{"stranger reads public", public, models.RoleNone, models.Identity{UserID: "u1"}, true},
		{"same org reads org board", org, models.RoleNone, models.Identity{UserID: "u1", OrgID: "acme"}, true},
		{"other org blocked", org, models.RoleNone, models.Identity{UserID: "u1", OrgID: "globex"}, false},
		{"no org blocked from org board", org, models.RoleNone, models.Identity{UserID: "u1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanRead(tt.board, tt.role, tt.id))
		})
	}
}
