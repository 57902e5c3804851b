// Package authz decides whether a board role permits an action. The
// decision is a pure function of (role, action); resolving the caller's role
// is done by the mutation engine inside the same store transaction as the
// write, so a revoked role can never slip through between check and commit.
package authz

import (
	"kanbanbox-be/internal/models"
)

// Action names a board-scoped intent the caller wants authorized.
type Action string

const (
	ActionViewBoard Action = "view_board"

	ActionCreateList  Action = "create_list"
	ActionRenameList  Action = "rename_list"
	ActionMoveList    Action = "move_list"
	ActionArchiveList Action = "archive_list"
	ActionDeleteList  Action = "delete_list"

	ActionCreateCard  Action = "create_card"
	ActionUpdateCard  Action = "update_card"
	ActionMoveCard    Action = "move_card"
	ActionArchiveCard Action = "archive_card"
	ActionDeleteCard  Action = "delete_card"

	ActionRenameBoard  Action = "rename_board"
	ActionArchiveBoard Action = "archive_board"
	ActionDeleteBoard  Action = "delete_board"

	ActionManageMembers     Action = "manage_members"
	ActionTransferOwnership Action = "transfer_ownership"

	ActionManageLabels Action = "manage_labels"
	ActionAttachLabel  Action = "attach_label"
	ActionAddComment   Action = "add_comment"
)

// minRole is the weakest role allowed to perform each action. Roles are a
// strict hierarchy, so "member" here means member, admin and owner.
var minRole = map[Action]models.Role{
	ActionViewBoard: models.RoleMember,

	ActionCreateList:  models.RoleMember,
	ActionRenameList:  models.RoleMember,
	ActionMoveList:    models.RoleMember,
	ActionArchiveList: models.RoleMember,
	ActionDeleteList:  models.RoleAdmin,

	ActionCreateCard:  models.RoleMember,
	ActionUpdateCard:  models.RoleMember,
	ActionMoveCard:    models.RoleMember,
	ActionArchiveCard: models.RoleMember,
	ActionDeleteCard:  models.RoleAdmin,

	ActionRenameBoard:  models.RoleAdmin,
	ActionArchiveBoard: models.RoleAdmin,
	ActionDeleteBoard:  models.RoleOwner,

	ActionManageMembers:     models.RoleAdmin,
	ActionTransferOwnership: models.RoleOwner,

	ActionManageLabels: models.RoleAdmin,
	ActionAttachLabel:  models.RoleMember,
	ActionAddComment:   models.RoleMember,
}

// Allowed reports whether the role's rank reaches the action's minimum.
// Unknown actions are denied.
func Allowed(role models.Role, action Action) bool {
	min, ok := minRole[action]
	if !ok {
		return false
	}
	return role.Rank() >= min.Rank()
}

// CanRead reports whether the caller may read the board. Members always can;
// non-members only through board visibility: public boards are readable by
// anyone, org boards by callers whose verified org matches.
func CanRead(board *models.Board, role models.Role, id models.Identity) bool {
	if role.Rank() >= models.RoleMember.Rank() {
		return true
	}
	switch board.Visibility {
	case models.VisibilityPublic:
		return true
	case models.VisibilityOrg:
		return id.OrgID != "" && id.OrgID == board.OrgID
	}
	return false
}
