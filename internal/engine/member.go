package engine

import (
	"context"
	"errors"
	"time"

	"kanbanbox-be/internal/authz"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/store"
)

// Members lists a board's memberships. Requires membership (or readable
// visibility is not enough: the roster is member-only).
func (e *Engine) Members(ctx context.Context, id models.Identity, boardID string) ([]*models.Membership, error) {
	var out []*models.Membership
	err := e.inBoardTx(ctx, id, boardID, authz.ActionViewBoard, func(ctx context.Context, tx store.Tx, _ *models.Board, _ models.Role) error {
		ms, err := tx.Memberships(ctx, boardID)
		if err != nil {
			return err
		}
		out = ms
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetMemberRole assigns a role, creating the membership if absent.
// Admins may grant member/admin; only the owner may grant owner, which is a
// transfer: the previous owner is demoted to admin in the same transaction,
// so the board keeps exactly one owner. Demoting the sole owner directly
// fails LastOwnerViolation.
func (e *Engine) SetMemberRole(ctx context.Context, id models.Identity, boardID, targetUserID string, role models.Role) (*models.Membership, error) {
	if !role.Valid() {
		return nil, errf(KindInvalidArgument, "unknown role %q", role)
	}
	action := authz.ActionManageMembers
	if role == models.RoleOwner {
		action = authz.ActionTransferOwnership
	}
	var out *models.Membership
	err := e.inBoardTx(ctx, id, boardID, action, func(ctx context.Context, tx store.Tx, board *models.Board, _ models.Role) error {
		now := time.Now()
		target, err := tx.Membership(ctx, boardID, targetUserID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			target = &models.Membership{UserID: targetUserID, BoardID: boardID, CreatedAt: now}
		}

		if target.Role == role {
			out = target
			return nil
		}

		if target.Role == models.RoleOwner {
			// Demoting an owner is only legal while another owner remains.
			owners, err := countOwners(ctx, tx, boardID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return errf(KindLastOwnerViolation, "board %s would be left without an owner", boardID)
			}
		}

		if role == models.RoleOwner {
			// Transfer: demote every current owner to admin.
			ms, err := tx.Memberships(ctx, boardID)
			if err != nil {
				return err
			}
			for _, m := range ms {
				if m.Role == models.RoleOwner && m.UserID != targetUserID {
					m.Role = models.RoleAdmin
					m.UpdatedAt = now
					if err := tx.PutMembership(ctx, m); err != nil {
						return err
					}
				}
			}
			board.OwnerID = targetUserID
			board.UpdatedAt = now
			if err := tx.PutBoard(ctx, board); err != nil {
				return err
			}
		}

		target.Role = role
		target.UpdatedAt = now
		out = target
		return tx.PutMembership(ctx, target)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveMember deletes a membership. Admins may remove anyone below owner;
// any member may remove themselves. Removing the sole owner fails
// LastOwnerViolation.
func (e *Engine) RemoveMember(ctx context.Context, id models.Identity, boardID, targetUserID string) error {
	action := authz.ActionManageMembers
	if id.UserID == targetUserID {
		// Leaving a board needs no admin rights.
		action = authz.ActionViewBoard
	}
	return e.inBoardTx(ctx, id, boardID, action, func(ctx context.Context, tx store.Tx, _ *models.Board, _ models.Role) error {
		target, err := tx.Membership(ctx, boardID, targetUserID)
		if err != nil {
			return err
		}
		if target.Role == models.RoleOwner {
			owners, err := countOwners(ctx, tx, boardID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return errf(KindLastOwnerViolation, "board %s would be left without an owner", boardID)
			}
		}
		return tx.DeleteMembership(ctx, boardID, targetUserID)
	})
}

func countOwners(ctx context.Context, tx store.Tx, boardID string) (int, error) {
	ms, err := tx.Memberships(ctx, boardID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range ms {
		if m.Role == models.RoleOwner {
			n++
		}
	}
	return n, nil
}
