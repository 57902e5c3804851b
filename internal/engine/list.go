package engine

import (
	"context"
	"time"

	"kanbanbox-be/internal/authz"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/store"
)

// CreateList inserts a list at the requested position among the board's
// lists. The neighbor keys are read in the same transaction as the write.
func (e *Engine) CreateList(ctx context.Context, id models.Identity, boardID, title string, pos models.Position) (*models.List, error) {
	if !pos.Valid() {
		return nil, errf(KindInvalidPosition, "malformed position")
	}
	var out *models.List
	err := e.inBoardTx(ctx, id, boardID, authz.ActionCreateList, func(ctx context.Context, tx store.Tx, board *models.Board, _ models.Role) error {
		lists, err := tx.Lists(ctx, boardID)
		if err != nil {
			return err
		}
		slots := listSlots(lists)
		key, err := allocateKey(slots, pos, "", func(i int, k int64) error {
			lists[i].Order = k
			return tx.PutList(ctx, lists[i])
		})
		if err != nil {
			return err
		}
		now := time.Now()
		out = &models.List{
			ID:        newID(),
			BoardID:   boardID,
			Title:     title,
			Order:     key,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.PutList(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// inListTx loads the list, then delegates to inBoardTx for the owning board
// so the authorization read shares the transaction.
func (e *Engine) inListTx(ctx context.Context, id models.Identity, listID string, action authz.Action, fn func(ctx context.Context, tx store.Tx, board *models.Board, list *models.List) error) error {
	err := e.store.WithTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		list, err := tx.List(ctx, listID)
		if err != nil {
			return err
		}
		board, err := tx.Board(ctx, list.BoardID)
		if err != nil {
			return err
		}
		role, err := roleOf(ctx, tx, board.ID, id.UserID)
		if err != nil {
			return err
		}
		if !authz.Allowed(role, action) {
			return errf(KindForbidden, "role %q may not %s", role, action)
		}
		return fn(ctx, tx, board, list)
	})
	return translate(err)
}

func (e *Engine) RenameList(ctx context.Context, id models.Identity, listID, title string) (*models.List, error) {
	var out *models.List
	err := e.inListTx(ctx, id, listID, authz.ActionRenameList, func(ctx context.Context, tx store.Tx, _ *models.Board, list *models.List) error {
		list.Title = title
		list.UpdatedAt = time.Now()
		out = list
		return tx.PutList(ctx, list)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MoveList repositions a list among its board's lists. Moving to a position
// already satisfied by the current key is a no-op.
func (e *Engine) MoveList(ctx context.Context, id models.Identity, listID string, pos models.Position) (*models.List, error) {
	if !pos.Valid() {
		return nil, errf(KindInvalidPosition, "malformed position")
	}
	var out *models.List
	err := e.inListTx(ctx, id, listID, authz.ActionMoveList, func(ctx context.Context, tx store.Tx, board *models.Board, list *models.List) error {
		lists, err := tx.Lists(ctx, board.ID)
		if err != nil {
			return err
		}
		slots := listSlots(lists)
		before, after, err := neighbors(slots, pos, list.ID)
		if err != nil {
			return err
		}
		if satisfied(list.Order, before, after) {
			out = list
			return nil
		}
		key, err := allocateKey(slots, pos, list.ID, func(i int, k int64) error {
			lists[i].Order = k
			if lists[i].ID == list.ID {
				list.Order = k
			}
			return tx.PutList(ctx, lists[i])
		})
		if err != nil {
			return err
		}
		list.Order = key
		list.UpdatedAt = time.Now()
		out = list
		return tx.PutList(ctx, list)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) ArchiveList(ctx context.Context, id models.Identity, listID string) (*models.List, error) {
	var out *models.List
	err := e.inListTx(ctx, id, listID, authz.ActionArchiveList, func(ctx context.Context, tx store.Tx, _ *models.Board, list *models.List) error {
		if !list.Archived {
			list.Archived = true
			list.UpdatedAt = time.Now()
			if err := tx.PutList(ctx, list); err != nil {
				return err
			}
		}
		out = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteList cascades to the list's cards and their comments.
func (e *Engine) DeleteList(ctx context.Context, id models.Identity, listID string) error {
	return e.inListTx(ctx, id, listID, authz.ActionDeleteList, func(ctx context.Context, tx store.Tx, _ *models.Board, list *models.List) error {
		return tx.DeleteList(ctx, list.ID)
	})
}
