package engine

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"kanbanbox-be/internal/authz"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/store"
)

// CreateBoard creates a board owned by the caller, with the owner membership
// written in the same transaction so invariant "a board always has an owner"
// holds from the first commit.
func (e *Engine) CreateBoard(ctx context.Context, id models.Identity, title string, visibility models.Visibility) (*models.Board, error) {
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	if !visibility.Valid() {
		return nil, errf(KindInvalidArgument, "unknown visibility %q", visibility)
	}
	now := time.Now()
	board := &models.Board{
		ID:         newID(),
		Title:      title,
		Visibility: visibility,
		OwnerID:    id.UserID,
		OrgID:      id.OrgID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := e.store.WithTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		if err := tx.PutBoard(ctx, board); err != nil {
			return err
		}
		return tx.PutMembership(ctx, &models.Membership{
			UserID:    id.UserID,
			BoardID:   board.ID,
			Role:      models.RoleOwner,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return nil, translate(err)
	}
	return board, nil
}

// MyBoards returns every board the caller holds a membership on, archived
// ones included so clients can offer an unarchive path.
func (e *Engine) MyBoards(ctx context.Context, id models.Identity) ([]*models.Board, error) {
	var out []*models.Board
	err := e.store.WithTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		ms, err := tx.MembershipsForUser(ctx, id.UserID)
		if err != nil {
			return err
		}
		out = make([]*models.Board, 0, len(ms))
		for _, m := range ms {
			b, err := tx.Board(ctx, m.BoardID)
			if err != nil {
				return err
			}
			out = append(out, b)
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// GetBoard returns the board with its unarchived lists and cards in display
// order. Non-members are admitted only by board visibility and always
// read-only.
func (e *Engine) GetBoard(ctx context.Context, id models.Identity, boardID string) (*models.BoardView, error) {
	var view *models.BoardView
	err := e.store.WithTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		board, err := tx.Board(ctx, boardID)
		if err != nil {
			return err
		}
		role, err := roleOf(ctx, tx, boardID, id.UserID)
		if err != nil {
			return err
		}
		if !authz.CanRead(board, role, id) {
			return errf(KindForbidden, "no access to board %s", boardID)
		}
		lists, err := tx.Lists(ctx, boardID)
		if err != nil {
			return err
		}
		view = &models.BoardView{Board: board, Lists: []*models.ListView{}}
		for _, l := range lists {
			if l.Archived {
				continue
			}
			cards, err := tx.Cards(ctx, l.ID)
			if err != nil {
				return err
			}
			lv := &models.ListView{List: l, Cards: []*models.Card{}}
			for _, c := range cards {
				if !c.Archived {
					lv.Cards = append(lv.Cards, c)
				}
			}
			view.Lists = append(view.Lists, lv)
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

func (e *Engine) RenameBoard(ctx context.Context, id models.Identity, boardID, title string) (*models.Board, error) {
	var out *models.Board
	err := e.inBoardTx(ctx, id, boardID, authz.ActionRenameBoard, func(ctx context.Context, tx store.Tx, board *models.Board, _ models.Role) error {
		board.Title = title
		board.UpdatedAt = time.Now()
		out = board
		return tx.PutBoard(ctx, board)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ArchiveBoard marks the board archived. Archival is a visibility flag, not
// a delete; the purge worker hard-deletes boards that stay archived past the
// retention window.
func (e *Engine) ArchiveBoard(ctx context.Context, id models.Identity, boardID string) (*models.Board, error) {
	var out *models.Board
	err := e.inBoardTx(ctx, id, boardID, authz.ActionArchiveBoard, func(ctx context.Context, tx store.Tx, board *models.Board, _ models.Role) error {
		if board.Archived {
			out = board
			return nil
		}
		now := time.Now()
		board.Archived = true
		board.ArchivedAt = &now
		board.UpdatedAt = now
		out = board
		return tx.PutBoard(ctx, board)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteBoard is owner-only and cascades to lists, cards, comments,
// memberships and labels in one transaction.
func (e *Engine) DeleteBoard(ctx context.Context, id models.Identity, boardID string) error {
	return e.inBoardTx(ctx, id, boardID, authz.ActionDeleteBoard, func(ctx context.Context, tx store.Tx, board *models.Board, _ models.Role) error {
		return tx.DeleteBoard(ctx, boardID)
	})
}

// PurgeArchivedBoards hard-deletes boards archived at or before the cutoff.
// Called by the purge worker, not by user requests, so it bypasses the
// permission table.
func (e *Engine) PurgeArchivedBoards(ctx context.Context, cutoff time.Time) (int, error) {
	purged := 0
	err := e.store.WithTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		boards, err := tx.ArchivedBoards(ctx, cutoff)
		if err != nil {
			return err
		}
		for _, b := range boards {
			if err := tx.DeleteBoard(ctx, b.ID); err != nil {
				return err
			}
			log.WithFields(log.Fields{"board": b.ID, "archivedAt": b.ArchivedAt}).Info("purged archived board")
			purged++
		}
		return nil
	})
	if err != nil {
		return 0, translate(err)
	}
	return purged, nil
}
