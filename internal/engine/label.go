package engine

import (
	"context"
	"time"

	"kanbanbox-be/internal/authz"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/store"
)

func (e *Engine) CreateLabel(ctx context.Context, id models.Identity, boardID, name, color string) (*models.Label, error) {
	var out *models.Label
	err := e.inBoardTx(ctx, id, boardID, authz.ActionManageLabels, func(ctx context.Context, tx store.Tx, _ *models.Board, _ models.Role) error {
		out = &models.Label{ID: newID(), BoardID: boardID, Name: name, Color: color}
		return tx.PutLabel(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) Labels(ctx context.Context, id models.Identity, boardID string) ([]*models.Label, error) {
	var out []*models.Label
	err := e.inBoardTx(ctx, id, boardID, authz.ActionViewBoard, func(ctx context.Context, tx store.Tx, _ *models.Board, _ models.Role) error {
		labels, err := tx.Labels(ctx, boardID)
		if err != nil {
			return err
		}
		out = labels
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteLabel removes the label and detaches it from every card on the
// board in the same transaction.
func (e *Engine) DeleteLabel(ctx context.Context, id models.Identity, labelID string) error {
	err := e.store.WithTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		label, err := tx.Label(ctx, labelID)
		if err != nil {
			return err
		}
		role, err := roleOf(ctx, tx, label.BoardID, id.UserID)
		if err != nil {
			return err
		}
		if !authz.Allowed(role, authz.ActionManageLabels) {
			return errf(KindForbidden, "role %q may not %s", role, authz.ActionManageLabels)
		}
		lists, err := tx.Lists(ctx, label.BoardID)
		if err != nil {
			return err
		}
		for _, l := range lists {
			cards, err := tx.Cards(ctx, l.ID)
			if err != nil {
				return err
			}
			for _, c := range cards {
				if detachLabelID(c, labelID) {
					c.UpdatedAt = time.Now()
					if err := tx.PutCard(ctx, c); err != nil {
						return err
					}
				}
			}
		}
		return tx.DeleteLabel(ctx, labelID)
	})
	return translate(err)
}

// AttachLabel adds a board-scoped label to a card. Labels from another
// board are rejected: a card only references labels of its own board.
func (e *Engine) AttachLabel(ctx context.Context, id models.Identity, cardID, labelID string) (*models.Card, error) {
	var out *models.Card
	err := e.inCardTx(ctx, id, cardID, authz.ActionAttachLabel, func(ctx context.Context, tx store.Tx, board *models.Board, card *models.Card) error {
		label, err := tx.Label(ctx, labelID)
		if err != nil {
			return err
		}
		if label.BoardID != board.ID {
			return errf(KindInvalidArgument, "label %s belongs to another board", labelID)
		}
		for _, lid := range card.LabelIDs {
			if lid == labelID {
				out = card
				return nil
			}
		}
		card.LabelIDs = append(card.LabelIDs, labelID)
		card.UpdatedAt = time.Now()
		out = card
		return tx.PutCard(ctx, card)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) DetachLabel(ctx context.Context, id models.Identity, cardID, labelID string) (*models.Card, error) {
	var out *models.Card
	err := e.inCardTx(ctx, id, cardID, authz.ActionAttachLabel, func(ctx context.Context, tx store.Tx, _ *models.Board, card *models.Card) error {
		if detachLabelID(card, labelID) {
			card.UpdatedAt = time.Now()
			if err := tx.PutCard(ctx, card); err != nil {
				return err
			}
		}
		out = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func detachLabelID(card *models.Card, labelID string) bool {
	for i, lid := range card.LabelIDs {
		if lid == labelID {
			card.LabelIDs = append(card.LabelIDs[:i], card.LabelIDs[i+1:]...)
			return true
		}
	}
	return false
}
