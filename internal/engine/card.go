package engine

import (
	"context"
	"time"

	"kanbanbox-be/internal/authz"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/store"
)

// CreateCard inserts a card at the requested position in a list.
func (e *Engine) CreateCard(ctx context.Context, id models.Identity, listID, title, description string, pos models.Position) (*models.Card, error) {
	if !pos.Valid() {
		return nil, errf(KindInvalidPosition, "malformed position")
	}
	var out *models.Card
	err := e.inListTx(ctx, id, listID, authz.ActionCreateCard, func(ctx context.Context, tx store.Tx, board *models.Board, list *models.List) error {
		cards, err := tx.Cards(ctx, listID)
		if err != nil {
			return err
		}
		slots := cardSlots(cards)
		key, err := allocateKey(slots, pos, "", func(i int, k int64) error {
			cards[i].Order = k
			return tx.PutCard(ctx, cards[i])
		})
		if err != nil {
			return err
		}
		now := time.Now()
		out = &models.Card{
			ID:          newID(),
			ListID:      listID,
			BoardID:     board.ID,
			Title:       title,
			Description: description,
			Order:       key,
			LabelIDs:    []string{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return tx.PutCard(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// inCardTx loads the card and its board, authorizes in the same transaction.
func (e *Engine) inCardTx(ctx context.Context, id models.Identity, cardID string, action authz.Action, fn func(ctx context.Context, tx store.Tx, board *models.Board, card *models.Card) error) error {
	err := e.store.WithTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		card, err := tx.Card(ctx, cardID)
		if err != nil {
			return err
		}
		board, err := tx.Board(ctx, card.BoardID)
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
		return fn(ctx, tx, board, card)
	})
	return translate(err)
}

// UpdateCard patches title, description and due date. Nil fields are left
// untouched; a non-nil zero due date clears it.
func (e *Engine) UpdateCard(ctx context.Context, id models.Identity, cardID string, req models.UpdateCardRequest) (*models.Card, error) {
	var out *models.Card
	err := e.inCardTx(ctx, id, cardID, authz.ActionUpdateCard, func(ctx context.Context, tx store.Tx, _ *models.Board, card *models.Card) error {
		if req.Title != nil {
			card.Title = *req.Title
		}
		if req.Description != nil {
			card.Description = *req.Description
		}
		if req.DueDate != nil {
			if req.DueDate.IsZero() {
				card.DueDate = nil
			} else {
				card.DueDate = req.DueDate
			}
		}
		card.UpdatedAt = time.Now()
		out = card
		return tx.PutCard(ctx, card)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MoveCard repositions a card, possibly across lists within the same board.
// The destination sibling set is read in the same transaction as the write,
// so a concurrent mover's committed key becomes this call's neighbor
// context: last committed write wins, keys stay unique. A position already
// satisfied in the current list is a no-op returning the unchanged card.
func (e *Engine) MoveCard(ctx context.Context, id models.Identity, cardID, targetListID string, pos models.Position) (*models.Card, error) {
	if !pos.Valid() {
		return nil, errf(KindInvalidPosition, "malformed position")
	}
	var out *models.Card
	err := e.inCardTx(ctx, id, cardID, authz.ActionMoveCard, func(ctx context.Context, tx store.Tx, board *models.Board, card *models.Card) error {
		target, err := tx.List(ctx, targetListID)
		if err != nil {
			return err
		}
		if target.BoardID != board.ID {
			return errf(KindInvalidPosition, "list %s is not on board %s", targetListID, board.ID)
		}
		cards, err := tx.Cards(ctx, targetListID)
		if err != nil {
			return err
		}
		slots := cardSlots(cards)
		before, after, err := neighbors(slots, pos, card.ID)
		if err != nil {
			return err
		}
		if card.ListID == targetListID && satisfied(card.Order, before, after) {
			out = card
			return nil
		}
		key, err := allocateKey(slots, pos, card.ID, func(i int, k int64) error {
			cards[i].Order = k
			if cards[i].ID == card.ID {
				card.Order = k
			}
			return tx.PutCard(ctx, cards[i])
		})
		if err != nil {
			return err
		}
		card.ListID = targetListID
		card.Order = key
		card.UpdatedAt = time.Now()
		out = card
		return tx.PutCard(ctx, card)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) ArchiveCard(ctx context.Context, id models.Identity, cardID string) (*models.Card, error) {
	var out *models.Card
	err := e.inCardTx(ctx, id, cardID, authz.ActionArchiveCard, func(ctx context.Context, tx store.Tx, _ *models.Board, card *models.Card) error {
		if !card.Archived {
			card.Archived = true
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

// DeleteCard cascades to the card's comments.
func (e *Engine) DeleteCard(ctx context.Context, id models.Identity, cardID string) error {
	return e.inCardTx(ctx, id, cardID, authz.ActionDeleteCard, func(ctx context.Context, tx store.Tx, _ *models.Board, card *models.Card) error {
		return tx.DeleteCard(ctx, card.ID)
	})
}
