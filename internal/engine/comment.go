package engine

import (
	"context"
	"time"

	"kanbanbox-be/internal/authz"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/store"
)

// AddComment appends a comment to a card. Comments are append-only; there
// is no edit or delete short of deleting the card.
func (e *Engine) AddComment(ctx context.Context, id models.Identity, cardID, body string) (*models.Comment, error) {
	var out *models.Comment
	err := e.inCardTx(ctx, id, cardID, authz.ActionAddComment, func(ctx context.Context, tx store.Tx, _ *models.Board, card *models.Card) error {
		out = &models.Comment{
			ID:        newID(),
			CardID:    card.ID,
			AuthorID:  id.UserID,
			Body:      body,
			CreatedAt: time.Now(),
		}
		return tx.PutComment(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Comments returns a card's comments oldest first.
func (e *Engine) Comments(ctx context.Context, id models.Identity, cardID string) ([]*models.Comment, error) {
	var out []*models.Comment
	err := e.inCardTx(ctx, id, cardID, authz.ActionViewBoard, func(ctx context.Context, tx store.Tx, _ *models.Board, card *models.Card) error {
		comments, err := tx.Comments(ctx, card.ID)
		if err != nil {
			return err
		}
		out = comments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
