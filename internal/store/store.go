// Package store is the persistence contract the mutation engine writes
// through. Every mutation runs inside WithTransaction so that authorization
// reads, neighbor reads and the final write commit or fail as one unit.
package store

import (
	"context"
	"errors"
	"time"

	"kanbanbox-be/internal/models"
)

// ErrNotFound is returned by entity reads when no row matches.
var ErrNotFound = errors.New("store: entity not found")

// Tx is the set of operations available inside a transaction. Sibling reads
// (Lists, Cards) return entities in ascending order-key sequence, which is
// the display order; the engine derives neighbor pairs from them. Delete
// methods cascade to owned entities.
type Tx interface {
	Board(ctx context.Context, id string) (*models.Board, error)
	PutBoard(ctx context.Context, b *models.Board) error
	// DeleteBoard cascades to the board's lists, cards, comments,
	// memberships and labels.
	DeleteBoard(ctx context.Context, id string) error
	ArchivedBoards(ctx context.Context, cutoff time.Time) ([]*models.Board, error)

	List(ctx context.Context, id string) (*models.List, error)
	Lists(ctx context.Context, boardID string) ([]*models.List, error)
	PutList(ctx context.Context, l *models.List) error
	// DeleteList cascades to the list's cards and their comments.
	DeleteList(ctx context.Context, id string) error

	Card(ctx context.Context, id string) (*models.Card, error)
	Cards(ctx context.Context, listID string) ([]*models.Card, error)
	PutCard(ctx context.Context, c *models.Card) error
	// DeleteCard cascades to the card's comments.
	DeleteCard(ctx context.Context, id string) error

	Membership(ctx context.Context, boardID, userID string) (*models.Membership, error)
	Memberships(ctx context.Context, boardID string) ([]*models.Membership, error)
	MembershipsForUser(ctx context.Context, userID string) ([]*models.Membership, error)
	PutMembership(ctx context.Context, m *models.Membership) error
	DeleteMembership(ctx context.Context, boardID, userID string) error

	Label(ctx context.Context, id string) (*models.Label, error)
	Labels(ctx context.Context, boardID string) ([]*models.Label, error)
	PutLabel(ctx context.Context, l *models.Label) error
	DeleteLabel(ctx context.Context, id string) error

	Comments(ctx context.Context, cardID string) ([]*models.Comment, error)
	PutComment(ctx context.Context, c *models.Comment) error
}

// Store runs functions inside an isolated transaction. Implementations must
// guarantee that concurrent transactions observe committed state only and
// that a returned error leaves nothing persisted.
type Store interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
