// Package engine is the authorization-gated mutation core. Every operation
// resolves the caller's role, checks the permission table, computes order
// keys and writes, all inside one store transaction, so a role revoked or a
// neighbor moved by a concurrent caller can never be acted on stale.
package engine

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kanbanbox-be/internal/authz"
	"kanbanbox-be/internal/models"
	"kanbanbox-be/internal/order"
	"kanbanbox-be/internal/store"
)

type Engine struct {
	store store.Store
}

func New(s store.Store) *Engine {
	return &Engine{store: s}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// roleOf resolves the caller's effective role on a board from inside the
// current transaction. A missing membership row is RoleNone, not an error.
func roleOf(ctx context.Context, tx store.Tx, boardID, userID string) (models.Role, error) {
	m, err := tx.Membership(ctx, boardID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.RoleNone, nil
		}
		return models.RoleNone, err
	}
	return m.Role, nil
}

// inBoardTx runs fn inside a transaction after loading the board and
// authorizing the action against the caller's role read in that same
// transaction.
func (e *Engine) inBoardTx(ctx context.Context, id models.Identity, boardID string, action authz.Action, fn func(ctx context.Context, tx store.Tx, board *models.Board, role models.Role) error) error {
	err := e.store.WithTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		board, err := tx.Board(ctx, boardID)
		if err != nil {
			return err
		}
		role, err := roleOf(ctx, tx, boardID, id.UserID)
		if err != nil {
			return err
		}
		if !authz.Allowed(role, action) {
			log.WithFields(log.Fields{"user": id.UserID, "board": boardID, "action": action, "role": role}).Debug("authorization denied")
			return errf(KindForbidden, "role %q may not %s", role, action)
		}
		return fn(ctx, tx, board, role)
	})
	return translate(err)
}

// slot pairs an entity id with its order key; the neighbor math below works
// on slots so it is shared between lists and cards.
type slot struct {
	id  string
	key int64
}

// neighbors resolves a Position against the sibling slots (ascending key
// order) into the before/after key pair to allocate between. excludeID
// removes the item being moved from consideration. An anchor that is absent
// from the collection, or that is the moved item itself, is an
// InvalidPosition: the engine never falls back to "end" on a stale anchor.
func neighbors(slots []slot, pos models.Position, excludeID string) (before, after *int64, err error) {
	filtered := make([]slot, 0, len(slots))
	for _, s := range slots {
		if s.id != excludeID {
			filtered = append(filtered, s)
		}
	}
	switch pos.Place {
	case models.PlaceEnd, "":
		if n := len(filtered); n > 0 {
			before = &filtered[n-1].key
		}
	case models.PlaceStart:
		if len(filtered) > 0 {
			after = &filtered[0].key
		}
	case models.PlaceBefore, models.PlaceAfter:
		if pos.Anchor == excludeID {
			return nil, nil, errf(KindInvalidPosition, "position anchored to the moved item itself")
		}
		idx := -1
		for i, s := range filtered {
			if s.id == pos.Anchor {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, nil, errf(KindInvalidPosition, "anchor %s not in target collection", pos.Anchor)
		}
		if pos.Place == models.PlaceBefore {
			after = &filtered[idx].key
			if idx > 0 {
				before = &filtered[idx-1].key
			}
		} else {
			before = &filtered[idx].key
			if idx < len(filtered)-1 {
				after = &filtered[idx+1].key
			}
		}
	default:
		return nil, nil, errf(KindInvalidPosition, "unknown place %q", pos.Place)
	}
	return before, after, nil
}

// satisfied reports whether a current key already sits strictly inside the
// neighbor pair, i.e. the requested move is a no-op.
func satisfied(current int64, before, after *int64) bool {
	if before != nil && current <= *before {
		return false
	}
	if after != nil && current >= *after {
		return false
	}
	return true
}

// allocateKey allocates between the neighbors, running one in-transaction
// rebalance of the whole collection on exhaustion. rewrite must persist the
// new key for the slot at the given index. A second consecutive exhaustion
// is a Conflict; with 2^16 spacing it should never happen outside tests.
func allocateKey(slots []slot, pos models.Position, excludeID string, rewrite func(i int, key int64) error) (int64, error) {
	before, after, err := neighbors(slots, pos, excludeID)
	if err != nil {
		return 0, err
	}
	key, allocErr := order.Allocate(before, after)
	if allocErr == nil {
		return key, nil
	}
	if !errors.Is(allocErr, order.ErrNeedsRebalance) {
		return 0, allocErr
	}

	keys := make([]int64, len(slots))
	for i, s := range slots {
		keys[i] = s.key
	}
	for i, k := range order.Rebalance(keys) {
		slots[i].key = k
		if err := rewrite(i, k); err != nil {
			return 0, err
		}
	}
	before, after, err = neighbors(slots, pos, excludeID)
	if err != nil {
		return 0, err
	}
	key, allocErr = order.Allocate(before, after)
	if allocErr != nil {
		return 0, errf(KindConflict, "allocation failed after rebalance: %v", allocErr)
	}
	return key, nil
}

func listSlots(lists []*models.List) []slot {
	out := make([]slot, len(lists))
	for i, l := range lists {
		out[i] = slot{id: l.ID, key: l.Order}
	}
	return out
}

func cardSlots(cards []*models.Card) []slot {
	out := make([]slot, len(cards))
	for i, c := range cards {
		out[i] = slot{id: c.ID, key: c.Order}
	}
	return out
}
