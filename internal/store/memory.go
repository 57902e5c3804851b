package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"kanbanbox-be/internal/models"
)

// Compile-time contract assertion.
var _ Store = (*Memory)(nil)

// Memory implements Store entirely in memory. Transactions take the global
// lock, mutate a deep copy of the state and swap it in on success, so a
// failed transaction leaves nothing behind and concurrent transactions are
// fully serialized. Used by tests and local development.
type Memory struct {
	mu    sync.Mutex
	state *memState
}

type memState struct {
	boards      map[string]models.Board
	lists       map[string]models.List
	cards       map[string]models.Card
	memberships map[string]models.Membership // key boardID + "/" + userID
	labels      map[string]models.Label
	comments    map[string]models.Comment
}

func NewMemory() *Memory {
	return &Memory{state: &memState{
		boards:      map[string]models.Board{},
		lists:       map[string]models.List{},
		cards:       map[string]models.Card{},
		memberships: map[string]models.Membership{},
		labels:      map[string]models.Label{},
		comments:    map[string]models.Comment{},
	}}
}

func (s *memState) clone() *memState {
	c := &memState{
		boards:      make(map[string]models.Board, len(s.boards)),
		lists:       make(map[string]models.List, len(s.lists)),
		cards:       make(map[string]models.Card, len(s.cards)),
		memberships: make(map[string]models.Membership, len(s.memberships)),
		labels:      make(map[string]models.Label, len(s.labels)),
		comments:    make(map[string]models.Comment, len(s.comments)),
	}
	for k, v := range s.boards {
		c.boards[k] = v
	}
	for k, v := range s.lists {
		c.lists[k] = v
	}
	for k, v := range s.cards {
		v.LabelIDs = append([]string(nil), v.LabelIDs...)
		c.cards[k] = v
	}
	for k, v := range s.memberships {
		c.memberships[k] = v
	}
	for k, v := range s.labels {
		c.labels[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	return c
}

func (m *Memory) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	next := m.state.clone()
	if err := fn(ctx, &memTx{state: next}); err != nil {
		return err
	}
	m.state = next
	return nil
}

type memTx struct {
	state *memState
}

func membershipKey(boardID, userID string) string {
	return boardID + "/" + userID
}

func (t *memTx) Board(ctx context.Context, id string) (*models.Board, error) {
	b, ok := t.state.boards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (t *memTx) PutBoard(ctx context.Context, b *models.Board) error {
	t.state.boards[b.ID] = *b
	return nil
}

func (t *memTx) DeleteBoard(ctx context.Context, id string) error {
	for lid, l := range t.state.lists {
		if l.BoardID == id {
			delete(t.state.lists, lid)
		}
	}
	for cid, c := range t.state.cards {
		if c.BoardID == id {
			t.deleteCardComments(cid)
			delete(t.state.cards, cid)
		}
	}
	for k, m := range t.state.memberships {
		if m.BoardID == id {
			delete(t.state.memberships, k)
		}
	}
	for lid, l := range t.state.labels {
		if l.BoardID == id {
			delete(t.state.labels, lid)
		}
	}
	delete(t.state.boards, id)
	return nil
}

func (t *memTx) ArchivedBoards(ctx context.Context, cutoff time.Time) ([]*models.Board, error) {
	var out []*models.Board
	for _, b := range t.state.boards {
		if b.Archived && b.ArchivedAt != nil && !b.ArchivedAt.After(cutoff) {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) List(ctx context.Context, id string) (*models.List, error) {
	l, ok := t.state.lists[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (t *memTx) Lists(ctx context.Context, boardID string) ([]*models.List, error) {
	var out []*models.List
	for _, l := range t.state.lists {
		if l.BoardID == boardID {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (t *memTx) PutList(ctx context.Context, l *models.List) error {
	t.state.lists[l.ID] = *l
	return nil
}

func (t *memTx) DeleteList(ctx context.Context, id string) error {
	for cid, c := range t.state.cards {
		if c.ListID == id {
			t.deleteCardComments(cid)
			delete(t.state.cards, cid)
		}
	}
	delete(t.state.lists, id)
	return nil
}

func (t *memTx) Card(ctx context.Context, id string) (*models.Card, error) {
	c, ok := t.state.cards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (t *memTx) Cards(ctx context.Context, listID string) ([]*models.Card, error) {
	var out []*models.Card
	for _, c := range t.state.cards {
		if c.ListID == listID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (t *memTx) PutCard(ctx context.Context, c *models.Card) error {
	cp := *c
	cp.LabelIDs = append([]string(nil), c.LabelIDs...)
	t.state.cards[c.ID] = cp
	return nil
}

func (t *memTx) DeleteCard(ctx context.Context, id string) error {
	t.deleteCardComments(id)
	delete(t.state.cards, id)
	return nil
}

func (t *memTx) Membership(ctx context.Context, boardID, userID string) (*models.Membership, error) {
	m, ok := t.state.memberships[membershipKey(boardID, userID)]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (t *memTx) Memberships(ctx context.Context, boardID string) ([]*models.Membership, error) {
	var out []*models.Membership
	for _, m := range t.state.memberships {
		if m.BoardID == boardID {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (t *memTx) MembershipsForUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	var out []*models.Membership
	for _, m := range t.state.memberships {
		if m.UserID == userID {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BoardID < out[j].BoardID })
	return out, nil
}

func (t *memTx) PutMembership(ctx context.Context, m *models.Membership) error {
	t.state.memberships[membershipKey(m.BoardID, m.UserID)] = *m
	return nil
}

func (t *memTx) DeleteMembership(ctx context.Context, boardID, userID string) error {
	delete(t.state.memberships, membershipKey(boardID, userID))
	return nil
}

func (t *memTx) Label(ctx context.Context, id string) (*models.Label, error) {
	l, ok := t.state.labels[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (t *memTx) Labels(ctx context.Context, boardID string) ([]*models.Label, error) {
	var out []*models.Label
	for _, l := range t.state.labels {
		if l.BoardID == boardID {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) PutLabel(ctx context.Context, l *models.Label) error {
	t.state.labels[l.ID] = *l
	return nil
}

func (t *memTx) DeleteLabel(ctx context.Context, id string) error {
	delete(t.state.labels, id)
	return nil
}

func (t *memTx) Comments(ctx context.Context, cardID string) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range t.state.comments {
		if c.CardID == cardID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (t *memTx) PutComment(ctx context.Context, c *models.Comment) error {
	t.state.comments[c.ID] = *c
	return nil
}

func (t *memTx) deleteCardComments(cardID string) {
	for id, c := range t.state.comments {
		if c.CardID == cardID {
			delete(t.state.comments, id)
		}
	}
}
