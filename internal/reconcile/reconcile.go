// Package reconcile implements the client-side half of the optimistic
// mutation protocol: an entity's speculative state is shown immediately,
// then either confirmed with the server's canonical result (which carries
// the order key the client cannot predict) or rolled back on rejection.
//
// Each pending mutation is a tiny state machine, Pending -> Confirmed or
// Rejected. Resolutions apply in server-response order: whichever response
// arrives later overwrites the baseline, regardless of the order the client
// issued the mutations in.
package reconcile

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

var ErrUnknownMutation = errors.New("reconcile: unknown mutation id")

// Mutation is one in-flight speculative change to a single entity.
type Mutation struct {
	ID          string
	EntityID    string
	Speculative interface{}
	Status      Status
	Reason      string // set when rejected
}

// Tracker holds the confirmed baseline and pending overlay per entity.
type Tracker struct {
	mu        sync.Mutex
	confirmed map[string]interface{}
	pending   map[string][]*Mutation
	byID      map[string]*Mutation
}

func NewTracker() *Tracker {
	return &Tracker{
		confirmed: map[string]interface{}{},
		pending:   map[string][]*Mutation{},
		byID:      map[string]*Mutation{},
	}
}

// Seed records a known-confirmed baseline for an entity, e.g. from the
// initial board read.
func (t *Tracker) Seed(entityID string, state interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.confirmed[entityID] = state
}

// Begin registers a speculative change and returns the pending mutation.
// The speculative state becomes the entity's visible view immediately.
func (t *Tracker) Begin(entityID string, speculative interface{}) *Mutation {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := &Mutation{
		ID:          uuid.NewString(),
		EntityID:    entityID,
		Speculative: speculative,
		Status:      StatusPending,
	}
	t.pending[entityID] = append(t.pending[entityID], m)
	t.byID[m.ID] = m
	return m
}

// Confirm resolves a pending mutation with the server's canonical state,
// which replaces the entity's baseline. Called in server-response order; a
// later Confirm always overrides an earlier one.
func (t *Tracker) Confirm(mutationID string, canonical interface{}) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.byID[mutationID]
	if !ok || m.Status != StatusPending {
		return ErrUnknownMutation
	}
	m.Status = StatusConfirmed
	t.confirmed[m.EntityID] = canonical
	t.drop(m)
	return nil
}

// Reject discards the speculative change. The entity's view falls back to
// the remaining pending overlay, or the last confirmed baseline; nothing
// intermediate is ever visible.
func (t *Tracker) Reject(mutationID string, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.byID[mutationID]
	if !ok || m.Status != StatusPending {
		return ErrUnknownMutation
	}
	m.Status = StatusRejected
	m.Reason = reason
	t.drop(m)
	return nil
}

// View returns the entity's current visible state: the newest pending
// speculative state if any, else the confirmed baseline.
func (t *Tracker) View(entityID string) (interface{}, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ps := t.pending[entityID]; len(ps) > 0 {
		return ps[len(ps)-1].Speculative, true
	}
	state, ok := t.confirmed[entityID]
	return state, ok
}

// PendingCount reports how many mutations are in flight for an entity.
func (t *Tracker) PendingCount(entityID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending[entityID])
}

func (t *Tracker) drop(m *Mutation) {
	delete(t.byID, m.ID)
	ps := t.pending[m.EntityID]
	for i, p := range ps {
		if p.ID == m.ID {
			t.pending[m.EntityID] = append(ps[:i], ps[i+1:]...)
			break
		}
	}
	if len(t.pending[m.EntityID]) == 0 {
		delete(t.pending, m.EntityID)
	}
}
