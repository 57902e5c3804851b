package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewPrefersSpeculative(t *testing.T) {
	tr := NewTracker()
	tr.Seed("card-1", "baseline")

	got, ok := tr.View("card-1")
	require.True(t, ok)
	assert.Equal(t, "baseline", got)

	m := tr.Begin("card-1", "speculative")
	assert.Equal(t, StatusPending, m.Status)
	assert.NotEmpty(t, m.ID)

	got, _ = tr.View("card-1")
	assert.Equal(t, "speculative", got)
}

func TestConfirmReplacesBaseline(t *testing.T) {
	tr := NewTracker()
	tr.Seed("card-1", "baseline")
	m := tr.Begin("card-1", "speculative")

	// The canonical state may differ from the speculative one: the server
	// assigns the order key, the client only guessed.
	require.NoError(t, tr.Confirm(m.ID, "canonical"))
	assert.Equal(t, 0, tr.PendingCount("card-1"))

	got, _ := tr.View("card-1")
	assert.Equal(t, "canonical", got)
}

func TestRejectFallsBackToBaseline(t *testing.T) {
	tr := NewTracker()
	tr.Seed("card-1", "baseline")
	m := tr.Begin("card-1", "speculative")

	require.NoError(t, tr.Reject(m.ID, "invalid_position"))
	got, _ := tr.View("card-1")
	assert.Equal(t, "baseline", got)
}

func TestRejectFallsBackToRemainingPending(t *testing.T) {
	tr := NewTracker()
	tr.Seed("card-1", "baseline")
	m1 := tr.Begin("card-1", "first")
	m2 := tr.Begin("card-1", "second")

	// Rejecting the newest exposes the older pending state, not the baseline.
	require.NoError(t, tr.Reject(m2.ID, "conflict"))
	got, _ := tr.View("card-1")
	assert.Equal(t, "first", got)

	require.NoError(t, tr.Reject(m1.ID, "conflict"))
	got, _ = tr.View("card-1")
	assert.Equal(t, "baseline", got)
}

func TestServerResponseOrderWins(t *testing.T) {
	tr := NewTracker()
	tr.Seed("card-1", "baseline")
	m1 := tr.Begin("card-1", "move-a")
	m2 := tr.Begin("card-1", "move-b")

	// Responses arrive in the opposite order the client issued the moves:
	// the later response still sets the final baseline.
	require.NoError(t, tr.Confirm(m2.ID, "canonical-b"))
	require.NoError(t, tr.Confirm(m1.ID, "canonical-a"))

	got, _ := tr.View("card-1")
	assert.Equal(t, "canonical-a", got)
}

func TestDoubleResolveRejected(t *testing.T) {
	tr := NewTracker()
	m := tr.Begin("card-1", "speculative")

	require.NoError(t, tr.Confirm(m.ID, "canonical"))
	assert.ErrorIs(t, tr.Confirm(m.ID, "again"), ErrUnknownMutation)
	assert.ErrorIs(t, tr.Reject(m.ID, "late"), ErrUnknownMutation)
	assert.ErrorIs(t, tr.Confirm("no-such-id", "x"), ErrUnknownMutation)
}

func TestEntitiesAreIndependent(t *testing.T) {
	tr := NewTracker()
	tr.Seed("card-1", "one")
	tr.Seed("card-2", "two")
	tr.Begin("card-1", "one-spec")

	got, _ := tr.View("card-2")
	assert.Equal(t, "two", got)
	assert.Equal(t, 1, tr.PendingCount("card-1"))
	assert.Equal(t, 0, tr.PendingCount("card-2"))
}
