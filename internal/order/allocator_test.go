package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }

func TestAllocateEmpty(t *testing.T) {
	k, err := Allocate(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1)<<52, k)
}

func TestAllocateAppend(t *testing.T) {
	k, err := Allocate(i64(3*Spacing), nil)
	require.NoError(t, err)
	assert.Equal(t, 4*Spacing, k)
	assert.Greater(t, k, 3*Spacing)
}

func TestAllocatePrepend(t *testing.T) {
	k, err := Allocate(nil, i64(3*Spacing))
	require.NoError(t, err)
	assert.Equal(t, 2*Spacing, k)
	assert.Greater(t, k, KeyMin)
}

func TestAllocateBetween(t *testing.T) {
	k, err := Allocate(i64(Spacing), i64(2*Spacing))
	require.NoError(t, err)
	assert.Greater(t, k, Spacing)
	assert.Less(t, k, 2*Spacing)
}

func TestAllocateNearLowerEdge(t *testing.T) {
	// Prepending before a key closer to zero than Spacing must still land
	// strictly inside the domain.
	k, err := Allocate(nil, i64(10))
	require.NoError(t, err)
	assert.Greater(t, k, KeyMin)
	assert.Less(t, k, int64(10))
}

func TestAllocateNearUpperEdge(t *testing.T) {
	k, err := Allocate(i64(KeyMax-10), nil)
	require.NoError(t, err)
	assert.Greater(t, k, KeyMax-10)
	assert.Less(t, k, KeyMax)
}

func TestAllocateExhaustedGap(t *testing.T) {
	tests := []struct {
		name   string
		before *int64
		after  *int64
	}{
		{"adjacent neighbors", i64(100), i64(101)},
		{"prepend before one", nil, i64(1)},
		{"append after max-1", i64(KeyMax - 1), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(tt.before, tt.after)
			assert.ErrorIs(t, err, ErrNeedsRebalance)
		})
	}
}

func TestAllocateInvalidNeighbors(t *testing.T) {
	_, err := Allocate(i64(200), i64(100))
	assert.ErrorIs(t, err, ErrInvalidNeighbors)

	_, err = Allocate(i64(100), i64(100))
	assert.ErrorIs(t, err, ErrInvalidNeighbors)
}

func TestAllocateRepeatedMidpoints(t *testing.T) {
	// Repeated insertion into the same gap converges but must yield a
	// strictly increasing run of at least 16 keys before exhausting.
	lo, hi := Spacing, 2*Spacing
	for i := 0; i < 16; i++ {
		k, err := Allocate(&lo, &hi)
		require.NoError(t, err, "insert %d", i)
		require.Greater(t, k, lo)
		require.Less(t, k, hi)
		lo = k
	}
}

func TestRebalance(t *testing.T) {
	out := Rebalance(make([]int64, 5))
	require.Len(t, out, 5)
	for i, k := range out {
		assert.Equal(t, int64(i+1)*Spacing, k)
		assert.Greater(t, k, KeyMin)
		assert.Less(t, k, KeyMax)
	}

	assert.Empty(t, Rebalance(nil))
}

func TestRebalanceReopensGaps(t *testing.T) {
	// After a rebalance every adjacent pair admits a midpoint again.
	out := Rebalance(make([]int64, 3))
	for i := 0; i+1 < len(out); i++ {
		k, err := Allocate(&out[i], &out[i+1])
		require.NoError(t, err)
		assert.Greater(t, k, out[i])
		assert.Less(t, k, out[i+1])
	}
}
