package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/strategycore/pkg/core"
)

func TestRegistry_TrackAndState(t *testing.T) {
	r := New()

	r.Track("BTCUSDT")
	r.Track("ETHUSDT")
	r.Track("BTCUSDT") // re-track is a no-op

	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, r.Pairs())
	assert.Equal(t, core.FlatState(), r.State("BTCUSDT"))
	assert.Equal(t, core.FlatState(), r.State("UNKNOWN"))
}

func TestRegistry_SetStateImplicitlyTracks(t *testing.T) {
	r := New()

	open := core.TradeState{Side: core.Long, EntryPrice: 100}
	r.SetState("BTCUSDT", open)

	require.Equal(t, []string{"BTCUSDT"}, r.Pairs())
	assert.Equal(t, open, r.State("BTCUSDT"))
}

func TestRegistry_Untrack(t *testing.T) {
	r := New()
	r.Track("BTCUSDT")
	r.Untrack("BTCUSDT")

	assert.Empty(t, r.Pairs())
	assert.Equal(t, core.FlatState(), r.State("BTCUSDT"))
}

func TestRegistry_SnapshotAndRestore(t *testing.T) {
	r := New()
	r.SetState("BTCUSDT", core.TradeState{Side: core.Long, EntryPrice: 100})
	r.SetState("ETHUSDT", core.TradeState{Side: core.Short, EntryPrice: 50})

	snap := r.Snapshot()
	require.Len(t, snap, 2)

	r2 := New()
	r2.Restore(snap)

	assert.ElementsMatch(t, []string{"BTCUSDT", "ETHUSDT"}, r2.Pairs())
	assert.Equal(t, snap["BTCUSDT"], r2.State("BTCUSDT"))
}
