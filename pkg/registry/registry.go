// Package registry tracks one core.TradeState per instrument pair for a
// multi-instrument runner. It lives entirely outside the strategy core:
// pkg/engine never imports it, and it never reaches into ProcessCandle's
// decision logic.
package registry

import (
	"sync"

	"github.com/StudioSol/set"

	"github.com/raykavin/strategycore/pkg/core"
)

// Registry holds the last-emitted TradeState for every tracked pair,
// plus an insertion-ordered set of pair names so a runner iterates them
// deterministically on every poll cycle — the same ordered-set pattern
// exchange.DataFeedSubscription uses for its Feeds set.
type Registry struct {
	mu     sync.RWMutex
	pairs  *set.LinkedHashSetString
	states map[string]core.TradeState
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{
		pairs:  set.NewLinkedHashSetString(),
		states: make(map[string]core.TradeState),
	}
}

// Track adds pair to the registry with a flat starting state, if it is
// not already tracked. Re-adding an already-tracked pair is a no-op.
func (r *Registry) Track(pair string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.states[pair]; ok {
		return
	}
	r.pairs.Add(pair)
	r.states[pair] = core.FlatState()
}

// Untrack removes pair and its state from the registry. The backing
// ordered set has no removal primitive, so it is rebuilt from the
// surviving pairs in insertion order.
func (r *Registry) Untrack(pair string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.states[pair]; !ok {
		return
	}
	delete(r.states, pair)

	rebuilt := set.NewLinkedHashSetString()
	for p := range r.pairs.Iter() {
		if p != pair {
			rebuilt.Add(p)
		}
	}
	r.pairs = rebuilt
}

// State returns the current TradeState for pair, or core.FlatState() if
// pair has never been tracked.
func (r *Registry) State(pair string) core.TradeState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[pair]
	if !ok {
		return core.FlatState()
	}
	return state
}

// SetState replaces the tracked TradeState for pair, implicitly
// tracking pair if it was not tracked before. The caller hands in the
// new state returned by engine.Engine.ProcessCandle; the registry never
// computes a transition itself.
func (r *Registry) SetState(pair string, state core.TradeState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.states[pair]; !ok {
		r.pairs.Add(pair)
	}
	r.states[pair] = state
}

// Pairs returns every tracked pair in insertion order.
func (r *Registry) Pairs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.states))
	for pair := range r.pairs.Iter() {
		out = append(out, pair)
	}
	return out
}

// Snapshot returns a copy of every tracked (pair, TradeState), for a
// caller that wants to persist the whole registry at once.
func (r *Registry) Snapshot() map[string]core.TradeState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]core.TradeState, len(r.states))
	for pair, state := range r.states {
		out[pair] = state
	}
	return out
}

// Restore replaces the registry's contents with a previously-persisted
// snapshot, tracking every pair it contains.
func (r *Registry) Restore(snapshot map[string]core.TradeState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pairs = set.NewLinkedHashSetString()
	r.states = make(map[string]core.TradeState, len(snapshot))
	for pair, state := range snapshot {
		r.pairs.Add(pair)
		r.states[pair] = state
	}
}
