// Package freshness orders concurrent writes to the same resource so a
// late-finishing older request cannot overwrite the result of a newer one.
package freshness

import "sync"

type keyState struct {
	// serializes applies for the key; taken before Tracker.mu, never after
	apply  sync.Mutex
	latest uint64
}

// Tracker hands out increasing sequence numbers per key.
type Tracker struct {
	mu   sync.Mutex
	keys map[string]*keyState
}

func NewTracker() *Tracker {
	return &Tracker{keys: make(map[string]*keyState)}
}

func (t *Tracker) stateLocked(key string) *keyState {
	st, ok := t.keys[key]
	if !ok {
		st = &keyState{}
		t.keys[key] = st
	}
	return st
}

// Next registers a new request for key and returns its sequence number.
func (t *Tracker) Next(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.stateLocked(key)
	st.latest++
	return st.latest
}

// IsLatest reports whether seq is still the newest request issued for key.
func (t *Tracker) IsLatest(key string, seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.keys[key]
	return ok && st.latest == seq
}

// ApplyIfLatest runs apply only when seq is still the newest request for key.
// Applies for one key run one at a time, other keys are not blocked. A newer
// sequence may be issued while apply runs; it applies after this one returns.
// Returns false without calling apply when the request is stale.
func (t *Tracker) ApplyIfLatest(key string, seq uint64, apply func() error) (bool, error) {
	t.mu.Lock()
	st := t.stateLocked(key)
	t.mu.Unlock()

	st.apply.Lock()
	defer st.apply.Unlock()
	if !t.IsLatest(key, seq) {
		return false, nil
	}
	return true, apply()
}
