package freshness

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTracker_StaleResultIsDiscarded(t *testing.T) {
	tr := NewTracker()

	first := tr.Next("user-1:weight")
	second := tr.Next("user-1:weight")
	assert.False(t, tr.IsLatest("user-1:weight", first))
	assert.True(t, tr.IsLatest("user-1:weight", second))

	applied, err := tr.ApplyIfLatest("user-1:weight", first, func() error {
		t.Fatal("stale apply must not run")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, applied)

	ran := false
	applied, err = tr.ApplyIfLatest("user-1:weight", second, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, ran)
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tr := NewTracker()
	a := tr.Next("a")
	b := tr.Next("b")
	assert.Equal(t, uint64(1), a)
	assert.Equal(t, uint64(1), b)
	assert.True(t, tr.IsLatest("a", a))
	assert.False(t, tr.IsLatest("c", 1))
}

func TestTracker_ApplyError(t *testing.T) {
	tr := NewTracker()
	seq := tr.Next("k")
	applied, err := tr.ApplyIfLatest("k", seq, func() error { return errors.New("boom") })
	assert.True(t, applied)
	assert.EqualError(t, err, "boom")
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	seen := make(chan uint64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- tr.Next("k")
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[uint64]bool{}
	for s := range seen {
		unique[s] = true
	}
	assert.Len(t, unique, 100)
	assert.True(t, tr.IsLatest("k", 100))
}

func TestTracker_SlowApplyDoesNotBlockOtherKeys(t *testing.T) {
	tr := NewTracker()
	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	slow := tr.Next("user-1")
	go func() {
		defer close(done)
		_, _ = tr.ApplyIfLatest("user-1", slow, func() error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	other := tr.Next("user-2")
	applied, err := tr.ApplyIfLatest("user-2", other, func() error { return nil })
	require.NoError(t, err)
	assert.True(t, applied)

	// a newer request for the busy key can still get its number
	newer := tr.Next("user-1")
	assert.True(t, tr.IsLatest("user-1", newer))

	close(release)
	<-done

	applied, err = tr.ApplyIfLatest("user-1", newer, func() error { return nil })
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestTracker_AppliesAreSerializedPerKey(t *testing.T) {
	tr := NewTracker()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		running int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := tr.Next("k")
			_, _ = tr.ApplyIfLatest("k", seq, func() error {
				mu.Lock()
				running++
				if running > maxSeen {
					maxSeen = running
				}
				mu.Unlock()

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, maxSeen, 1)
}
