package store

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomDefaultOnFirstRead(t *testing.T) {
	s := New()
	count := NewAtom("count", 42)

	assert.Equal(t, 42, count.Get(s))

	count.Set(s, 7)
	assert.Equal(t, 7, count.Get(s))

	count.Reset(s)
	assert.Equal(t, 42, count.Get(s))
}

func TestAtomsAreIndependent(t *testing.T) {
	s := New()
	a := NewAtom("a", "")
	b := NewAtom("b", "")

	a.Set(s, "one")
	b.Set(s, "two")

	assert.Equal(t, "one", a.Get(s))
	assert.Equal(t, "two", b.Get(s))
}

func TestFamilyCells(t *testing.T) {
	s := New()
	counts := NewFamily("sample-count", 0)

	counts.At("ds1").Set(s, 10)
	counts.At("ds2").Set(s, 20)

	assert.Equal(t, 10, counts.At("ds1").Get(s))
	assert.Equal(t, 20, counts.At("ds2").Get(s))
	// Untouched members read the shared default
	assert.Equal(t, 0, counts.At("ds3").Get(s))
}

func TestSubscribeReceivesCommits(t *testing.T) {
	s := New()
	visible := NewAtom("modal-visible", false)

	ch, cancel := visible.Subscribe(s)
	defer cancel()

	visible.Set(s, true)

	select {
	case v := <-ch:
		assert.True(t, v)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription delivery")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := New()
	ch := s.Subscribe("k")
	s.Unsubscribe("k", ch)

	// Channel is closed after unsubscribe
	_, ok := <-ch
	require.False(t, ok)

	// Further writes do not panic
	s.Set("k", nil, "v")
}

func TestCancelReapsStalledForwarder(t *testing.T) {
	s := New()
	visible := NewAtom("stalled", 0)

	before := runtime.NumGoroutine()

	// Never read the typed channel; overfill it so the forwarding
	// goroutine is blocked mid-send when cancel arrives.
	out, cancel := visible.Subscribe(s)
	for i := 0; i < 150; i++ {
		visible.Set(s, i)
	}
	cancel()

	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond, "forwarding goroutine survived cancel")
	_ = out
}

func TestSlowSubscriberDoesNotBlockCommit(t *testing.T) {
	s := New()
	ch := s.Subscribe("k")
	defer s.Unsubscribe("k", ch)

	// Fill the buffer past capacity; Set must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			s.Set("k", nil, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Set blocked on a slow subscriber")
	}
}
