package stream_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekelas/kelasku/internal/stream"
)

const interval = 5 * time.Millisecond

// fakeSource is a fetcher whose result set and failure mode can be swapped
// mid-stream.
type fakeSource struct {
	mu   sync.Mutex
	docs []string
	err  error
}

func (f *fakeSource) fetch(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	return f.docs, nil
}

func (f *fakeSource) set(docs []string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.docs = docs
	f.err = err
}

func recv(t *testing.T, events <-chan stream.Snapshot[string]) stream.Snapshot[string] {
	t.Helper()

	select {
	case snap, ok := <-events:
		require.True(t, ok, "events channel closed unexpectedly")
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return stream.Snapshot[string]{}
	}
}

func TestSubscribe_EmitsFullSnapshots(t *testing.T) {
	src := &fakeSource{docs: []string{"a"}}

	sub := stream.Subscribe(context.Background(), src.fetch, interval)
	defer sub.Close()

	first := recv(t, sub.Events())
	assert.Equal(t, []string{"a"}, first.Docs)

	// Every event replaces the working set entirely, including shrinks.
	src.set([]string{"b", "c"}, nil)

	second := recv(t, sub.Events())
	assert.Equal(t, []string{"b", "c"}, second.Docs)
	assert.Greater(t, second.Seq, first.Seq)

	src.set([]string{"b"}, nil)

	third := recv(t, sub.Events())
	assert.Equal(t, []string{"b"}, third.Docs)
}

func TestSubscribe_UnchangedSetDoesNotEmit(t *testing.T) {
	src := &fakeSource{docs: []string{"a"}}

	sub := stream.Subscribe(context.Background(), src.fetch, interval)
	defer sub.Close()

	recv(t, sub.Events())

	select {
	case snap := <-sub.Events():
		t.Fatalf("unexpected snapshot for unchanged set: %v", snap.Docs)
	case <-time.After(10 * interval):
	}
}

func TestSubscribe_ErrorKeepsLastSnapshot(t *testing.T) {
	src := &fakeSource{docs: []string{"a"}}

	sub := stream.Subscribe(context.Background(), src.fetch, interval)
	defer sub.Close()

	recv(t, sub.Events())

	src.set(nil, errors.New("connection lost"))

	require.Eventually(t, func() bool {
		return sub.State() == stream.StateError
	}, time.Second, interval)

	// No event was emitted for the failure; the consumer keeps rendering
	// its last-known-good set.
	select {
	case snap := <-sub.Events():
		t.Fatalf("unexpected snapshot during error state: %v", snap.Docs)
	case <-time.After(5 * interval):
	}

	// Recovery flips back to live and resumes emitting on change.
	src.set([]string{"a", "b"}, nil)

	snap := recv(t, sub.Events())
	assert.Equal(t, []string{"a", "b"}, snap.Docs)
	assert.Equal(t, stream.StateLive, sub.State())
}

func TestSubscribe_CloseIsIdempotent(t *testing.T) {
	src := &fakeSource{docs: []string{"a"}}

	sub := stream.Subscribe(context.Background(), src.fetch, interval)

	recv(t, sub.Events())

	sub.Close()
	sub.Close()

	require.Eventually(t, func() bool {
		return sub.State() == stream.StateClosed
	}, time.Second, interval)

	_, ok := <-sub.Events()
	assert.False(t, ok, "events channel should be closed")
}

func TestSubscribe_ParentContextCancelCloses(t *testing.T) {
	src := &fakeSource{docs: []string{"a"}}

	ctx, cancel := context.WithCancel(context.Background())
	sub := stream.Subscribe(ctx, src.fetch, interval)

	recv(t, sub.Events())
	cancel()

	require.Eventually(t, func() bool {
		return sub.State() == stream.StateClosed
	}, time.Second, interval)
}

func TestSubscribe_SlowConsumerSeesNewestSnapshot(t *testing.T) {
	src := &fakeSource{docs: []string{"v1"}}

	sub := stream.Subscribe(context.Background(), src.fetch, interval)
	defer sub.Close()

	// Let several versions pile up without reading.
	for _, docs := range [][]string{{"v2"}, {"v3"}, {"v4"}} {
		time.Sleep(3 * interval)
		src.set(docs, nil)
	}

	require.Eventually(t, func() bool {
		select {
		case snap := <-sub.Events():
			return len(snap.Docs) == 1 && snap.Docs[0] == "v4"
		default:
			return false
		}
	}, time.Second, interval)
}
