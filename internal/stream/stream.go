// Package stream provides snapshot-replace subscriptions over collection
// queries. Every event carries the complete current result set; consumers
// replace their working set on each event rather than applying diffs.
package stream

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// State is the lifecycle of a subscription.
type State int32

const (
	StateConnecting State = iota
	StateLive
	StateError // transient: the stream retries and keeps the last snapshot
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateLive:
		return "live"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	}

	return "unknown"
}

// Snapshot is one full-replace event.
type Snapshot[T any] struct {
	Docs []T
	Seq  uint64 // increases with every emitted snapshot
}

// Fetcher loads the complete current set of matching documents.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Subscription is the handle owned by the consuming view. Close it exactly
// once on teardown; closing again is a no-op.
type Subscription[T any] struct {
	fetch     Fetcher[T]
	interval  time.Duration
	events    chan Snapshot[T]
	cancel    context.CancelFunc
	closeOnce sync.Once
	state     atomic.Int32

	// owned by the run goroutine
	seq  uint64
	last []T
	live bool
}

// Subscribe starts polling the fetcher and emits a snapshot whenever the
// result set changes. The first successful fetch always emits. Fetch errors
// flip the state to StateError without emitting, so the consumer keeps
// rendering its last-known-good snapshot; the stream keeps retrying.
func Subscribe[T any](ctx context.Context, fetch Fetcher[T], interval time.Duration) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)

	s := &Subscription[T]{
		fetch:    fetch,
		interval: interval,
		events:   make(chan Snapshot[T], 1),
		cancel:   cancel,
	}
	s.state.Store(int32(StateConnecting))

	go s.run(ctx)

	return s
}

// Events is the snapshot stream. It is closed when the subscription closes.
// The channel coalesces: a slow consumer sees the newest snapshot, never an
// older one after a newer one.
func (s *Subscription[T]) Events() <-chan Snapshot[T] {
	return s.events
}

func (s *Subscription[T]) State() State {
	return State(s.state.Load())
}

// Close tears the subscription down. Idempotent.
func (s *Subscription[T]) Close() {
	s.closeOnce.Do(s.cancel)
}

func (s *Subscription[T]) run(ctx context.Context) {
	defer func() {
		s.state.Store(int32(StateClosed))
		close(s.events)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.poll(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Subscription[T]) poll(ctx context.Context) {
	docs, err := s.fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.state.Store(int32(StateError))
		}

		return
	}

	changed := !s.live || !reflect.DeepEqual(docs, s.last)

	s.state.Store(int32(StateLive))

	if !changed {
		return
	}

	s.last = docs
	s.live = true
	s.seq++

	s.send(ctx, Snapshot[T]{Docs: docs, Seq: s.seq})
}

// send delivers the snapshot, displacing an unread older one if the
// consumer has fallen behind. Only the run goroutine sends or drains.
func (s *Subscription[T]) send(ctx context.Context, snap Snapshot[T]) {
	for {
		select {
		case <-ctx.Done():
			return
		case s.events <- snap:
			return
		default:
			select {
			case <-s.events:
			default:
			}
		}
	}
}
