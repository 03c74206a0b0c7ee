package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/sekelas/kelasku/internal/stream"
)

// Watcher combines live snapshots of the kas and pengeluaran collections
// into a stream of recomputed summaries. The two underlying streams update
// independently; every event from either side triggers a full recompute.
type Watcher struct {
	payments *stream.Subscription[Payment]
	expenses *stream.Subscription[Expense]

	summaries chan Summary
	done      chan struct{}
	closeOnce sync.Once
}

// Watch subscribes to both collections for the given period. The returned
// watcher must be closed when the consuming view goes away.
func (s *Service) Watch(ctx context.Context, period Period, interval time.Duration) *Watcher {
	w := &Watcher{
		payments:  stream.Subscribe(ctx, s.payments.ListPayments, interval),
		expenses:  stream.Subscribe(ctx, s.expenses.ListExpenses, interval),
		summaries: make(chan Summary, 1),
		done:      make(chan struct{}),
	}

	go w.run(period, s.roster, s.now)

	return w
}

// Summaries emits a fresh read model after every snapshot change. Closed
// when the watcher closes.
func (w *Watcher) Summaries() <-chan Summary {
	return w.summaries
}

// Close tears down both subscriptions. Idempotent.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		w.payments.Close()
		w.expenses.Close()
		close(w.done)
	})
}

func (w *Watcher) run(period Period, roster []string, now func() time.Time) {
	defer close(w.summaries)

	var (
		payments []Payment
		expenses []Expense
	)

	paymentEvents := w.payments.Events()
	expenseEvents := w.expenses.Events()

	for paymentEvents != nil || expenseEvents != nil {
		select {
		case <-w.done:
			return
		case snap, ok := <-paymentEvents:
			if !ok {
				paymentEvents = nil
				continue
			}

			payments = snap.Docs
		case snap, ok := <-expenseEvents:
			if !ok {
				expenseEvents = nil
				continue
			}

			expenses = snap.Docs
		}

		w.send(Aggregate(payments, expenses, period, roster, now()))
	}
}

// send coalesces like the underlying streams: an unread older summary is
// displaced so the consumer always renders the newest state.
func (w *Watcher) send(sum Summary) {
	for {
		select {
		case <-w.done:
			return
		case w.summaries <- sum:
			return
		default:
			select {
			case <-w.summaries:
			default:
			}
		}
	}
}
