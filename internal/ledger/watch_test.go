package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sekelas/kelasku/internal/ledger"
)

const watchInterval = 5 * time.Millisecond

// mutableSnapshots backs the mocked repositories with swappable result sets
// so the watcher sees the collections change over time.
type mutableSnapshots struct {
	mu       sync.Mutex
	payments []ledger.Payment
	expenses []ledger.Expense
}

func (m *mutableSnapshots) setPayments(ps []ledger.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = ps
}

func (m *mutableSnapshots) setExpenses(es []ledger.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses = es
}

func newWatchService(t *testing.T) (*ledger.Service, *mutableSnapshots) {
	t.Helper()

	ctrl := gomock.NewController(t)
	payments := ledger.NewMockPaymentRepository(ctrl)
	expenses := ledger.NewMockExpenseRepository(ctrl)

	snaps := &mutableSnapshots{}

	payments.EXPECT().ListPayments(gomock.Any()).DoAndReturn(
		func(_ context.Context) ([]ledger.Payment, error) {
			snaps.mu.Lock()
			defer snaps.mu.Unlock()
			return snaps.payments, nil
		},
	).AnyTimes()

	expenses.EXPECT().ListExpenses(gomock.Any()).DoAndReturn(
		func(_ context.Context) ([]ledger.Expense, error) {
			snaps.mu.Lock()
			defer snaps.mu.Unlock()
			return snaps.expenses, nil
		},
	).AnyTimes()

	return ledger.NewService(payments, expenses, roster), snaps
}

func recvSummary(t *testing.T, summaries <-chan ledger.Summary) ledger.Summary {
	t.Helper()

	select {
	case sum, ok := <-summaries:
		require.True(t, ok, "summaries channel closed unexpectedly")
		return sum
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for summary")
		return ledger.Summary{}
	}
}

func TestWatch_RecomputesOnSnapshotChange(t *testing.T) {
	svc, snaps := newWatchService(t)
	jan := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	w := svc.Watch(context.Background(), ledger.Period{Month: "Januari", Year: 2025}, watchInterval)
	defer w.Close()

	first := recvSummary(t, w.Summaries())
	assert.Zero(t, first.TotalIncome)

	snaps.setPayments([]ledger.Payment{
		payment("Alicia", 50000, "Januari", 2025, jan),
	})

	require.Eventually(t, func() bool {
		select {
		case sum := <-w.Summaries():
			return sum.TotalIncome == 50000
		default:
			return false
		}
	}, time.Second, watchInterval)
}

func TestWatch_DeletionShrinksTotals(t *testing.T) {
	svc, snaps := newWatchService(t)
	jan := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	snaps.setPayments([]ledger.Payment{
		payment("Alicia", 50000, "Januari", 2025, jan),
		payment("Dara", 30000, "Januari", 2025, jan),
	})

	w := svc.Watch(context.Background(), ledger.Period{Month: "Januari", Year: 2025}, watchInterval)
	defer w.Close()

	require.Eventually(t, func() bool {
		select {
		case sum := <-w.Summaries():
			return sum.TotalIncome == 80000
		default:
			return false
		}
	}, time.Second, watchInterval)

	// Snapshot-replace semantics: an admin delete must be reflected by the
	// next recompute, not papered over by incremental state.
	snaps.setPayments([]ledger.Payment{
		payment("Dara", 30000, "Januari", 2025, jan),
	})

	require.Eventually(t, func() bool {
		select {
		case sum := <-w.Summaries():
			return sum.TotalIncome == 30000 && sum.PerStudent["Alicia"].Total == 0
		default:
			return false
		}
	}, time.Second, watchInterval)
}

func TestWatch_IndependentStreams(t *testing.T) {
	svc, snaps := newWatchService(t)
	jan := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	snaps.setPayments([]ledger.Payment{
		payment("Alicia", 50000, "Januari", 2025, jan),
	})

	w := svc.Watch(context.Background(), ledger.Period{Month: "Januari", Year: 2025}, watchInterval)
	defer w.Close()

	// The expense stream updating later must converge to a consistent
	// balance without the watcher ever blocking.
	snaps.setExpenses([]ledger.Expense{
		{Description: "Snacks", Amount: 20000, Date: jan, Month: "Januari", Year: 2025},
	})

	require.Eventually(t, func() bool {
		select {
		case sum := <-w.Summaries():
			return sum.Balance == 30000
		default:
			return false
		}
	}, time.Second, watchInterval)
}

func TestWatch_CloseIsIdempotent(t *testing.T) {
	svc, _ := newWatchService(t)

	w := svc.Watch(context.Background(), ledger.Period{Month: "Januari", Year: 2025}, watchInterval)

	recvSummary(t, w.Summaries())

	w.Close()
	w.Close()

	require.Eventually(t, func() bool {
		_, ok := <-w.Summaries()
		return !ok
	}, time.Second, watchInterval)
}
