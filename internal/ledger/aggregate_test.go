package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekelas/kelasku/internal/ledger"
)

var roster = []string{"Alicia", "Dara"}

func payment(name string, amount int64, month string, year int, date time.Time) ledger.Payment {
	return ledger.Payment{
		StudentName: name,
		Amount:      amount,
		Week:        1,
		Date:        date,
		Month:       month,
		Year:        year,
	}
}

func TestAggregate_Period(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	payments := []ledger.Payment{
		payment("Alicia", 50000, "Januari", 2025, jan),
		payment("Dara", 30000, "Januari", 2025, jan),
		payment("Alicia", 20000, "Februari", 2025, feb),
	}

	sum := ledger.Aggregate(payments, nil, ledger.Period{Month: "Januari", Year: 2025}, roster, now)

	assert.Equal(t, int64(80000), sum.TotalIncome)
	assert.Equal(t, int64(0), sum.TotalExpense)
	assert.Equal(t, int64(80000), sum.Balance)
	assert.Equal(t, int64(50000), sum.PerStudent["Alicia"].Total)
	assert.Equal(t, int64(30000), sum.PerStudent["Dara"].Total)
}

func TestAggregate_BalanceIsIncomeMinusExpense(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	payments := []ledger.Payment{
		payment("Alicia", 50000, "Januari", 2025, jan),
		payment("Dara", 30000, "Januari", 2025, jan),
	}

	expenses := []ledger.Expense{
		{Description: "Snacks", Amount: 20000, Date: jan, Month: "Januari", Year: 2025},
		{Description: "Out of period", Amount: 99999, Date: jan, Month: "Februari", Year: 2025},
	}

	sum := ledger.Aggregate(payments, expenses, ledger.Period{Month: "Januari", Year: 2025}, roster, now)

	assert.Equal(t, int64(80000), sum.TotalIncome)
	assert.Equal(t, int64(20000), sum.TotalExpense)
	assert.Equal(t, sum.TotalIncome-sum.TotalExpense, sum.Balance)
}

func TestAggregate_EmptySnapshot(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	sum := ledger.Aggregate(nil, nil, ledger.Period{Month: "Januari", Year: 2025}, roster, now)

	assert.Zero(t, sum.TotalIncome)
	assert.Zero(t, sum.TotalExpense)
	assert.Zero(t, sum.Balance)
	assert.Zero(t, sum.TodayIncome)

	require.Len(t, sum.PerStudent, len(roster))

	for _, name := range roster {
		entry, ok := sum.PerStudent[name]
		require.True(t, ok, "missing roster entry for %s", name)
		assert.Zero(t, entry.Total)
		assert.Empty(t, entry.Payments)
	}
}

func TestAggregate_UnknownStudent(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	payments := []ledger.Payment{
		payment("Alicia", 50000, "Januari", 2025, jan),
		payment("Zzz", 10000, "Januari", 2025, jan),
	}

	sum := ledger.Aggregate(payments, nil, ledger.Period{Month: "Januari", Year: 2025}, roster, now)

	// The off-roster payment counts toward the total but never inflates a
	// real student's bucket.
	assert.Equal(t, int64(60000), sum.TotalIncome)
	assert.Len(t, sum.PerStudent, len(roster))
	assert.Equal(t, int64(50000), sum.PerStudent["Alicia"].Total)
	assert.Zero(t, sum.PerStudent["Dara"].Total)
}

func TestAggregate_PerStudentSumsToIncome(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	payments := []ledger.Payment{
		payment("Alicia", 50000, "Januari", 2025, jan),
		payment("Alicia", 15000, "Januari", 2025, jan.AddDate(0, 0, 7)),
		payment("Dara", 30000, "Januari", 2025, jan),
	}

	sum := ledger.Aggregate(payments, nil, ledger.Period{Month: "Januari", Year: 2025}, roster, now)

	var perStudentTotal int64
	for _, entry := range sum.PerStudent {
		perStudentTotal += entry.Total
	}

	assert.Equal(t, sum.TotalIncome, perStudentTotal)
}

func TestAggregate_PaymentsNewestFirst(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	first := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	second := first.AddDate(0, 0, 7)
	third := first.AddDate(0, 0, 14)

	payments := []ledger.Payment{
		payment("Alicia", 1000, "Januari", 2025, second),
		payment("Alicia", 2000, "Januari", 2025, first),
		payment("Alicia", 3000, "Januari", 2025, third),
	}

	sum := ledger.Aggregate(payments, nil, ledger.Period{Month: "Januari", Year: 2025}, roster, now)

	got := sum.PerStudent["Alicia"].Payments
	require.Len(t, got, 3)
	assert.Equal(t, third, got[0].Date)
	assert.Equal(t, second, got[1].Date)
	assert.Equal(t, first, got[2].Date)
}

func TestAggregate_TodayIncomeIgnoresPeriod(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	today := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	payments := []ledger.Payment{
		// Same calendar date as now but booked against January: still counts
		// toward today's income, not toward the January totals' period check.
		payment("Alicia", 5000, "Januari", 2025, today),
		payment("Dara", 7000, "Maret", 2025, today),
		payment("Dara", 9000, "Maret", 2025, yesterday),
	}

	sum := ledger.Aggregate(payments, nil, ledger.Period{Month: "Januari", Year: 2025}, roster, now)

	assert.Equal(t, int64(12000), sum.TodayIncome)
	assert.Equal(t, int64(5000), sum.TotalIncome)
}

func TestAggregate_NegativeAmountCountsAsZero(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	payments := []ledger.Payment{
		payment("Alicia", -500, "Januari", 2025, jan),
		payment("Dara", 30000, "Januari", 2025, jan),
	}

	sum := ledger.Aggregate(payments, nil, ledger.Period{Month: "Januari", Year: 2025}, roster, now)

	assert.Equal(t, int64(30000), sum.TotalIncome)
	assert.Zero(t, sum.PerStudent["Alicia"].Total)
	// The malformed payment still shows up in the student's history.
	assert.Len(t, sum.PerStudent["Alicia"].Payments, 1)
}

func TestAggregate_MonthComparisonIsCaseInsensitive(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	payments := []ledger.Payment{
		payment("Alicia", 50000, "januari", 2025, jan),
	}

	sum := ledger.Aggregate(payments, nil, ledger.Period{Month: "Januari", Year: 2025}, roster, now)

	assert.Equal(t, int64(50000), sum.TotalIncome)
}
