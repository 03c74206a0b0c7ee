package ledger

import (
	"sort"
	"time"
)

// StudentSummary is the per-student slice of the read model.
type StudentSummary struct {
	Total    int64
	Payments []Payment // newest-first by date
}

// Summary is the ledger read model for one reporting period. It is a pure
// derivation over the current snapshots; every recompute replaces the
// previous value entirely.
type Summary struct {
	Period       Period
	TotalIncome  int64
	TotalExpense int64
	Balance      int64

	// TodayIncome sums payments whose calendar date is today regardless of
	// the selected period. The original site computed it this way; kept as-is.
	TodayIncome int64

	// PerStudent has one entry per roster member, zero-valued when the
	// student has no payments in the period. Payments by names not on the
	// roster still count toward TotalIncome but get no bucket here.
	PerStudent map[string]StudentSummary
}

// Aggregate recomputes the read model from full snapshots of the kas and
// pengeluaran collections. Negative or missing amounts are treated as zero
// rather than rejected, so a malformed document can never stall a recompute.
func Aggregate(payments []Payment, expenses []Expense, period Period, roster []string, now time.Time) Summary {
	perStudent := make(map[string]StudentSummary, len(roster))
	for _, name := range roster {
		perStudent[name] = StudentSummary{}
	}

	var income, today int64

	for _, p := range payments {
		amount := p.Amount
		if amount < 0 {
			amount = 0
		}

		if sameDay(p.Date, now) {
			today += amount
		}

		if !period.Matches(p.Month, p.Year) {
			continue
		}

		income += amount

		if ss, ok := perStudent[p.StudentName]; ok {
			ss.Total += amount
			ss.Payments = append(ss.Payments, p)
			perStudent[p.StudentName] = ss
		}
	}

	for name, ss := range perStudent {
		sort.SliceStable(ss.Payments, func(i, j int) bool {
			return ss.Payments[i].Date.After(ss.Payments[j].Date)
		})
		perStudent[name] = ss
	}

	var expense int64

	for _, e := range expenses {
		if e.Amount <= 0 {
			continue
		}

		if period.Matches(e.Month, e.Year) {
			expense += e.Amount
		}
	}

	return Summary{
		Period:       period,
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income - expense,
		TodayIncome:  today,
		PerStudent:   perStudent,
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
