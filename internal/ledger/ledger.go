package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payment is a single "kas" contribution by a student. Payments are
// immutable once recorded; the only mutation is an admin delete.
type Payment struct {
	ID          uuid.UUID
	StudentName string
	Amount      int64 // whole rupiah
	Week        int   // 1..4 within the month
	Note        string
	Date        time.Time
	Month       string // Indonesian month name, e.g. "Januari"
	Year        int
	CreatedAt   time.Time
}

// Expense is a "pengeluaran" entry against the class treasury.
type Expense struct {
	ID          uuid.UUID
	Description string
	Amount      int64
	Date        time.Time
	Month       string
	Year        int
	CreatedAt   time.Time
}

// Period is the reporting period the ledger is displayed for.
type Period struct {
	Month string
	Year  int
}

// Matches reports whether a document's (month, year) pair falls in the
// period. Month comparison is case-insensitive since the value arrives
// from free-form documents.
func (p Period) Matches(month string, year int) bool {
	return p.Year == year && strings.EqualFold(p.Month, month)
}

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name for a calendar month.
func MonthName(m time.Month) string {
	return monthNames[int(m)-1]
}

// ValidMonth reports whether s is a known month name.
func ValidMonth(s string) bool {
	for _, name := range monthNames {
		if strings.EqualFold(name, s) {
			return true
		}
	}

	return false
}

// PeriodOf returns the reporting period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: MonthName(t.Month()), Year: t.Year()}
}
