package view

import (
	"context"
	"time"

	"github.com/sekelas/kelasku/internal/currency"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders a whole-rupiah amount as an IDR string.
func FormatAmount(amount int64) string {
	return currency.FormatIDR(amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
