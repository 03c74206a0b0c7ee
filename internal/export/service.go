// Package export renders a period's ledger as a CSV report the treasurer
// can hand to the homeroom teacher.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sekelas/kelasku/internal/currency"
	"github.com/sekelas/kelasku/internal/ledger"
)

type Service struct {
	ledger *ledger.Service
}

func NewService(ledgerSvc *ledger.Service) *Service {
	return &Service{ledger: ledgerSvc}
}

// WriteReport writes the period summary followed by each roster member's
// payment history.
func (s *Service) WriteReport(ctx context.Context, w io.Writer, period ledger.Period) error {
	sum, err := s.ledger.Summarize(ctx, period)
	if err != nil {
		return fmt.Errorf("summarizing period: %w", err)
	}

	cw := csv.NewWriter(w)

	header := [][]string{
		{"Laporan Kas", fmt.Sprintf("%s %d", period.Month, period.Year)},
		{"Pemasukan", currency.FormatIDR(sum.TotalIncome)},
		{"Pengeluaran", currency.FormatIDR(sum.TotalExpense)},
		{"Saldo", currency.FormatIDR(sum.Balance)},
		{},
		{"Nama", "Tanggal", "Minggu", "Jumlah", "Catatan"},
	}

	for _, row := range header {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing report header: %w", err)
		}
	}

	for _, name := range s.ledger.Roster() {
		entry := sum.PerStudent[name]

		if len(entry.Payments) == 0 {
			if err := cw.Write([]string{name, "", "", currency.FormatIDR(0), "belum bayar"}); err != nil {
				return fmt.Errorf("writing report row: %w", err)
			}

			continue
		}

		for _, p := range entry.Payments {
			row := []string{
				name,
				p.Date.Format("2006-01-02"),
				strconv.Itoa(p.Week),
				currency.FormatIDR(p.Amount),
				p.Note,
			}

			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing report row: %w", err)
			}
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}

	return nil
}
