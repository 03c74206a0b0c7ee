package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sekelas/kelasku/internal/export"
	"github.com/sekelas/kelasku/internal/ledger"
)

func TestService_WriteReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	payments := ledger.NewMockPaymentRepository(ctrl)
	expenses := ledger.NewMockExpenseRepository(ctrl)

	jan := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	payments.EXPECT().ListPayments(gomock.Any()).Return([]ledger.Payment{
		{StudentName: "Alicia", Amount: 50000, Week: 1, Date: jan, Month: "Januari", Year: 2025},
	}, nil)
	expenses.EXPECT().ListExpenses(gomock.Any()).Return([]ledger.Expense{
		{Description: "Snacks", Amount: 20000, Date: jan, Month: "Januari", Year: 2025},
	}, nil)

	ledgerSvc := ledger.NewService(payments, expenses, []string{"Alicia", "Dara"})
	svc := export.NewService(ledgerSvc)

	var buf bytes.Buffer

	err := svc.WriteReport(context.Background(), &buf, ledger.Period{Month: "Januari", Year: 2025})
	require.NoError(t, err)

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Laporan Kas", "Januari 2025"}, rows[0])
	assert.Equal(t, []string{"Pemasukan", "Rp50.000"}, rows[1])
	assert.Equal(t, []string{"Pengeluaran", "Rp20.000"}, rows[2])
	assert.Equal(t, []string{"Saldo", "Rp30.000"}, rows[3])

	// The blank separator line is skipped on read, so the column header is
	// row 4. One paid row for Alicia, one "belum bayar" row for Dara.
	assert.Equal(t, "Nama", rows[4][0])
	assert.Equal(t, "Alicia", rows[5][0])
	assert.Equal(t, "Rp50.000", rows[5][3])
	assert.Equal(t, "Dara", rows[6][0])
	assert.Equal(t, "belum bayar", rows[6][4])
}
