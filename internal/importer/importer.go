// Package importer parses kas CSV exports (the treasurer's old spreadsheet
// format) into payment params for bulk recording.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sekelas/kelasku/internal/ledger"
)

// Expected header columns, matched case-insensitively. Catatan is optional.
const (
	colDate   = "tanggal"
	colName   = "nama"
	colAmount = "jumlah"
	colWeek   = "minggu"
	colNote   = "catatan"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the CSV and returns one payment per data row. Rows with an
// empty or unparseable date are skipped (footer lines, running totals);
// anything else malformed fails the whole file so a typo is caught before
// import, not after.
func (p *Parser) Parse(r io.Reader) ([]ledger.PaymentParams, error) {
	decoded, err := utf8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no header row found: expected columns Tanggal, Nama, Jumlah, Minggu")
	}

	var params []ledger.PaymentParams

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2 // 1-based, counting the header

		date, ok := parseDate(cellValue(row, cols[colDate]))
		if !ok {
			continue
		}

		name := cellValue(row, cols[colName])
		if name == "" {
			return nil, fmt.Errorf("row %d: missing student name", rowNum)
		}

		amount, err := parseAmount(cellValue(row, cols[colAmount]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		week, err := strconv.Atoi(cellValue(row, cols[colWeek]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad week value", rowNum)
		}

		var note string
		if idx, ok := cols[colNote]; ok {
			note = cellValue(row, idx)
		}

		params = append(params, ledger.PaymentParams{
			StudentName: name,
			Amount:      amount,
			Week:        week,
			Note:        note,
			Date:        date,
		})
	}

	return params, nil
}

func findHeader(rows [][]string) (map[string]int, int, bool) {
	for rowIdx, row := range rows {
		cols := make(map[string]int)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		required := []string{colDate, colName, colAmount, colWeek}

		found := true

		for _, name := range required {
			if _, ok := cols[name]; !ok {
				found = false
				break
			}
		}

		if found {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount accepts "50000", "50.000", and "Rp 50.000".
func parseAmount(s string) (int64, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Rp"))
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if cleaned == "" {
		return 0, fmt.Errorf("missing amount")
	}

	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q", s)
	}

	return amount, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
