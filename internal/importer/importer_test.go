package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekelas/kelasku/internal/importer"
)

func TestParser_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Rekap Kas Kelas XI-2",
		"",
		"Tanggal,Nama,Jumlah,Minggu,Catatan",
		"06/01/2025,Alicia,50.000,1,",
		"06/01/2025,Dara,Rp 30.000,1,titip ke bendahara",
		"13/01/2025,Alicia,20000,2,",
		"Total,,100.000,,",
	}, "\n")

	params, err := importer.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, "Alicia", params[0].StudentName)
	assert.Equal(t, int64(50000), params[0].Amount)
	assert.Equal(t, 1, params[0].Week)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), params[0].Date)

	assert.Equal(t, "Dara", params[1].StudentName)
	assert.Equal(t, int64(30000), params[1].Amount)
	assert.Equal(t, "titip ke bendahara", params[1].Note)

	assert.Equal(t, 2, params[2].Week)
}

func TestParser_Parse_UTF8BOM(t *testing.T) {
	input := "\xEF\xBB\xBFTanggal,Nama,Jumlah,Minggu\n06/01/2025,Alicia,5000,1\n"

	params, err := importer.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Alicia", params[0].StudentName)
}

func TestParser_Parse_ISODates(t *testing.T) {
	input := "Tanggal,Nama,Jumlah,Minggu\n2025-01-06,Alicia,5000,1\n"

	params, err := importer.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), params[0].Date)
}

func TestParser_Parse_Errors(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		wantErr string
	}

	tests := []testCase{
		{
			name:    "NoHeader",
			input:   "a,b,c\n1,2,3\n",
			wantErr: "no header row",
		},
		{
			name:    "MissingName",
			input:   "Tanggal,Nama,Jumlah,Minggu\n06/01/2025,,5000,1\n",
			wantErr: "missing student name",
		},
		{
			name:    "BadAmount",
			input:   "Tanggal,Nama,Jumlah,Minggu\n06/01/2025,Alicia,lima ribu,1\n",
			wantErr: "bad amount",
		},
		{
			name:    "BadWeek",
			input:   "Tanggal,Nama,Jumlah,Minggu\n06/01/2025,Alicia,5000,x\n",
			wantErr: "bad week",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NewParser().Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
