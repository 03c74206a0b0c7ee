package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sekelas/kelasku/internal/currency"
)

func TestFormatIDR(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{50000, "Rp50.000"},
		{1250000, "Rp1.250.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, currency.FormatIDR(tt.amount))
	}
}
