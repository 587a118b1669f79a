package format

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "Rp 0"},
		{"millions", decimal.NewFromInt(1500000), "Rp 1.500.000"},
		{"below thousand", decimal.NewFromInt(950), "Rp 950"},
		{"rounds half up", decimal.RequireFromString("1999.5"), "Rp 2.000"},
		{"billions", decimal.NewFromInt(12345678901), "Rp 12.345.678.901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.amount))
		})
	}
}

func TestCurrencyDegenerateInputs(t *testing.T) {
	assert.Equal(t, "Rp 0", CurrencyPtr(nil))
	assert.Equal(t, "Rp 0", CurrencyFloat(math.NaN()))
	assert.Equal(t, "Rp 0", CurrencyFloat(math.Inf(1)))
	assert.Equal(t, "Rp 1.500.000", CurrencyFloat(1500000))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "100.0", Percent(100))
	assert.Equal(t, "33.3", Percent(100.0/3))
	assert.Equal(t, "0.0", Percent(math.NaN()))
}
