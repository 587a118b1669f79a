package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.August, 20, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePresets(t *testing.T) {
	tests := []struct {
		preset    Preset
		wantStart time.Time
		label     string
	}{
		{Today, day(2025, time.August, 20), "Agustus 2025"},
		{Week, day(2025, time.August, 13), "Agustus 2025"},
		{Month, day(2025, time.August, 1), "Agustus 2025"},
		{Quarter, day(2025, time.July, 1), "Triwulan 3 2025"},
		{Year, day(2025, time.January, 1), "Tahun 2025"},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			r, err := Resolve(tt.preset, now, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, EndOfDay(now), r.End)
			assert.Equal(t, tt.label, r.Label())
		})
	}
}

func TestResolveCustom(t *testing.T) {
	from, to := day(2025, time.January, 5), day(2025, time.February, 10)

	r, err := Resolve(Custom, now, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, "5 Januari 2025 – 10 Februari 2025", r.Label())
	assert.Equal(t, "5 Januari 2025 s/d 10 Februari 2025", r.Span())

	t.Run("missing bounds fall back to month", func(t *testing.T) {
		r, err := Resolve(Custom, now, &from, nil)
		require.NoError(t, err)
		assert.Equal(t, day(2025, time.August, 1), r.Start)
	})

	t.Run("inverted bounds", func(t *testing.T) {
		_, err := Resolve(Custom, now, &to, &from)
		assert.ErrorIs(t, err, ErrInvertedRange)
	})
}

func TestContainsIsInclusive(t *testing.T) {
	r, err := Resolve(Month, now, nil, nil)
	require.NoError(t, err)

	assert.True(t, r.Contains(day(2025, time.August, 1)))
	assert.True(t, r.Contains(time.Date(2025, time.August, 20, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(day(2025, time.August, 21)))
	assert.False(t, r.Contains(time.Date(2025, time.July, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.ContainsPtr(nil))
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, Month, p)

	p, err = ParsePreset("Quarter")
	require.NoError(t, err)
	assert.Equal(t, Quarter, p)

	_, err = ParsePreset("decade")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}
