package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrinted(t *testing.T) {
	assert.Equal(t, "5 Januari 2025", Printed(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "31 Desember 2024", Printed(time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)))
}

func TestPrintedPtr(t *testing.T) {
	assert.Equal(t, "-", PrintedPtr(nil))

	d := time.Date(2025, time.August, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "17 Agustus 2025", PrintedPtr(&d))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Mei", MonthName(time.May))
	assert.Equal(t, "", MonthName(time.Month(13)))
}

func TestFilenameDate(t *testing.T) {
	assert.Equal(t, "5_Januari_2025", FilenameDate(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)))
}
