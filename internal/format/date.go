package format

import (
	"fmt"
	"strings"
	"time"
)

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// Printed formats t as "5 Januari 2025".
func Printed(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), MonthName(t.Month()), t.Year())
}

// PrintedPtr formats t, or returns "-" when the date is missing.
func PrintedPtr(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return Printed(*t)
}

// FilenameDate is Printed with whitespace replaced by underscores.
func FilenameDate(t time.Time) string {
	return strings.Join(strings.Fields(Printed(t)), "_")
}
