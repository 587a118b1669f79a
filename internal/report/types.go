// Package report turns a dataset snapshot into paginated PDF documents.
//
// Every report type is a Definition in a lookup table. A definition composes
// a Document (masthead captions, sections of table rows, totals, closing
// block) and the Builder draws any Document onto a canvas, delegating page
// flow to the layout package. Adding a report type means adding a
// definition, never new drawing code.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/daterange"
)

// Type is the report-type key selected by the caller.
type Type string

const (
	Taxpayers   Type = "wp"
	Assessments Type = "ketetapan"
	Payments    Type = "pembayaran"
	Fiscals     Type = "fiskal"
	Revenue     Type = "pendapatan"
	PerObject   Type = "per-objek"
	Overdue     Type = "wp-jatuh-tempo"
)

// Types lists every report type in menu order.
var Types = []Type{Taxpayers, Assessments, Payments, Fiscals, Revenue, PerObject, Overdue}

// ParseType validates a report-type key.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Format selects which tables of a report are emitted.
type Format string

const (
	Detailed Format = "detailed"
	ByObject Format = "per-objek"
	Both     Format = "both"
)

// ParseFormat validates a format name. An empty name selects Detailed.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Detailed, nil
	case Detailed, ByObject, Both:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Request is one report invocation.
type Request struct {
	Type   Type
	Format Format

	// Basis picks the record set of the per-objek report, Assessments or
	// Payments. Empty means Assessments.
	Basis Type

	// Range filters records by the report's date field. Nil disables
	// filtering and the period prints as "Semua Periode".
	Range *daterange.Range

	// Now is the print date and the reference instant for due and validity
	// checks.
	Now time.Time
}
