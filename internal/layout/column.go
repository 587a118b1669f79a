// Package layout plans and draws paginated tables: fixed column budgets,
// a row-height page-flow state machine, and header repetition after every
// page break. It draws through canvas.Canvas and knows nothing about
// reports or records.
package layout

import (
	"errors"
	"fmt"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/canvas"
)

var (
	// ErrTableTooWide is returned when the column budget exceeds the printable width.
	ErrTableTooWide = errors.New("table wider than printable area")

	// ErrRowTooTall is returned when not even one row fits between the top margin and maxY.
	ErrRowTooTall = errors.New("row height does not fit on a page")
)

// Column is one table column.
type Column struct {
	Header string
	Width  float64
	Align  canvas.Align
	// MaxChars hard-truncates longer values with an ellipsis. Zero disables it.
	MaxChars int
}

// Table is an ordered column layout starting at Left.
type Table struct {
	Left    float64
	Columns []Column
}

// Width is the sum of column widths.
func (t Table) Width() float64 {
	var w float64
	for _, c := range t.Columns {
		w += c.Width
	}
	return w
}

// X returns the left edge of column i.
func (t Table) X(i int) float64 {
	x := t.Left
	for _, c := range t.Columns[:i] {
		x += c.Width
	}
	return x
}

// Headers returns the header labels in column order.
func (t Table) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
	}
	return out
}

// Validate checks the table fits a page of the given width with the same
// margin on both sides as on the left.
func (t Table) Validate(pageWidth float64) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrTableTooWide)
	}
	printable := pageWidth - 2*t.Left
	if t.Width() > printable {
		return fmt.Errorf("%w: %.0fmm > %.0fmm", ErrTableTooWide, t.Width(), printable)
	}
	return nil
}
