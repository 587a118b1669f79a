package report

import (
	"fmt"
	"time"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/canvas"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/format"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/layout"
)

// Geometry is the vertical page-flow contract of a document.
type Geometry struct {
	Top       float64
	MaxY      float64
	RowHeight float64
	Style     layout.Style
}

// Masthead selects the institutional letterhead variant.
type Masthead int

const (
	// FolioMasthead is the stacked letterhead of the detailed F4 listings.
	FolioMasthead Masthead = iota
	// RevenueMasthead is the compact A4 letterhead of the PAD report.
	RevenueMasthead
)

// Closing selects the block drawn after the last table.
type Closing int

const (
	// SignatureClosing is the place/date and signatory block at the right edge.
	SignatureClosing Closing = iota
	// RevenueClosing adds the closing sentence and the An. KEPALA BADAN block.
	RevenueClosing
)

var (
	folioGeometry = Geometry{Top: 15, MaxY: 210 - 30, RowHeight: 8, Style: layout.DefaultStyle}

	revenueGeometry = Geometry{
		Top:       18,
		MaxY:      195,
		RowHeight: 7,
		Style:     layout.Style{HeaderSize: 9, BodySize: 8, HeaderFill: 230, HeaderLines: 1},
	}
)

// Section is one table of a document.
type Section struct {
	// Heading is drawn above the table. With NewPage it opens a fresh page.
	Heading string
	NewPage bool
	Summary []string

	Table  layout.Table
	Rows   [][]string
	Totals []string
}

// Document is everything the Builder needs to draw one report.
type Document struct {
	// Name is the filename component, e.g. "Wajib_Pajak".
	Name     string
	Paper    canvas.Paper
	Geometry Geometry
	Masthead Masthead
	Closing  Closing

	Title   string
	Period  string
	Summary []string

	Sections []Section
}

// Records is the number of body rows across all sections.
func (d Document) Records() int {
	var n int
	for _, s := range d.Sections {
		n += len(s.Rows)
	}
	return n
}

// Filename is "Laporan_<Name>_<printed date with underscores>.pdf".
func (d Document) Filename(printed time.Time) string {
	return Filename(d.Name, printed)
}

// Filename builds the report file name for name printed on the given date.
func Filename(name string, printed time.Time) string {
	return fmt.Sprintf("Laporan_%s_%s.pdf", name, format.FilenameDate(printed))
}
