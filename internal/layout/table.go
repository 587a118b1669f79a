package layout

import (
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/canvas"
)

// Style holds the font and fill settings of a table.
type Style struct {
	HeaderSize float64
	BodySize   float64
	// HeaderFill is the grey level of header cells; negative leaves them unfilled.
	HeaderFill int
	// HeaderLines caps how many lines a wrapped header label may use.
	HeaderLines int
}

// DefaultStyle matches the detailed F4 listings.
var DefaultStyle = Style{HeaderSize: 7, BodySize: 6.5, HeaderFill: 240, HeaderLines: 2}

const (
	cellPad    = 1.5
	ptToMM     = 0.3528
	lineFactor = 1.15
)

// Renderer draws a table row by row, breaking pages through its Planner.
type Renderer struct {
	c       canvas.Canvas
	table   Table
	planner *Planner
	style   Style

	// BeforeBreak runs just before a page is added, with the number of the
	// page being closed.
	BeforeBreak func(page int)

	rows int
}

// NewRenderer binds a table to a canvas and planner.
func NewRenderer(c canvas.Canvas, t Table, p *Planner, s Style) *Renderer {
	return &Renderer{c: c, table: t, planner: p, style: s}
}

// Planner exposes the underlying planner.
func (r *Renderer) Planner() *Planner { return r.planner }

// Rows is the number of body rows drawn so far.
func (r *Renderer) Rows() int { return r.rows }

// Header draws the header row at the cursor, breaking first if it does not fit.
func (r *Renderer) Header() {
	if !r.planner.Next() {
		r.breakPage(false)
	}
	r.drawHeader(r.planner.Y())
	r.planner.Advance()
}

// Row draws one body row. If it would cross the page limit, the page is
// broken and the header redrawn first.
func (r *Renderer) Row(cells []string) {
	if !r.planner.Next() {
		r.breakPage(true)
	}
	r.c.SetFont(canvas.Regular, r.style.BodySize)
	r.drawCells(r.planner.Y(), cells)
	r.planner.Advance()
	r.rows++
}

// Totals draws the closing totals row in bold. It follows the same
// page-break rule as a body row but is not counted as one.
func (r *Renderer) Totals(cells []string) {
	if !r.planner.Next() {
		r.breakPage(true)
	}
	r.c.SetFont(canvas.Bold, r.style.BodySize)
	r.drawCells(r.planner.Y(), cells)
	r.planner.Advance()
}

func (r *Renderer) breakPage(withHeader bool) {
	if r.BeforeBreak != nil {
		r.BeforeBreak(r.c.PageCount())
	}
	r.c.AddPage()
	r.planner.NewPage()
	if withHeader {
		r.drawHeader(r.planner.Y())
		r.planner.Advance()
	}
}

func (r *Renderer) borders(y float64, filled bool) {
	top := y - r.planner.RowHeight + 2
	for i, col := range r.table.Columns {
		r.c.Rect(r.table.X(i), top, col.Width, r.planner.RowHeight, filled)
	}
}

func (r *Renderer) drawHeader(y float64) {
	filled := r.style.HeaderFill >= 0
	if filled {
		r.c.SetFillGray(r.style.HeaderFill)
	}
	r.borders(y, filled)

	r.c.SetFont(canvas.Bold, r.style.HeaderSize)
	lineH := r.style.HeaderSize * ptToMM * lineFactor
	for i, col := range r.table.Columns {
		lines := Wrap(r.c, col.Header, col.Width-2*cellPad, r.style.HeaderLines)
		base := y - 1 - float64(len(lines)-1)*lineH
		for j, line := range lines {
			r.text(i, col, base+float64(j)*lineH, line)
		}
	}
}

// drawCells draws every border first, then every cell's text.
func (r *Renderer) drawCells(y float64, cells []string) {
	r.borders(y, false)
	for i, col := range r.table.Columns {
		if i >= len(cells) {
			break
		}
		s := Truncate(cells[i], col.MaxChars)
		s = Fit(r.c, s, col.Width-2*cellPad)
		r.text(i, col, y-1, s)
	}
}

func (r *Renderer) text(i int, col Column, y float64, s string) {
	x := r.table.X(i)
	switch col.Align {
	case canvas.AlignRight:
		x += col.Width - cellPad
	case canvas.AlignCenter:
		x += col.Width / 2
	default:
		x += cellPad
	}
	r.c.Text(x, y, s, col.Align)
}
