package layout

import "fmt"

// State is the page-flow state of a Planner.
type State int

const (
	// WithinPage means the next row can be appended at the cursor.
	WithinPage State = iota
	// PageBoundary means the next row would cross MaxY; the caller must break
	// the page, reset to Top, and redraw the header before continuing.
	PageBoundary
)

func (s State) String() string {
	if s == PageBoundary {
		return "PageBoundary"
	}
	return "WithinPage"
}

// Planner tracks the vertical cursor of a table. The cursor is the row
// anchor (text baseline); a row occupies [y-RowHeight+2, y+2] and is only
// placed when y+RowHeight <= MaxY.
type Planner struct {
	Top       float64
	MaxY      float64
	RowHeight float64

	y     float64
	state State
	pages int
}

// NewPlanner starts a planner at cursor y on its first page.
func NewPlanner(top, maxY, rowHeight, y float64) (*Planner, error) {
	if rowHeight <= 0 || top+rowHeight > maxY {
		return nil, fmt.Errorf("%w: top %.1f + row %.1f > max %.1f", ErrRowTooTall, top, rowHeight, maxY)
	}
	return &Planner{Top: top, MaxY: maxY, RowHeight: rowHeight, y: y, pages: 1}, nil
}

// Y is the current cursor.
func (p *Planner) Y() float64 { return p.y }

// State reports the current page-flow state.
func (p *Planner) State() State { return p.state }

// Pages is the number of pages the planner has flowed over.
func (p *Planner) Pages() int { return p.pages }

// Fits reports whether a block of height h fits at the cursor.
func (p *Planner) Fits(h float64) bool {
	return p.y+h <= p.MaxY
}

// Next checks whether one row fits. When it does not, the planner moves to
// PageBoundary and Next returns false; the cursor is left untouched.
func (p *Planner) Next() bool {
	if p.state == PageBoundary {
		return false
	}
	if !p.Fits(p.RowHeight) {
		p.state = PageBoundary
		return false
	}
	return true
}

// Advance moves the cursor past one row.
func (p *Planner) Advance() { p.AdvanceBy(p.RowHeight) }

// AdvanceBy moves the cursor by h.
func (p *Planner) AdvanceBy(h float64) { p.y += h }

// SetY moves the cursor to y.
func (p *Planner) SetY(y float64) { p.y = y }

// NewPage resets the cursor to Top on a fresh page and resumes WithinPage.
func (p *Planner) NewPage() {
	p.y = p.Top
	p.state = WithinPage
	p.pages++
}

// Flow simulates n body rows preceded by a header row, repeating the header
// on every page, and returns how many body rows land on each page.
func (p Planner) Flow(n int) []int {
	counts := []int{0}
	p.Advance()
	for i := 0; i < n; i++ {
		if !p.Next() {
			p.NewPage()
			p.Advance()
			counts = append(counts, 0)
		}
		counts[len(counts)-1]++
		p.Advance()
	}
	return counts
}
