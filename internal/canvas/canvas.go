// Package canvas is the drawing surface the report builders target. The
// production implementation wraps go-pdf/fpdf; Recorder captures operations
// in memory so layout behaviour can be asserted without parsing PDF output.
//
// All coordinates are millimetres from the top-left corner of the page, and
// text is positioned by its baseline.
package canvas

import "io"

// Align is the horizontal anchoring of text relative to its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font styles.
const (
	Regular = ""
	Bold    = "B"
)

// Paper is a physical sheet size in millimetres, already oriented.
type Paper struct {
	Name   string
	Width  float64
	Height float64
}

var (
	// A4Landscape is 297 x 210 mm.
	A4Landscape = Paper{Name: "A4", Width: 297, Height: 210}
	// A4Portrait is 210 x 297 mm.
	A4Portrait = Paper{Name: "A4", Width: 210, Height: 297}
	// F4Landscape (folio) is 330 x 210 mm.
	F4Landscape = Paper{Name: "F4", Width: 330, Height: 210}
)

// Canvas is the set of primitives a report needs from a PDF writer.
type Canvas interface {
	// PageSize returns the current page width and height.
	PageSize() (w, h float64)
	AddPage()
	// PageCount is the number of pages added so far.
	PageCount() int
	// SetPage moves the drawing cursor to an existing 1-based page.
	SetPage(n int)

	SetFont(style string, size float64)
	SetLineWidth(w float64)
	// SetFillGray sets the fill colour used by filled rectangles, 0-255.
	SetFillGray(level int)

	Text(x, y float64, s string, align Align)
	// StringWidth measures s in the current font.
	StringWidth(s string) float64
	Rect(x, y, w, h float64, filled bool)
	Line(x1, y1, x2, y2 float64)
	// Image embeds a PNG or JPEG. A decode failure is returned and leaves
	// the canvas usable.
	Image(name string, r io.Reader, x, y, w, h float64) error

	// Output serialises the document. The canvas must not be used afterwards.
	Output(w io.Writer) error
	// Err reports a sticky drawing error, if any.
	Err() error
}

// Factory creates a fresh canvas for the given paper.
type Factory func(p Paper) Canvas
