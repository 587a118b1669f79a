package canvas

import (
	"io"
	"unicode/utf8"
)

// Op is one recorded drawing call.
type Op struct {
	Kind  string // "text", "rect", "line", "image", "page"
	Page  int
	X, Y  float64
	W, H  float64
	Text  string
	Align Align
	Style string
	Size  float64
	Fill  bool
}

// Recorder is an in-memory Canvas. StringWidth approximates glyphs as
// 0.2 mm per point of font size, which is close to Helvetica's average.
type Recorder struct {
	Paper Paper
	Ops   []Op

	// FailImages makes every Image call fail, as a missing logo would.
	FailImages bool

	pages   int
	current int
	style   string
	size    float64
}

// NewRecorder returns an empty recorder for p.
func NewRecorder(p Paper) *Recorder {
	return &Recorder{Paper: p, size: 10}
}

func (r *Recorder) PageSize() (float64, float64) { return r.Paper.Width, r.Paper.Height }

func (r *Recorder) AddPage() {
	r.pages++
	r.current = r.pages
	r.Ops = append(r.Ops, Op{Kind: "page", Page: r.current})
}

func (r *Recorder) PageCount() int { return r.pages }

func (r *Recorder) SetPage(n int) { r.current = n }

func (r *Recorder) SetFont(style string, size float64) {
	r.style, r.size = style, size
}

func (r *Recorder) SetLineWidth(float64) {}

func (r *Recorder) SetFillGray(int) {}

func (r *Recorder) Text(x, y float64, s string, align Align) {
	r.Ops = append(r.Ops, Op{Kind: "text", Page: r.current, X: x, Y: y, Text: s, Align: align, Style: r.style, Size: r.size})
}

func (r *Recorder) StringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.size * 0.2
}

func (r *Recorder) Rect(x, y, w, h float64, filled bool) {
	r.Ops = append(r.Ops, Op{Kind: "rect", Page: r.current, X: x, Y: y, W: w, H: h, Fill: filled})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.Ops = append(r.Ops, Op{Kind: "line", Page: r.current, X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (r *Recorder) Image(name string, rd io.Reader, x, y, w, h float64) error {
	if r.FailImages {
		return io.ErrUnexpectedEOF
	}
	r.Ops = append(r.Ops, Op{Kind: "image", Page: r.current, X: x, Y: y, W: w, H: h, Text: name})
	return nil
}

// Output writes a one-line stand-in document.
func (r *Recorder) Output(w io.Writer) error {
	_, err := io.WriteString(w, "%PDF-recorded\n")
	return err
}

func (r *Recorder) Err() error { return nil }

// Texts returns every string drawn on page, in drawing order.
func (r *Recorder) Texts(page int) []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" && op.Page == page {
			out = append(out, op.Text)
		}
	}
	return out
}

// Find returns the first text op equal to s.
func (r *Recorder) Find(s string) (Op, bool) {
	for _, op := range r.Ops {
		if op.Kind == "text" && op.Text == s {
			return op, true
		}
	}
	return Op{}, false
}

// OfKind returns all ops of a kind.
func (r *Recorder) OfKind(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
