package canvas

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// FPDF adapts *fpdf.Fpdf to Canvas using the core Helvetica font. UTF-8
// input is translated to cp1252 so Indonesian text and the ellipsis render.
type FPDF struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	paper Paper
}

// NewFPDF starts an empty document of the given paper size in millimetres.
// No page is added; callers start with AddPage.
func NewFPDF(p Paper) *FPDF {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: p.Width, Ht: p.Height},
	})
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(fontFamily, "", 10)
	pdf.SetDrawColor(0, 0, 0)

	return &FPDF{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		paper: p,
	}
}

// NewFPDFCanvas is a Factory backed by go-pdf/fpdf.
func NewFPDFCanvas(p Paper) Canvas {
	return NewFPDF(p)
}

func (f *FPDF) PageSize() (float64, float64) { return f.paper.Width, f.paper.Height }

func (f *FPDF) AddPage() { f.pdf.AddPage() }

func (f *FPDF) PageCount() int { return f.pdf.PageCount() }

func (f *FPDF) SetPage(n int) { f.pdf.SetPage(n) }

func (f *FPDF) SetFont(style string, size float64) {
	f.pdf.SetFont(fontFamily, style, size)
}

func (f *FPDF) SetLineWidth(w float64) { f.pdf.SetLineWidth(w) }

func (f *FPDF) SetFillGray(level int) { f.pdf.SetFillColor(level, level, level) }

func (f *FPDF) Text(x, y float64, s string, align Align) {
	s = f.tr(s)
	switch align {
	case AlignCenter:
		x -= f.pdf.GetStringWidth(s) / 2
	case AlignRight:
		x -= f.pdf.GetStringWidth(s)
	}
	f.pdf.Text(x, y, s)
}

func (f *FPDF) StringWidth(s string) float64 {
	return f.pdf.GetStringWidth(f.tr(s))
}

func (f *FPDF) Rect(x, y, w, h float64, filled bool) {
	style := "D"
	if filled {
		style = "FD"
	}
	f.pdf.Rect(x, y, w, h, style)
}

func (f *FPDF) Line(x1, y1, x2, y2 float64) { f.pdf.Line(x1, y1, x2, y2) }

// Image validates the image before registering it. A registration failure
// is cleared from the document so the caller can carry on without the image.
func (f *FPDF) Image(name string, r io.Reader, x, y, w, h float64) error {
	const op = "Image"

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s: failed to read %s: %w", op, name, err)
	}
	_, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: failed to decode %s: %w", op, name, err)
	}

	opts := fpdf.ImageOptions{ImageType: strings.ToUpper(kind), ReadDpi: false}
	f.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if err := f.pdf.Error(); err != nil {
		f.pdf.ClearError()
		return fmt.Errorf("%s: failed to register %s: %w", op, name, err)
	}
	f.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

func (f *FPDF) Output(w io.Writer) error { return f.pdf.Output(w) }

func (f *FPDF) Err() error { return f.pdf.Error() }
