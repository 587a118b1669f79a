package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/canvas"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/format"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/layout"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
)

const (
	margin = 15.0

	// signatureReserve is the height kept free below the last row for the
	// closing block; less than that forces a page break.
	signatureReserve = 40.0
	revenueReserve   = 45.0
)

const (
	government = "PEMERINTAH KABUPATEN MAMBERAMO RAYA"
	agency     = "BADAN PENDAPATAN PENGELOLAAN KEUANGAN"
	agencyTail = "DAN ASET DAERAH"
)

var folioAddress = []string{
	"KANTOR OTONOM PEMDA KABUPATEN MAMBERAMO RAYA",
	"JL. LINGKAR BURMESO DISTRIK MAMBERAMO TENGAH",
	"KABUPATEN MAMBERAMO RAYA PROVINSI PAPUA",
}

var revenueAddress = []string{
	"KANTOR OTONOM PEMDA KABUPATEN MAMBERAMO RAYA JL. LINGKAR BURMESO",
	"DISTRIK MAMBERAMO TENGAH KABUPATEN MAMBERAMO RAYA PROVINSI PAPUA",
}

// Signatory fills the closing block.
type Signatory struct {
	Place string
	Title string
	Name  string
	NIP   string
}

// DefaultSignatory is used when no signatory is configured.
var DefaultSignatory = Signatory{
	Place: "Burmeso",
	Title: "Kepala Bidang Pendapatan Daerah",
	Name:  "Nama Lengkap",
	NIP:   "......................",
}

// Builder draws Documents onto a canvas.
type Builder struct {
	logo      []byte
	signatory Signatory
	log       zerolog.Logger
}

// NewBuilder creates a builder. logo may be nil; it is embedded best effort.
func NewBuilder(logo []byte, sig Signatory) *Builder {
	if sig.Place == "" {
		sig.Place = DefaultSignatory.Place
	}
	if sig.Title == "" {
		sig.Title = DefaultSignatory.Title
	}
	if sig.Name == "" {
		sig.Name = DefaultSignatory.Name
	}
	if sig.NIP == "" {
		sig.NIP = DefaultSignatory.NIP
	}
	return &Builder{
		logo:      logo,
		signatory: sig,
		log:       logger.WithComponent("report"),
	}
}

// Build draws doc onto c, which must be empty. printed is the date shown in
// the closing block. Any drawing failure, including a panic inside the PDF
// writer, is returned as ErrBuildFailed.
func (b *Builder) Build(c canvas.Canvas, doc Document, printed time.Time) (err error) {
	const op = "Build"

	defer func() {
		if r := recover(); r != nil {
			err = NewReportError(op, ErrBuildFailed, fmt.Sprint(r))
		}
	}()

	pageWidth, _ := c.PageSize()
	for _, s := range doc.Sections {
		if verr := s.Table.Validate(pageWidth); verr != nil {
			return NewReportError(op, fmt.Errorf("%w: %w", ErrBuildFailed, verr), doc.Name)
		}
	}

	c.AddPage()
	var y float64
	switch doc.Masthead {
	case RevenueMasthead:
		y = b.revenueMasthead(c, doc)
	default:
		y = b.folioMasthead(c, doc)
	}

	g := doc.Geometry
	planner, perr := layout.NewPlanner(g.Top, g.MaxY, g.RowHeight, y)
	if perr != nil {
		return NewReportError(op, fmt.Errorf("%w: %w", ErrBuildFailed, perr), doc.Name)
	}

	for i, s := range doc.Sections {
		b.section(c, planner, g, s, i == 0)
	}

	var last *Section
	if n := len(doc.Sections); n > 0 {
		last = &doc.Sections[n-1]
	}
	switch doc.Closing {
	case RevenueClosing:
		b.revenueClosing(c, planner, last, printed)
	default:
		b.signature(c, planner, printed)
	}

	b.footers(c)

	if cerr := c.Err(); cerr != nil {
		return NewReportError(op, fmt.Errorf("%w: %w", ErrBuildFailed, cerr), doc.Name)
	}
	return nil
}

func (b *Builder) drawLogo(c canvas.Canvas, x, y, w, h float64) {
	if len(b.logo) == 0 {
		return
	}
	if err := c.Image("logo", bytes.NewReader(b.logo), x, y, w, h); err != nil {
		b.log.Warn().Err(err).Msg("Logo could not be embedded, continuing without it")
	}
}

// folioMasthead draws the F4 letterhead and captions and returns the anchor
// of the first table row.
func (b *Builder) folioMasthead(c canvas.Canvas, doc Document) float64 {
	w, _ := c.PageSize()
	cx := w / 2
	y := doc.Geometry.Top

	b.drawLogo(c, margin, y, 20, 20)

	c.SetFont(canvas.Bold, 12)
	c.Text(cx, y+5, government, canvas.AlignCenter)
	c.SetFont(canvas.Bold, 14)
	c.Text(cx, y+11, agency, canvas.AlignCenter)
	c.Text(cx, y+17, agencyTail, canvas.AlignCenter)
	c.SetFont(canvas.Regular, 9)
	for i, line := range folioAddress {
		c.Text(cx, y+22+float64(i)*4, line, canvas.AlignCenter)
	}
	c.SetLineWidth(1)
	c.Line(margin, y+33, w-margin, y+33)
	c.SetLineWidth(0.2)

	y += 42
	c.SetFont(canvas.Bold, 14)
	c.Text(cx, y, doc.Title, canvas.AlignCenter)
	y += 7
	c.SetFont(canvas.Regular, 11)
	c.Text(cx, y, doc.Period, canvas.AlignCenter)

	c.SetFont(canvas.Regular, 10)
	for _, line := range doc.Summary {
		y += 6
		c.Text(cx, y, line, canvas.AlignCenter)
	}
	return y + doc.Geometry.RowHeight + 2
}

func (b *Builder) revenueMasthead(c canvas.Canvas, doc Document) float64 {
	w, _ := c.PageSize()
	cx := w / 2
	y := doc.Geometry.Top

	b.drawLogo(c, margin, y-5, 22, 22)

	c.SetFont(canvas.Bold, 12)
	c.Text(cx, y, government, canvas.AlignCenter)
	c.SetFont(canvas.Bold, 13)
	c.Text(cx, y+6, agency+" "+agencyTail, canvas.AlignCenter)
	c.SetFont(canvas.Regular, 9)
	for i, line := range revenueAddress {
		c.Text(cx, y+11+float64(i)*4, line, canvas.AlignCenter)
	}
	c.SetLineWidth(1.2)
	c.Line(margin, y+19, w-margin, y+19)
	c.SetLineWidth(0.2)

	y += 28
	c.SetFont(canvas.Bold, 12)
	c.Text(cx, y, doc.Title, canvas.AlignCenter)
	y += 6
	c.SetFont(canvas.Regular, 11)
	c.Text(cx, y, doc.Period, canvas.AlignCenter)

	c.SetFont(canvas.Regular, 10)
	for _, line := range doc.Summary {
		y += 6
		c.Text(cx, y, line, canvas.AlignCenter)
	}
	return y + doc.Geometry.RowHeight + 2
}

// section draws an optional heading block followed by the table.
func (b *Builder) section(c canvas.Canvas, p *layout.Planner, g Geometry, s Section, first bool) {
	w, _ := c.PageSize()

	switch {
	case s.NewPage:
		c.AddPage()
		p.NewPage()
		p.AdvanceBy(5)
	case !first:
		// Heading, summary, header and one row must share a page.
		need := 8 + 6*float64(len(s.Summary)) + 2*g.RowHeight
		if !p.Fits(need) {
			c.AddPage()
			p.NewPage()
			p.AdvanceBy(5)
		} else {
			p.AdvanceBy(4)
		}
	}

	if s.Heading != "" || len(s.Summary) > 0 {
		if s.Heading != "" {
			c.SetFont(canvas.Bold, 12)
			c.Text(w/2, p.Y(), s.Heading, canvas.AlignCenter)
		}
		c.SetFont(canvas.Regular, 10)
		for _, line := range s.Summary {
			p.AdvanceBy(6)
			c.Text(w/2, p.Y(), line, canvas.AlignCenter)
		}
		p.AdvanceBy(g.RowHeight + 2)
	}

	r := layout.NewRenderer(c, s.Table, p, g.Style)
	r.Header()
	if len(s.Rows) == 0 {
		r.Row(emptyRow(len(s.Table.Columns)))
	}
	for _, row := range s.Rows {
		r.Row(row)
	}
	if s.Totals != nil {
		r.Totals(s.Totals)
	}
}

func emptyRow(n int) []string {
	cells := make([]string, n)
	if n > 1 {
		cells[1] = "Tidak ada data"
	} else if n == 1 {
		cells[0] = "Tidak ada data"
	}
	return cells
}

// signature draws the closing block at the right edge, at least 40mm above
// maxY, on a new page when the last row left less room than that.
func (b *Builder) signature(c canvas.Canvas, p *layout.Planner, printed time.Time) {
	g := p.MaxY - signatureReserve
	if p.Y() > g {
		c.AddPage()
		p.NewPage()
	}
	y := max(p.Y()+10, g)

	w, _ := c.PageSize()
	x := w - 80
	c.SetFont(canvas.Regular, 10)
	c.Text(x, y, fmt.Sprintf("%s, %s", b.signatory.Place, format.Printed(printed)), canvas.AlignLeft)
	c.Text(x, y+6, b.signatory.Title, canvas.AlignLeft)
	c.SetFont(canvas.Bold, 10)
	c.Text(x, y+30, b.signatory.Name, canvas.AlignLeft)
	c.SetFont(canvas.Regular, 10)
	c.Text(x, y+35, "NIP. "+b.signatory.NIP, canvas.AlignLeft)
	p.SetY(y + 35)
}

// revenueClosing draws the closing sentence and the signature block aligned
// to the right edge of the Realisasi column.
func (b *Builder) revenueClosing(c canvas.Canvas, p *layout.Planner, last *Section, printed time.Time) {
	if !p.Fits(13) {
		c.AddPage()
		p.NewPage()
	}
	y := p.Y() + 3
	c.SetFont(canvas.Regular, 10)
	c.Text(margin, y, "Demikian laporan ini kami sampaikan, atas perhatiannya kami sampaikan terima kasih.", canvas.AlignLeft)
	y += 10

	if y > p.MaxY-revenueReserve {
		c.AddPage()
		p.NewPage()
		y = p.Top + 10
	}

	w, _ := c.PageSize()
	x := w - 100
	if last != nil && len(last.Table.Columns) > 4 {
		x = last.Table.X(4) + last.Table.Columns[4].Width
	}

	c.SetFont(canvas.Regular, 10)
	c.Text(x, y, "Tanggal : "+format.Printed(printed), canvas.AlignLeft)
	c.Text(x, y+5, "Dibuat di : "+b.signatory.Place, canvas.AlignLeft)
	c.SetFont(canvas.Bold, 10)
	c.Text(x, y+12, "An. KEPALA BADAN PENDAPATAN", canvas.AlignLeft)
	c.Text(x, y+17, "PENGELOLAAN KEUANGAN DAN ASET DAERAH", canvas.AlignLeft)
	c.Text(x, y+22, "KEPALA BIDANG PENDAPATAN", canvas.AlignLeft)
	y += 22 + 18
	c.Text(x, y, b.signatory.Name, canvas.AlignLeft)
	c.SetFont(canvas.Regular, 10)
	c.Text(x, y+5, "NIP. "+b.signatory.NIP, canvas.AlignLeft)
	p.SetY(y + 5)
}

// footers is a second pass over the finished pages, since the total page
// count is only known once layout is done.
func (b *Builder) footers(c canvas.Canvas) {
	total := c.PageCount()
	w, h := c.PageSize()
	for i := 1; i <= total; i++ {
		c.SetPage(i)
		c.SetFont(canvas.Regular, 8)
		c.Text(w-30, h-10, fmt.Sprintf("Halaman %d dari %d", i, total), canvas.AlignCenter)
	}
}
