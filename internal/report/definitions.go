package report

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/aggregate"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/canvas"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/daterange"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/format"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/layout"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

// Definition binds a report type to the function that composes its document.
// Title and Table describe the detailed listing; both are zero for report
// types that only render aggregates.
type Definition struct {
	Type    Type
	Title   string
	Table   layout.Table
	Formats []Format
	Compose func(ds *models.Dataset, req Request) (Document, error)
}

// Supports reports whether f is one of the definition's formats.
func (d Definition) Supports(f Format) bool {
	return slices.Contains(d.Formats, f)
}

// Registry maps every report type to its definition.
type Registry map[Type]Definition

// DefaultRegistry returns the built-in report definitions.
func DefaultRegistry() Registry {
	detailedOnly := []Format{Detailed}
	all := []Format{Detailed, ByObject, Both}

	return Registry{
		Taxpayers:   taxpayerListing.definition(Taxpayers, detailedOnly),
		Assessments: withCompose(assessmentListing.definition(Assessments, all), composeAssessments),
		Payments:    withCompose(paymentListing.definition(Payments, all), composePayments),
		Fiscals:     fiscalListing.definition(Fiscals, detailedOnly),
		Revenue:     {Type: Revenue, Title: revenueTitle, Table: revenueTable, Formats: detailedOnly, Compose: composeRevenue},
		PerObject:   {Type: PerObject, Formats: detailedOnly, Compose: composePerObject},
		Overdue:     {Type: Overdue, Formats: detailedOnly, Compose: composeOverdue},
	}
}

func withCompose(d Definition, compose func(*models.Dataset, Request) (Document, error)) Definition {
	d.Compose = compose
	return d
}

// Lookup resolves the definition for req and checks its format.
func (r Registry) Lookup(req Request) (Definition, error) {
	const op = "Lookup"

	def, ok := r[req.Type]
	if !ok {
		return Definition{}, NewReportError(op, ErrUnknownType, string(req.Type))
	}
	if !def.Supports(req.Format) {
		return Definition{}, NewReportError(op, ErrUnsupportedFormat, fmt.Sprintf("%s/%s", req.Type, req.Format))
	}
	return def, nil
}

// Compose resolves req and builds its document from ds.
func (r Registry) Compose(ds *models.Dataset, req Request) (Document, error) {
	if req.Format == "" {
		req.Format = Detailed
	}
	def, err := r.Lookup(req)
	if err != nil {
		return Document{}, err
	}
	doc, err := def.Compose(ds, req)
	if err != nil {
		return Document{}, WrapReportError("Compose", err, string(req.Type))
	}
	return doc, nil
}

func folio(name, title, period string) Document {
	return Document{
		Name:     name,
		Paper:    canvas.F4Landscape,
		Geometry: folioGeometry,
		Masthead: FolioMasthead,
		Closing:  SignatureClosing,
		Title:    title,
		Period:   period,
	}
}

func periodCaption(label string, rng *daterange.Range) string {
	if rng == nil {
		return label + ": Semua Periode"
	}
	return label + ": " + rng.Span()
}

func no(i int) string { return strconv.Itoa(i + 1) }

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// listing describes a detailed data-table report over one record kind:
// which records it reads, the date it filters and sorts on, and how each
// record becomes a row.
type listing[T any] struct {
	Name    string
	Title   string
	Caption string
	Table   layout.Table
	Records func(ds *models.Dataset) []T
	Date    func(T) *time.Time
	Order   Direction
	Row     func(ds *models.Dataset, i int, rec T) []string
	Summary func(records []T, req Request) []string
	Totals  func(records []T) []string
}

func (l listing[T]) collect(ds *models.Dataset, rng *daterange.Range) []T {
	records := FilterByDateRange(l.Records(ds), rng, l.Date)
	SortByDate(records, l.Date, l.Order)
	return records
}

func (l listing[T]) section(ds *models.Dataset, records []T) Section {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = l.Row(ds, i, rec)
	}
	return Section{Table: l.Table, Rows: rows, Totals: l.Totals(records)}
}

func (l listing[T]) compose(ds *models.Dataset, req Request) (Document, error) {
	records := l.collect(ds, req.Range)
	doc := folio(l.Name, l.Title, periodCaption(l.Caption, req.Range))
	doc.Summary = l.Summary(records, req)
	doc.Sections = []Section{l.section(ds, records)}
	return doc, nil
}

func (l listing[T]) definition(t Type, formats []Format) Definition {
	return Definition{Type: t, Title: l.Title, Table: l.Table, Formats: formats, Compose: l.compose}
}

var taxpayerListing = listing[models.Taxpayer]{
	Name:    "Wajib_Pajak",
	Title:   "LAPORAN DATA WAJIB PAJAK",
	Caption: "Periode Pendaftaran",
	Table:   taxpayerTable,
	Records: func(ds *models.Dataset) []models.Taxpayer { return ds.Taxpayers },
	Date:    func(t models.Taxpayer) *time.Time { return t.TanggalDaftar },
	Order:   Descending,
	Row: func(_ *models.Dataset, i int, t models.Taxpayer) []string {
		return []string{
			no(i),
			format.PrintedPtr(t.TanggalDaftar),
			t.NPWPD,
			orDash(t.NamaUsaha),
			orDash(t.NamaPemilik),
			orDash(t.NIK),
			orDash(t.Alamat),
			orDash(t.Kelurahan),
			orDash(t.Kecamatan),
			orDash(t.Telepon),
		}
	},
	Summary: func(records []models.Taxpayer, _ Request) []string {
		return []string{fmt.Sprintf("Total Data: %d Wajib Pajak", len(records))}
	},
	Totals: func(records []models.Taxpayer) []string {
		return []string{"", "TOTAL", fmt.Sprintf("%d Wajib Pajak", len(records))}
	},
}

func totalBilled(records []models.Assessment) decimal.Decimal {
	total := decimal.Zero
	for _, a := range records {
		total = total.Add(a.TotalTagihan)
	}
	return total
}

var assessmentListing = listing[models.Assessment]{
	Name:    "Ketetapan_" + string(Detailed),
	Title:   "LAPORAN KETETAPAN PAJAK",
	Caption: "Periode Ketetapan",
	Table:   assessmentTable,
	Records: func(ds *models.Dataset) []models.Assessment { return ds.Assessments },
	Date:    assessmentDate,
	Order:   Ascending,
	Row: func(ds *models.Dataset, i int, a models.Assessment) []string {
		return []string{
			no(i),
			format.PrintedPtr(a.TanggalKetetapan),
			a.ID,
			ds.BusinessName(a.NPWPD),
			a.NPWPD,
			ds.ServiceName(a.KodeLayanan),
			orDash(a.MasaPajak),
			format.Currency(a.TotalTagihan),
			orDash(a.Status),
		}
	},
	Summary: func(records []models.Assessment, _ Request) []string {
		return []string{fmt.Sprintf("Total Data: %d Ketetapan", len(records))}
	},
	Totals: func(records []models.Assessment) []string {
		return []string{"", "", "", "TOTAL", "", "", "", format.Currency(totalBilled(records)), ""}
	},
}

func totalPaid(records []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range records {
		total = total.Add(p.JumlahBayar)
	}
	return total
}

var paymentListing = listing[models.Payment]{
	Name:    "Pembayaran_" + string(Detailed),
	Title:   "LAPORAN PEMBAYARAN PAJAK",
	Caption: "Periode Pembayaran",
	Table:   paymentTable,
	Records: func(ds *models.Dataset) []models.Payment { return ds.Payments },
	Date:    paymentDate,
	Order:   Ascending,
	Row: func(ds *models.Dataset, i int, p models.Payment) []string {
		npwpd := "-"
		if a, ok := ds.AssessmentByID(p.AssessmentID); ok && a.NPWPD != "" {
			npwpd = a.NPWPD
		}
		return []string{
			no(i),
			npwpd,
			ds.BusinessName(npwpd),
			p.ID,
			p.AssessmentID,
			format.PrintedPtr(p.TanggalBayar),
			format.Currency(p.JumlahBayar),
			orDash(p.MetodeBayar),
			orDash(p.Operator),
			orDash(p.Status),
		}
	},
	Summary: func(records []models.Payment, _ Request) []string {
		return []string{fmt.Sprintf("Total Data: %d Pembayaran", len(records))}
	},
	Totals: func(records []models.Payment) []string {
		return []string{"", "", "TOTAL", "", "", "", format.Currency(totalPaid(records)), "", "", ""}
	},
}

var fiscalListing = listing[models.FiscalCertificate]{
	Name:    "Fiskal",
	Title:   "LAPORAN SURAT KETERANGAN FISKAL",
	Caption: "Periode Cetak",
	Table:   fiscalTable,
	Records: func(ds *models.Dataset) []models.FiscalCertificate { return ds.Fiscals },
	Date:    func(f models.FiscalCertificate) *time.Time { return f.TanggalCetak },
	Order:   Ascending,
	Row: func(ds *models.Dataset, i int, f models.FiscalCertificate) []string {
		status := f.Status
		if status == "" {
			status = "Aktif"
		}
		return []string{
			no(i),
			f.Nomor,
			f.NPWPD,
			ds.BusinessName(f.NPWPD),
			format.PrintedPtr(f.TanggalCetak),
			format.PrintedPtr(f.TanggalBerlaku),
			status,
		}
	},
	Summary: func(records []models.FiscalCertificate, req Request) []string {
		var active int
		for _, f := range records {
			if f.IsActive(req.Now) {
				active++
			}
		}
		return []string{fmt.Sprintf("Total Data: %d Fiskal (%d masih berlaku)", len(records), active)}
	},
	Totals: func(records []models.FiscalCertificate) []string {
		return []string{"", "TOTAL", fmt.Sprintf("%d Fiskal", len(records))}
	},
}

func assessmentDate(a models.Assessment) *time.Time { return a.TanggalKetetapan }

func composeAssessments(ds *models.Dataset, req Request) (Document, error) {
	if req.Format == Detailed {
		return assessmentListing.compose(ds, req)
	}
	records := assessmentListing.collect(ds, req.Range)

	title := "LAPORAN KETETAPAN PAJAK PER OBJEK"
	if req.Format == Both {
		title = "LAPORAN KETETAPAN PAJAK DETAIL & PER OBJEK"
	}
	doc := folio("Ketetapan_"+string(req.Format), title, periodCaption(assessmentListing.Caption, req.Range))

	if req.Format == Both {
		doc.Summary = []string{
			fmt.Sprintf("Total Ketetapan: %d", len(records)),
			"Total Nilai: " + format.Currency(totalBilled(records)),
		}
		doc.Sections = append(doc.Sections, assessmentListing.section(ds, records))
	} else {
		doc.Summary = assessmentListing.Summary(records, req)
	}

	s := assessmentBuckets(aggregate.GroupAssessments(ds, records))
	if req.Format == Both {
		s.Heading = "LAPORAN KETETAPAN PAJAK PER OBJEK"
		s.NewPage = true
	}
	doc.Sections = append(doc.Sections, s)
	return doc, nil
}

func assessmentBuckets(g *aggregate.Grouping) Section {
	var paid, unpaid int
	outstanding := decimal.Zero

	buckets := g.Buckets()
	rows := make([][]string, len(buckets))
	for i, b := range buckets {
		rows[i] = []string{
			b.Kode,
			b.Nama,
			strconv.Itoa(b.Count),
			format.Currency(b.Total),
			strconv.Itoa(b.PaidCount),
			strconv.Itoa(b.UnpaidCount),
			format.Currency(b.Outstanding),
			format.Percent(b.Percent),
		}
		paid += b.PaidCount
		unpaid += b.UnpaidCount
		outstanding = outstanding.Add(b.Outstanding)
	}
	return Section{
		Table: assessmentBucketTable,
		Rows:  rows,
		Totals: []string{
			"", "TOTAL",
			strconv.Itoa(g.Count()),
			format.Currency(g.Total()),
			strconv.Itoa(paid),
			strconv.Itoa(unpaid),
			format.Currency(outstanding),
			"100.0",
		},
	}
}

func paymentDate(p models.Payment) *time.Time { return p.TanggalBayar }

func composePayments(ds *models.Dataset, req Request) (Document, error) {
	if req.Format == Detailed {
		return paymentListing.compose(ds, req)
	}
	records := paymentListing.collect(ds, req.Range)

	title := "LAPORAN PEMBAYARAN PAJAK PER OBJEK"
	if req.Format == Both {
		title = "LAPORAN PEMBAYARAN PAJAK DETAIL & PER OBJEK"
	}
	doc := folio("Pembayaran_"+string(req.Format), title, periodCaption(paymentListing.Caption, req.Range))

	if req.Format == Both {
		doc.Summary = []string{
			fmt.Sprintf("Total Pembayaran: %d", len(records)),
			"Total Nilai: " + format.Currency(totalPaid(records)),
		}
		doc.Sections = append(doc.Sections, paymentListing.section(ds, records))
	} else {
		doc.Summary = paymentListing.Summary(records, req)
	}

	s := paymentBuckets(aggregate.GroupPayments(ds, records))
	if req.Format == Both {
		s.Heading = "LAPORAN PEMBAYARAN PAJAK PER OBJEK"
		s.NewPage = true
	}
	doc.Sections = append(doc.Sections, s)
	return doc, nil
}

func paymentBuckets(g *aggregate.Grouping) Section {
	var success, failed int

	buckets := g.Buckets()
	rows := make([][]string, len(buckets))
	for i, b := range buckets {
		rows[i] = []string{
			b.Kode,
			b.Nama,
			strconv.Itoa(b.Count),
			format.Currency(b.Total),
			strconv.Itoa(b.SuccessCount),
			strconv.Itoa(b.FailedCount),
			format.Percent(b.Percent),
		}
		success += b.SuccessCount
		failed += b.FailedCount
	}
	return Section{
		Table: paymentBucketTable,
		Rows:  rows,
		Totals: []string{
			"", "TOTAL",
			strconv.Itoa(g.Count()),
			format.Currency(g.Total()),
			strconv.Itoa(success),
			strconv.Itoa(failed),
			"100.0",
		},
	}
}

const revenueTitle = "LAPORAN REALISASI PENERIMAAN PENDAPATAN ASLI DAERAH (PAD)"

func composeRevenue(ds *models.Dataset, req Request) (Document, error) {
	year := req.Now.Year()
	period := fmt.Sprintf("Tahun %d", year)
	if req.Range != nil {
		year = req.Range.End.Year()
		period = req.Range.Label()
	}
	rev := aggregate.RevenueRealization(ds, year, req.Range)

	rows := make([][]string, len(rev.Rows))
	for i, r := range rev.Rows {
		rows[i] = []string{
			strconv.Itoa(r.No),
			r.Kode,
			r.Nama,
			format.Number(r.Target),
			format.Number(r.Realisasi),
			format.Percent(r.Kontribusi),
			format.Percent(r.Capaian),
		}
	}

	return Document{
		Name:     "Realisasi_PAD",
		Paper:    canvas.A4Landscape,
		Geometry: revenueGeometry,
		Masthead: RevenueMasthead,
		Closing:  RevenueClosing,
		Title:    revenueTitle,
		Period:   "Periode: " + period,
		Sections: []Section{{
			Table: revenueTable,
			Rows:  rows,
			Totals: []string{
				"", "", "TOTAL",
				format.Number(rev.TotalTarget),
				format.Number(rev.TotalRealisasi),
				"100.0",
				format.Percent(rev.AverageCapaian),
			},
		}},
	}, nil
}

func composePerObject(ds *models.Dataset, req Request) (Document, error) {
	assessments := FilterByDateRange(ds.Assessments, req.Range, assessmentDate)
	payments := FilterByDateRange(ds.Payments, req.Range, paymentDate)

	billed := decimal.Zero
	for _, a := range assessments {
		billed = billed.Add(a.TotalTagihan)
	}
	collected := decimal.Zero
	for _, p := range payments {
		if p.IsSuccess() {
			collected = collected.Add(p.JumlahBayar)
		}
	}

	if req.Basis == Payments {
		return perObjectPayments(ds, req, payments, len(assessments), billed, collected), nil
	}
	return perObjectAssessments(ds, req, assessments, payments, billed, collected), nil
}

func perObjectSummary(objects, assessments int, billed, collected decimal.Decimal) []string {
	return []string{
		fmt.Sprintf("Total Objek Pajak: %d", objects),
		fmt.Sprintf("Total Ketetapan: %d", assessments),
		"Total Tagihan: " + format.Currency(billed),
		"Total Pembayaran: " + format.Currency(collected),
	}
}

func perObjectAssessments(ds *models.Dataset, req Request, assessments []models.Assessment, payments []models.Payment, billed, collected decimal.Decimal) Document {
	objects := aggregate.AssessmentObjects(ds, assessments, payments)

	doc := folio("Per_Objek_Pajak", "LAPORAN PER OBJEK PAJAK - BERDASARKAN KETETAPAN", periodCaption("Periode", req.Range))
	doc.Summary = perObjectSummary(len(objects), len(assessments), billed, collected)

	var count, paid, unpaid int
	total, paidSum, outstanding := decimal.Zero, decimal.Zero, decimal.Zero
	rows := make([][]string, len(objects))
	for i, o := range objects {
		rows[i] = []string{
			no(i),
			o.Kode,
			o.Nama,
			strconv.Itoa(o.Count),
			format.Currency(o.Total),
			format.Currency(o.Paid),
			strconv.Itoa(o.PaidCount),
			strconv.Itoa(o.UnpaidCount),
			format.Currency(o.Outstanding),
			format.Percent(o.PaidRatio),
		}
		count += o.Count
		paid += o.PaidCount
		unpaid += o.UnpaidCount
		total = total.Add(o.Total)
		paidSum = paidSum.Add(o.Paid)
		outstanding = outstanding.Add(o.Outstanding)
	}

	doc.Sections = []Section{{
		Table: objectAssessmentTable,
		Rows:  rows,
		Totals: []string{
			"", "", "TOTAL",
			strconv.Itoa(count),
			format.Currency(total),
			format.Currency(paidSum),
			strconv.Itoa(paid),
			strconv.Itoa(unpaid),
			format.Currency(outstanding),
			format.Percent(aggregate.Share(paidSum, total)),
		},
	}}
	return doc
}

func perObjectPayments(ds *models.Dataset, req Request, payments []models.Payment, assessments int, billed, collected decimal.Decimal) Document {
	objects := aggregate.PaymentObjects(ds, payments)

	doc := folio("Per_Objek_Pajak", "LAPORAN PER OBJEK PAJAK - BERDASARKAN PEMBAYARAN", periodCaption("Periode", req.Range))
	doc.Summary = perObjectSummary(len(objects), assessments, billed, collected)

	var count int
	total := decimal.Zero
	rows := make([][]string, len(objects))
	for i, o := range objects {
		rows[i] = []string{
			no(i),
			o.Kode,
			o.Nama,
			strconv.Itoa(o.Count),
			format.Currency(o.Total),
			o.MainMethod,
			format.Percent(o.Percent),
			format.Currency(o.Average),
		}
		count += o.Count
		total = total.Add(o.Total)
	}

	average := decimal.Zero
	if count > 0 {
		average = total.Div(decimal.NewFromInt(int64(count)))
	}
	doc.Sections = []Section{{
		Table: objectPaymentTable,
		Rows:  rows,
		Totals: []string{
			"", "", "TOTAL",
			strconv.Itoa(count),
			format.Currency(total),
			"",
			"100.0",
			format.Currency(average),
		},
	}}
	return doc
}

func composeOverdue(ds *models.Dataset, req Request) (Document, error) {
	due := func(a models.Assessment) *time.Time { return a.TanggalJatuhTempo }
	assessments := FilterByDateRange(ds.Assessments, req.Range, due)
	overdue := aggregate.OverdueTaxpayers(ds, assessments, req.Now)

	var count int
	total := decimal.Zero
	rows := make([][]string, len(overdue))
	for i, o := range overdue {
		rows[i] = []string{
			no(i),
			o.NPWPD,
			o.NamaUsaha,
			strconv.Itoa(o.Count),
			format.Currency(o.Total),
			"Jatuh Tempo",
		}
		count += o.Count
		total = total.Add(o.Total)
	}

	doc := folio("WP_Jatuh_Tempo", "LAPORAN WAJIB PAJAK DENGAN KEWAJIBAN JATUH TEMPO", periodCaption("Periode Jatuh Tempo", req.Range))
	doc.Summary = []string{
		fmt.Sprintf("Total Data: %d Wajib Pajak", len(overdue)),
		"Total Tunggakan: " + format.Currency(total),
	}
	doc.Sections = []Section{{
		Table:  overdueTable,
		Rows:   rows,
		Totals: []string{"", "", "TOTAL", strconv.Itoa(count), format.Currency(total), ""},
	}}
	return doc, nil
}
