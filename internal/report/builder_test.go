package report

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/canvas"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/daterange"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/layout"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

var printed = time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)

func fixture(assessments int) *models.Dataset {
	ds := &models.Dataset{
		Taxpayers: []models.Taxpayer{
			{NPWPD: "P-001", NamaUsaha: "Toko Sinar Burmeso", TanggalDaftar: day(2024, 2, 1)},
			{NPWPD: "P-002", NamaUsaha: "Rumah Makan Kasuari", TanggalDaftar: day(2024, 5, 9)},
		},
		Services: []models.ServiceDefinition{
			{KodeLayanan: "A", NamaLayanan: "Pajak Restoran", Tipe: "Pajak"},
			{KodeLayanan: "B", NamaLayanan: "Retribusi Pasar", Tipe: "Retribusi"},
		},
		Targets: []models.Target{
			{KodeLayanan: "A", Tahun: 2025, Target: decimal.NewFromInt(1000)},
		},
	}
	for i := 0; i < assessments; i++ {
		kode, npwpd := "A", "P-001"
		if i%3 == 0 {
			kode, npwpd = "B", "P-002"
		}
		status := ""
		if i%2 == 0 {
			status = models.AssessmentPaid
		}
		ds.Assessments = append(ds.Assessments, models.Assessment{
			ID:                fmt.Sprintf("K%03d", i),
			NPWPD:             npwpd,
			KodeLayanan:       kode,
			MasaPajak:         "Januari 2025",
			TotalTagihan:      decimal.NewFromInt(int64(100 * (i + 1))),
			Status:            status,
			TanggalKetetapan:  day(2025, 1, 1+i%28),
			TanggalJatuhTempo: day(2025, 1, 1+i%28),
		})
		if status == models.AssessmentPaid {
			ds.Payments = append(ds.Payments, models.Payment{
				ID:           fmt.Sprintf("B%03d", i),
				AssessmentID: fmt.Sprintf("K%03d", i),
				JumlahBayar:  decimal.NewFromInt(int64(100 * (i + 1))),
				TanggalBayar: day(2025, 1, 2+i%27),
				MetodeBayar:  "Transfer",
				Status:       models.PaymentSuccess,
			})
		}
	}
	return ds
}

func build(t *testing.T, ds *models.Dataset, req Request) *canvas.Recorder {
	t.Helper()
	if req.Now.IsZero() {
		req.Now = printed
	}
	doc, err := DefaultRegistry().Compose(ds, req)
	require.NoError(t, err)

	rec := canvas.NewRecorder(doc.Paper)
	require.NoError(t, NewBuilder(nil, DefaultSignatory).Build(rec, doc, printed))
	return rec
}

func pagesWith(rec *canvas.Recorder, s string) []int {
	var pages []int
	for _, op := range rec.OfKind("text") {
		if op.Text == s && (len(pages) == 0 || pages[len(pages)-1] != op.Page) {
			pages = append(pages, op.Page)
		}
	}
	return pages
}

func TestBuildRepeatsHeaderOnEveryTablePage(t *testing.T) {
	rec := build(t, fixture(60), Request{Type: Assessments, Format: Detailed})

	require.Greater(t, rec.PageCount(), 2)
	tablePages := pagesWith(rec, "ID Ketetapan")
	for i, p := range tablePages {
		assert.Equal(t, i+1, p, "header missing on page %d", i+1)
	}

	for _, op := range rec.OfKind("rect") {
		assert.LessOrEqual(t, op.Y+op.H, folioGeometry.MaxY+2, "row crosses maxY on page %d", op.Page)
	}
}

func TestBuildFootersCarryTotalPageCount(t *testing.T) {
	rec := build(t, fixture(60), Request{Type: Assessments, Format: Detailed})

	n := rec.PageCount()
	for i := 1; i <= n; i++ {
		want := fmt.Sprintf("Halaman %d dari %d", i, n)
		op, ok := rec.Find(want)
		require.True(t, ok, want)
		assert.Equal(t, i, op.Page)
		assert.Equal(t, 300.0, op.X)
		assert.Equal(t, 200.0, op.Y)
	}
}

func TestBuildBothPutsPerObjectTableAfterBreak(t *testing.T) {
	ds := fixture(60)
	both := build(t, ds, Request{Type: Assessments, Format: Both})

	bothDetailed := pagesWith(both, "ID Ketetapan")
	require.NotEmpty(t, bothDetailed)

	heading := pagesWith(both, "LAPORAN KETETAPAN PAJAK PER OBJEK")
	require.Len(t, heading, 1)
	assert.Equal(t, bothDetailed[len(bothDetailed)-1]+1, heading[0])

	objectPages := pagesWith(both, "Tunggakan")
	assert.Equal(t, heading, objectPages[:1])
	assert.Equal(t, bothDetailed[len(bothDetailed)-1]+len(objectPages), both.PageCount())
}

func TestBuildPerObjectFormatAggregates(t *testing.T) {
	rec := build(t, fixture(3), Request{Type: Assessments, Format: ByObject})

	texts := rec.Texts(1)
	assert.Contains(t, texts, "LAPORAN KETETAPAN PAJAK PER OBJEK")
	assert.Contains(t, texts, "Retribusi Pasar")
	assert.Contains(t, texts, "Pajak Restoran")
	assert.Contains(t, texts, "100.0")
	assert.NotContains(t, texts, "ID Ketetapan")
}

func TestBuildEmptyTableStillRenders(t *testing.T) {
	rec := build(t, &models.Dataset{}, Request{Type: Fiscals, Format: Detailed})

	texts := rec.Texts(1)
	assert.Contains(t, texts, "Tidak ada data")
	assert.Contains(t, texts, "Total Data: 0 Fiskal (0 masih berlaku)")
	assert.Contains(t, texts, "Halaman 1 dari 1")
}

func TestBuildToleratesLogoFailure(t *testing.T) {
	doc, err := DefaultRegistry().Compose(fixture(2), Request{Type: Taxpayers, Format: Detailed, Now: printed})
	require.NoError(t, err)

	rec := canvas.NewRecorder(doc.Paper)
	rec.FailImages = true
	require.NoError(t, NewBuilder([]byte("not a png"), DefaultSignatory).Build(rec, doc, printed))
	assert.Empty(t, rec.OfKind("image"))
	assert.Contains(t, rec.Texts(1), "LAPORAN DATA WAJIB PAJAK")

	rec = canvas.NewRecorder(doc.Paper)
	require.NoError(t, NewBuilder([]byte("logo"), DefaultSignatory).Build(rec, doc, printed))
	images := rec.OfKind("image")
	require.Len(t, images, 1)
	assert.Equal(t, 15.0, images[0].X)
}

func TestBuildRejectsTooWideTable(t *testing.T) {
	doc := folio("Lebar", "LEBAR", "Periode: Semua Periode")
	doc.Sections = []Section{{Table: layout.Table{Left: 15, Columns: []layout.Column{{Header: "X", Width: 400}}}}}

	err := NewBuilder(nil, DefaultSignatory).Build(canvas.NewRecorder(doc.Paper), doc, printed)
	assert.ErrorIs(t, err, ErrBuildFailed)
	assert.ErrorIs(t, err, layout.ErrTableTooWide)

	var reportErr *ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, "Build", reportErr.Op)
}

func TestSignatureSitsAboveReserve(t *testing.T) {
	rec := build(t, fixture(1), Request{Type: Assessments, Format: Detailed})

	op, ok := rec.Find("Burmeso, 5 Januari 2025")
	require.True(t, ok)
	assert.Equal(t, folioGeometry.MaxY-signatureReserve, op.Y)
	assert.Equal(t, 250.0, op.X)

	_, ok = rec.Find("NIP. ......................")
	assert.True(t, ok)
}

func TestRevenueDocument(t *testing.T) {
	rec := build(t, fixture(6), Request{Type: Revenue, Format: Detailed})

	assert.Equal(t, canvas.A4Landscape, rec.Paper)
	texts := rec.Texts(1)
	assert.Contains(t, texts, "LAPORAN REALISASI PENERIMAAN PENDAPATAN ASLI DAERAH (PAD)")
	assert.Contains(t, texts, "Periode: Tahun 2025")
	assert.Contains(t, texts, "Uraian Pajak/Retribusi")

	// A has a target of 1000 and paid assessments K002 and K004 (300 + 500).
	assert.Contains(t, texts, "80.0")
	assert.Contains(t, texts, "100.0")

	op, ok := rec.Find("Dibuat di : Burmeso")
	require.True(t, ok)
	assert.Equal(t, 193.0, op.X)
	_, ok = rec.Find("An. KEPALA BADAN PENDAPATAN")
	assert.True(t, ok)
}

func TestRegistryRejectsUnknownAndUnsupported(t *testing.T) {
	reg := DefaultRegistry()

	_, err := reg.Compose(&models.Dataset{}, Request{Type: "laba-rugi"})
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = reg.Compose(&models.Dataset{}, Request{Type: Taxpayers, Format: Both})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	for _, typ := range Types {
		_, ok := reg[typ]
		assert.True(t, ok, "%s has no definition", typ)
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Laporan_Wajib_Pajak_5_Januari_2025.pdf", Filename("Wajib_Pajak", printed))

	doc, err := DefaultRegistry().Compose(fixture(1), Request{Type: Assessments, Format: Both, Now: printed})
	require.NoError(t, err)
	assert.Equal(t, "Laporan_Ketetapan_both_5_Januari_2025.pdf", doc.Filename(printed))
}

func TestOverdueDocumentGroupsByTaxpayer(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	rec := build(t, fixture(6), Request{Type: Overdue, Format: Detailed, Now: now})

	texts := rec.Texts(1)
	assert.Contains(t, texts, "LAPORAN WAJIB PAJAK DENGAN KEWAJIBAN JATUH TEMPO")
	assert.Contains(t, texts, "Jatuh Tempo")
	// Unpaid K001 and K005 belong to P-001, K003 to P-002.
	assert.Contains(t, texts, "Total Data: 2 Wajib Pajak")
}

func TestRevenueClosingSentenceStaysInsideBody(t *testing.T) {
	const sentence = "Demikian laporan ini kami sampaikan, atas perhatiannya kami sampaikan terima kasih."

	for n := 1; n <= 40; n++ {
		rows := make([][]string, n)
		for i := range rows {
			rows[i] = []string{strconv.Itoa(i + 1), "A", "Pajak Restoran", "1.000", "800", "100.0", "80.0"}
		}
		doc := Document{
			Name:     "Realisasi_PAD",
			Paper:    canvas.A4Landscape,
			Geometry: revenueGeometry,
			Masthead: RevenueMasthead,
			Closing:  RevenueClosing,
			Title:    revenueTitle,
			Period:   "Periode: Tahun 2025",
			Sections: []Section{{
				Table:  revenueTable,
				Rows:   rows,
				Totals: []string{"", "", "TOTAL", "1.000", "800", "100.0", "80.0"},
			}},
		}

		rec := canvas.NewRecorder(doc.Paper)
		require.NoError(t, NewBuilder(nil, DefaultSignatory).Build(rec, doc, printed))

		op, ok := rec.Find(sentence)
		require.True(t, ok)
		assert.LessOrEqual(t, op.Y, revenueGeometry.MaxY, "%d rows", n)
	}
}

func TestRegistryDescribesListings(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		typ   Type
		title string
		table layout.Table
	}{
		{Taxpayers, "LAPORAN DATA WAJIB PAJAK", taxpayerTable},
		{Assessments, "LAPORAN KETETAPAN PAJAK", assessmentTable},
		{Payments, "LAPORAN PEMBAYARAN PAJAK", paymentTable},
		{Fiscals, "LAPORAN SURAT KETERANGAN FISKAL", fiscalTable},
		{Revenue, revenueTitle, revenueTable},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			def := reg[tt.typ]
			assert.Equal(t, tt.title, def.Title)
			assert.Equal(t, len(tt.table.Columns), len(def.Table.Columns))
		})
	}

	assert.Equal(t, Descending, taxpayerListing.Order)
	assert.Equal(t, Ascending, assessmentListing.Order)
	assert.Equal(t, Ascending, paymentListing.Order)
	assert.Equal(t, Ascending, fiscalListing.Order)
}

func TestListingFiltersAndSortsOnItsDate(t *testing.T) {
	ds := &models.Dataset{
		Taxpayers: []models.Taxpayer{
			{NPWPD: "P-1", TanggalDaftar: day(2025, 1, 3)},
			{NPWPD: "P-2", TanggalDaftar: day(2025, 1, 20)},
			{NPWPD: "P-3", TanggalDaftar: day(2024, 12, 31)},
			{NPWPD: "P-4"},
		},
	}
	rng := &daterange.Range{
		Preset: daterange.Custom,
		Start:  daterange.StartOfDay(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		End:    daterange.EndOfDay(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)),
	}

	records := taxpayerListing.collect(ds, rng)
	require.Len(t, records, 2)
	assert.Equal(t, "P-2", records[0].NPWPD)
	assert.Equal(t, "P-1", records[1].NPWPD)

	doc, err := taxpayerListing.compose(ds, Request{Type: Taxpayers, Format: Detailed, Range: rng, Now: printed})
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "1", doc.Sections[0].Rows[0][0])
	assert.Equal(t, "P-2", doc.Sections[0].Rows[0][2])
	assert.Equal(t, []string{"Total Data: 2 Wajib Pajak"}, doc.Summary)
}
