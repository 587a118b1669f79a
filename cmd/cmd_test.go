package cmd

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/compliance"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/daterange"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/dataset"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/orchestrator"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/report"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

var now = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
	return &t
}

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest("Ketetapan", "both", "ketetapan", "", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, report.Assessments, req.Type)
	assert.Equal(t, report.Both, req.Format)
	assert.Nil(t, req.Range)
	assert.Equal(t, now, req.Now)

	_, err = buildRequest("laba", "", "ketetapan", "", "", "", now)
	assert.ErrorIs(t, err, report.ErrUnknownType)

	_, err = buildRequest("wp", "tabel", "ketetapan", "", "", "", now)
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)

	_, err = buildRequest("per-objek", "", "fiskal", "", "", "", now)
	assert.Error(t, err)
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		preset    string
		from, to  string
		wantNil   bool
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{name: "no filter", wantNil: true},
		{name: "all", preset: "all", wantNil: true},
		{
			name:      "month",
			preset:    "month",
			wantStart: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   daterange.EndOfDay(now),
		},
		{
			name:      "from and to imply custom",
			from:      "2025-01-01",
			to:        "2025-01-31",
			wantStart: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   daterange.EndOfDay(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)),
		},
		{name: "inverted", preset: "custom", from: "2025-02-01", to: "2025-01-01", wantErr: true},
		{name: "bad date", preset: "custom", from: "01/02/2025", to: "2025-01-01", wantErr: true},
		{name: "bad preset", preset: "decade", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := parseRange(tt.preset, tt.from, tt.to, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, rng)
				return
			}
			require.NotNil(t, rng)
			assert.True(t, tt.wantStart.Equal(rng.Start), "start %s", rng.Start)
			assert.True(t, tt.wantEnd.Equal(rng.End), "end %s", rng.End)
		})
	}
}

func summaryDataset() *models.Dataset {
	return &models.Dataset{
		Services: []models.ServiceDefinition{
			{KodeLayanan: "P-001", NamaLayanan: "Pajak Hotel"},
			{KodeLayanan: "P-002", NamaLayanan: "Pajak Restoran"},
		},
		Assessments: []models.Assessment{
			{ID: "K1", KodeLayanan: "P-001", TotalTagihan: decimal.NewFromInt(300), Status: "Lunas", TanggalKetetapan: date(2025, time.March, 2)},
			{ID: "K2", KodeLayanan: "P-002", TotalTagihan: decimal.NewFromInt(100), Status: "Belum Lunas", TanggalKetetapan: date(2025, time.March, 3)},
			{ID: "K3", KodeLayanan: "P-001", TotalTagihan: decimal.NewFromInt(500), Status: "Lunas", TanggalKetetapan: date(2025, time.January, 9)},
		},
		Payments: []models.Payment{
			{ID: "B1", AssessmentID: "K1", JumlahBayar: decimal.NewFromInt(300), Status: "Sukses", TanggalBayar: date(2025, time.March, 4)},
			{ID: "B2", AssessmentID: "K2", JumlahBayar: decimal.NewFromInt(100), Status: "Gagal", TanggalBayar: date(2025, time.March, 5)},
		},
	}
}

func TestBuildSummaryAssessments(t *testing.T) {
	rng, err := parseRange("month", "", "", now)
	require.NoError(t, err)

	s := buildSummary(summaryDataset(), report.Assessments, rng, now)
	assert.Equal(t, "ketetapan", s.Basis)
	assert.Equal(t, 2, s.Records)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(400)))
	require.Len(t, s.Objects, 2)

	hotel := s.Objects[0]
	assert.Equal(t, "Pajak Hotel", hotel.Nama)
	assert.Equal(t, 1, hotel.PaidCount)
	assert.True(t, hotel.Paid.Equal(decimal.NewFromInt(300)))
	assert.InDelta(t, 75.0, hotel.Percent, 0.01)

	rows := summaryRows(s)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], len(summaryHeaders))
	assert.Equal(t, "2025-03-15", rows[0][0])
	assert.Equal(t, "300", rows[0][6])
	assert.Equal(t, "75.0", rows[0][7])
}

func TestBuildSummaryIgnoresPaymentsOutsideRange(t *testing.T) {
	ds := summaryDataset()
	ds.Payments = append(ds.Payments, models.Payment{
		ID: "B3", AssessmentID: "K2", JumlahBayar: decimal.NewFromInt(100), Status: "Sukses", TanggalBayar: date(2025, time.April, 2),
	})
	rng, err := parseRange("month", "", "", now)
	require.NoError(t, err)

	s := buildSummary(ds, report.Assessments, rng, now)
	require.Len(t, s.Objects, 2)
	restaurant := s.Objects[1]
	assert.Equal(t, "Pajak Restoran", restaurant.Nama)
	assert.True(t, restaurant.Paid.IsZero(), "paid %s", restaurant.Paid)

	all := buildSummary(ds, report.Assessments, nil, now)
	for _, o := range all.Objects {
		if o.Nama == "Pajak Restoran" {
			assert.True(t, o.Paid.Equal(decimal.NewFromInt(100)), "paid %s", o.Paid)
		}
	}
}

func TestReportHelpNamesFileLikeFilename(t *testing.T) {
	name := report.Filename("Wajib_Pajak", time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Laporan_Wajib_Pajak_5_Januari_2025.pdf", name)
	assert.Contains(t, reportCmd.Long, name)
	assert.NotContains(t, reportCmd.Long, "YYYY-MM-DD")
	assert.NotContains(t, proofCmd.Example, "2025-03-31")
}

func TestBuildSummaryPaymentsAllPeriods(t *testing.T) {
	s := buildSummary(summaryDataset(), report.Payments, nil, now)
	assert.Equal(t, "Semua Periode", s.Period)
	require.Len(t, s.Objects, 2)
	assert.Equal(t, 1, s.Objects[0].Success)
	assert.Equal(t, 1, s.Objects[1].Failed)
}

func TestParseStatuses(t *testing.T) {
	keep, err := parseStatuses([]string{"warning", "non_compliant"})
	require.NoError(t, err)
	assert.True(t, keep[compliance.Warning])
	assert.False(t, keep[compliance.Compliant])

	_, err = parseStatuses([]string{"great"})
	assert.Error(t, err)
}

func TestHandleReportError(t *testing.T) {
	log := zerolog.Nop()
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("Generate: %w", orchestrator.ErrBusy), "another report is still being generated"},
		{fmt.Errorf("Lookup: %w", report.ErrUnknownType), "Valid types: wp, ketetapan"},
		{dataset.NewDatasetError("Fetch", dataset.ErrAPIStatus, "Sheet tidak ditemukan"), "rejected the request"},
		{fmt.Errorf("save: %w", orchestrator.ErrSaveFailed), "PDRD_OUTPUT_DIR"},
		{errors.New("rpc error: code = PermissionDenied desc = PERMISSION_DENIED"), "permission denied"},
		{errors.New("boom"), "report processing failed: boom"},
	}
	for _, tt := range tests {
		assert.Contains(t, handleReportError(tt.err, log).Error(), tt.want)
	}
}
