package orchestrator

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/canvas"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/dataset"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/report"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

var printed = time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)

type fakeSource struct {
	ds      *models.Dataset
	err     error
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (f *fakeSource) Fetch(ctx context.Context) (*models.Dataset, error) {
	f.calls++
	if f.entered != nil {
		close(f.entered)
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.ds, nil
}

func sampleDataset() *models.Dataset {
	d := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	return &models.Dataset{
		Services: []models.ServiceDefinition{{KodeLayanan: "A", NamaLayanan: "Pajak Restoran"}},
		Assessments: []models.Assessment{
			{ID: "K1", NPWPD: "P-1", KodeLayanan: "A", TotalTagihan: decimal.NewFromInt(1000), TanggalKetetapan: &d},
		},
	}
}

func recorderCanvas(p canvas.Paper) canvas.Canvas { return canvas.NewRecorder(p) }

type failingOutput struct{ *canvas.Recorder }

func (failingOutput) Output(io.Writer) error { return errors.New("disk full") }

func newTestOrchestrator(t *testing.T, src dataset.Source, opts ...Option) (*Orchestrator, string) {
	t.Helper()
	dir := t.TempDir()
	opts = append([]Option{
		WithOutputDir(dir),
		WithCanvas(recorderCanvas),
		WithClock(func() time.Time { return printed }),
	}, opts...)
	return New(src, report.DefaultRegistry(), report.NewBuilder(nil, report.DefaultSignatory), opts...), dir
}

func files(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestGenerateSavesReport(t *testing.T) {
	o, dir := newTestOrchestrator(t, &fakeSource{ds: sampleDataset()})

	res, err := o.Generate(context.Background(), report.Request{Type: report.Assessments})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Laporan_Ketetapan_detailed_5_Januari_2025.pdf"), res.Path)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 1, res.Records)
	assert.NotEmpty(t, res.RunID)
	assert.Empty(t, res.ExcelPath)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-recorded\n", string(data))
	assert.Equal(t, []string{"Laporan_Ketetapan_detailed_5_Januari_2025.pdf"}, files(t, dir))
}

func TestGenerateWithExcel(t *testing.T) {
	o, dir := newTestOrchestrator(t, &fakeSource{ds: sampleDataset()}, WithExcel(true))

	res, err := o.Generate(context.Background(), report.Request{Type: report.Assessments, Format: report.Both})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Laporan_Ketetapan_both_5_Januari_2025.xlsx"), res.ExcelPath)
	assert.FileExists(t, res.ExcelPath)
	assert.Len(t, files(t, dir), 2)
}

func TestGenerateFetchFailureSavesNothing(t *testing.T) {
	src := &fakeSource{err: dataset.NewDatasetError("Fetch", dataset.ErrFetchFailed, "HTTP 502")}
	o, dir := newTestOrchestrator(t, src)

	res, err := o.Generate(context.Background(), report.Request{Type: report.Payments})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dataset.ErrFetchFailed)
	assert.Empty(t, files(t, dir))
}

func TestGenerateRejectsUnknownTypeBeforeFetching(t *testing.T) {
	src := &fakeSource{ds: sampleDataset()}
	o, _ := newTestOrchestrator(t, src)

	_, err := o.Generate(context.Background(), report.Request{Type: "neraca"})
	assert.ErrorIs(t, err, report.ErrUnknownType)

	_, err = o.Generate(context.Background(), report.Request{Type: report.Fiscals, Format: report.Both})
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)

	assert.Zero(t, src.calls)
}

func TestGenerateBuildFailureSavesNothing(t *testing.T) {
	failing := func(p canvas.Paper) canvas.Canvas { return failingOutput{canvas.NewRecorder(p)} }
	o, dir := newTestOrchestrator(t, &fakeSource{ds: sampleDataset()}, WithCanvas(failing))

	_, err := o.Generate(context.Background(), report.Request{Type: report.Assessments})
	assert.ErrorIs(t, err, report.ErrBuildFailed)
	assert.Empty(t, files(t, dir))
}

func TestGenerateIsSerialised(t *testing.T) {
	src := &fakeSource{ds: sampleDataset(), entered: make(chan struct{}), release: make(chan struct{})}
	o, _ := newTestOrchestrator(t, src)

	done := make(chan error, 1)
	go func() {
		_, err := o.Generate(context.Background(), report.Request{Type: report.Assessments})
		done <- err
	}()

	<-src.entered
	_, err := o.Generate(context.Background(), report.Request{Type: report.Taxpayers})
	assert.ErrorIs(t, err, ErrBusy)

	close(src.release)
	require.NoError(t, <-done)
}

func TestGenerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o, dir := newTestOrchestrator(t, &fakeSource{ds: sampleDataset()})

	_, err := o.Generate(ctx, report.Request{Type: report.Assessments})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, files(t, dir))
}
