// Package orchestrator runs one report end to end: resolve the definition,
// fetch the dataset, compose, draw, and save. Runs are serialised; a request
// arriving while another is in flight fails fast with ErrBusy.
package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/canvas"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/dataset"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/export"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/report"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

var (
	// ErrBusy is returned when a report is already being generated.
	ErrBusy = errors.New("another report is being generated")

	// ErrSaveFailed is returned when the finished document cannot be written.
	ErrSaveFailed = errors.New("failed to save report")
)

// Result describes a saved report.
type Result struct {
	RunID     string    `json:"run_id"`
	Type      string    `json:"type"`
	Format    string    `json:"format"`
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	ExcelPath string    `json:"excel_path,omitempty"`
	Pages     int       `json:"pages"`
	Records   int       `json:"records"`
	Printed   time.Time `json:"printed"`
}

// Orchestrator wires a dataset source, the report registry, and a builder.
type Orchestrator struct {
	source    dataset.Source
	registry  report.Registry
	builder   *report.Builder
	newCanvas canvas.Factory
	outputDir string
	excel     bool
	now       func() time.Time

	mu  sync.Mutex
	log zerolog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithOutputDir sets where reports are saved. Default is the working directory.
func WithOutputDir(dir string) Option {
	return func(o *Orchestrator) { o.outputDir = dir }
}

// WithCanvas replaces the PDF canvas factory.
func WithCanvas(f canvas.Factory) Option {
	return func(o *Orchestrator) { o.newCanvas = f }
}

// WithExcel also saves an .xlsx copy of every report.
func WithExcel(enabled bool) Option {
	return func(o *Orchestrator) { o.excel = enabled }
}

// WithClock overrides the print-date clock.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an orchestrator. Definitions are fixed at construction time.
func New(source dataset.Source, registry report.Registry, builder *report.Builder, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		source:    source,
		registry:  registry,
		builder:   builder,
		newCanvas: canvas.NewFPDFCanvas,
		outputDir: ".",
		now:       time.Now,
		log:       logger.WithComponent("orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate produces and saves one report. Nothing is written unless the
// whole document was built.
func (o *Orchestrator) Generate(ctx context.Context, req report.Request) (*Result, error) {
	const op = "Generate"

	if !o.mu.TryLock() {
		return nil, fmt.Errorf("%s: %w", op, ErrBusy)
	}
	defer o.mu.Unlock()

	runID := uuid.NewString()
	log := logger.WithRequestID(runID).With().
		Str("component", "orchestrator").
		Str("type", string(req.Type)).
		Str("format", string(req.Format)).
		Logger()

	if req.Format == "" {
		req.Format = report.Detailed
	}
	if req.Now.IsZero() {
		req.Now = o.now()
	}

	if _, err := o.registry.Lookup(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info().Msg("Fetching dataset")
	start := time.Now()
	ds, err := o.source.Fetch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Dataset fetch failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("Dataset fetched")

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	doc, pdf, pages, err := o.render(ds, req, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filename := doc.Filename(req.Now)
	path, err := o.save(filename, pdf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &Result{
		RunID:   runID,
		Type:    string(req.Type),
		Format:  string(req.Format),
		Title:   doc.Title,
		Path:    path,
		Pages:   pages,
		Records: doc.Records(),
		Printed: req.Now,
	}

	if o.excel {
		var buf bytes.Buffer
		if err := export.Write(&buf, doc); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrSaveFailed, err)
		}
		xlsx, err := o.save(export.Filename(filename), buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result.ExcelPath = xlsx
	}

	log.Info().
		Str("path", path).
		Int("pages", pages).
		Int("records", result.Records).
		Dur("elapsed", time.Since(start)).
		Msg("Report saved")

	return result, nil
}

// render composes and draws the document into memory.
func (o *Orchestrator) render(ds *models.Dataset, req report.Request, log zerolog.Logger) (report.Document, []byte, int, error) {
	doc, err := o.registry.Compose(ds, req)
	if err != nil {
		return report.Document{}, nil, 0, err
	}
	if doc.Records() == 0 {
		log.Warn().Err(report.ErrNoData).Msg("Report has no rows")
	}

	c := o.newCanvas(doc.Paper)
	if err := o.builder.Build(c, doc, req.Now); err != nil {
		log.Error().Err(err).Msg("Report build failed")
		return report.Document{}, nil, 0, err
	}
	pages := c.PageCount()

	var buf bytes.Buffer
	if err := c.Output(&buf); err != nil {
		return report.Document{}, nil, 0, report.NewReportError("Output", fmt.Errorf("%w: %w", report.ErrBuildFailed, err), doc.Name)
	}
	return doc, buf.Bytes(), pages, nil
}

// save writes data to a temp file in the output directory and renames it
// into place, so a failed write never leaves a partial file.
func (o *Orchestrator) save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	tmp, err := os.CreateTemp(o.outputDir, ".pdrd-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	path := filepath.Join(o.outputDir, filename)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return path, nil
}
