package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/config"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/dataset"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/daterange"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/layout"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/ocr"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/orchestrator"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/report"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/sheets"
)

// createCommandContext creates a context with timeout and signal handling
func createCommandContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// loadConfig reads the environment configuration with a readable error.
func loadConfig(log zerolog.Logger) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Configuration invalid")
		return nil, fmt.Errorf("invalid configuration. Please check your .env file:\n"+
			"  PDRD_DATA_SOURCE - api (default) or sheets\n"+
			"  PDRD_API_URL - dataset endpoint when using the api source\n"+
			"  GOOGLE_SHEET_URL - spreadsheet URL when using the sheets source\n"+
			"Original error: %w", err)
	}
	return cfg, nil
}

// newSource builds the dataset source selected by PDRD_DATA_SOURCE.
func newSource(ctx context.Context, cfg *config.Config, log zerolog.Logger) (dataset.Source, error) {
	switch cfg.DataSource {
	case config.SourceSheets:
		src, err := dataset.NewSheetsSource(ctx, cfg.GoogleSheetURL)
		if err != nil {
			return nil, handleReportError(err, log)
		}
		log.Debug().Str("source", "sheets").Msg("Dataset source ready")
		return src, nil
	default:
		log.Debug().Str("source", "api").Str("url", cfg.APIURL).Msg("Dataset source ready")
		return dataset.NewAPIClient(cfg.APIURL, cfg.APITimeout), nil
	}
}

// newBuilder configures the document builder from cfg.
func newBuilder(cfg *config.Config) *report.Builder {
	return report.NewBuilder(report.LoadLogo(cfg.LogoPath), report.Signatory{
		Place: cfg.Place,
		Title: cfg.SignatoryTitle,
		Name:  cfg.SignatoryName,
		NIP:   cfg.SignatoryNIP,
	})
}

// parseRange resolves the --range/--from/--to flags. An empty preset turns
// date filtering off.
func parseRange(preset, from, to string, now time.Time) (*daterange.Range, error) {
	if preset == "" || preset == "all" {
		if from != "" || to != "" {
			preset = string(daterange.Custom)
		} else {
			return nil, nil
		}
	}

	p, err := daterange.ParsePreset(preset)
	if err != nil {
		return nil, fmt.Errorf("invalid --range %q. Valid values: all, today, week, month, quarter, year, custom", preset)
	}

	var fromDate, toDate *time.Time
	if from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD", from)
		}
		fromDate = &t
	}
	if to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid --to date %q, expected YYYY-MM-DD", to)
		}
		toDate = &t
	}

	rng, err := daterange.Resolve(p, now, fromDate, toDate)
	if err != nil {
		if errors.Is(err, daterange.ErrInvertedRange) {
			return nil, fmt.Errorf("--to must not be before --from")
		}
		return nil, err
	}
	return &rng, nil
}

// handleReportError provides user-friendly error messages for report failures
func handleReportError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Report processing failed")

	errStr := err.Error()

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("report generation timed out. Try increasing --timeout or narrowing --range")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("report generation was canceled")
	case errors.Is(err, orchestrator.ErrBusy):
		return fmt.Errorf("another report is still being generated. Please wait for it to finish")
	case errors.Is(err, report.ErrUnknownType):
		return fmt.Errorf("unknown report type. Valid types: %s", typeList())
	case errors.Is(err, report.ErrUnsupportedFormat):
		return fmt.Errorf("this report type does not support the requested --format. Only ketetapan and pembayaran accept per-objek and both")
	case errors.Is(err, dataset.ErrMissingCredentials), errors.Is(err, sheets.ErrMissingCredentials), errors.Is(err, ocr.ErrMissingCredentials):
		return fmt.Errorf("missing Google Cloud credentials. Please set one of:\n" +
			"  GOOGLE_APPLICATION_CREDENTIALS=/path/to/service-account-key.json\n" +
			"  GOOGLE_CREDENTIALS='<json-credentials>'")
	case errors.Is(err, dataset.ErrAPIStatus):
		return fmt.Errorf("the data service rejected the request: %w", err)
	case errors.Is(err, dataset.ErrDecodeFailed):
		return fmt.Errorf("the data service returned a response that could not be read. Check PDRD_API_URL points at the JSON endpoint: %w", err)
	case errors.Is(err, dataset.ErrFetchFailed):
		return fmt.Errorf("failed to fetch report data. This may be due to network issues or service unavailability: %w", err)
	case errors.Is(err, layout.ErrTableTooWide):
		return fmt.Errorf("report table does not fit on the page: %w", err)
	case errors.Is(err, report.ErrBuildFailed):
		return fmt.Errorf("failed to build the PDF document: %w", err)
	case errors.Is(err, orchestrator.ErrSaveFailed):
		return fmt.Errorf("failed to save the report. Check that PDRD_OUTPUT_DIR is writable: %w", err)
	case errors.Is(err, ocr.ErrInvalidPDF):
		return fmt.Errorf("invalid or corrupted PDF file. Please check the file integrity")
	case errors.Is(err, ocr.ErrPDFTooLarge):
		return fmt.Errorf("PDF file is too large for proofing (maximum 20MB)")
	case errors.Is(err, ocr.ErrEmptyDocument):
		return fmt.Errorf("no readable text was found in the PDF")
	case errors.Is(err, ocr.ErrProofMismatch):
		return fmt.Errorf("the printed report could not be read back: %w", err)
	case strings.Contains(errStr, "Unauthenticated") ||
		strings.Contains(errStr, "invalid_grant") ||
		strings.Contains(errStr, "auth:"):
		return fmt.Errorf("Google Cloud authentication failed. Please check your credentials:\n\n" +
			"1. Set GOOGLE_APPLICATION_CREDENTIALS to your service account JSON file path\n" +
			"2. Or set GOOGLE_CREDENTIALS with inline JSON credentials\n" +
			"3. Share the spreadsheet with the service account email\n\n" +
			"Original error: %v", err)
	case strings.Contains(errStr, "PERMISSION_DENIED"):
		return fmt.Errorf("permission denied. Please ensure the service account can access the spreadsheet and the Vision API")
	case strings.Contains(errStr, "QUOTA_EXCEEDED"):
		return fmt.Errorf("Google API quota exceeded. Check your project quotas in Google Cloud Console")
	default:
		return fmt.Errorf("report processing failed: %w", err)
	}
}

func typeList() string {
	names := make([]string, len(report.Types))
	for i, t := range report.Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// outputJSON writes v as indented JSON to outputPath, or stdout when empty.
func outputJSON(v any, outputPath string, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal results to JSON")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}

		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(jsonData)).
			Msg("Results written to file")
		return nil
	}

	if _, err := os.Stdout.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write to stdout")
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Println()
	return nil
}
