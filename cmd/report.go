package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/config"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/ocr"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/orchestrator"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [type]",
	Short: "Generate a paginated PDF report from the PDRD dataset",
	Long: `Fetch the current PDRD dataset and render one report as a paginated PDF.

Report types:
  wp              registered taxpayers (wajib pajak)
  ketetapan       tax assessments, detailed, per-objek or both
  pembayaran      payments, detailed, per-objek or both
  fiskal          fiscal certificates
  pendapatan      revenue (PAD) realization against targets
  per-objek       per tax object recap of assessments or payments
  wp-jatuh-tempo  taxpayers with overdue unpaid assessments

The file is named Laporan_<Name>_<day>_<Bulan>_<year>.pdf (for example
Laporan_Wajib_Pajak_5_Januari_2025.pdf) and saved to PDRD_OUTPUT_DIR.
A JSON summary of the saved report is written to stdout.

Required environment variables:
  PDRD_API_URL - dataset endpoint (PDRD_DATA_SOURCE=api), OR
  GOOGLE_SHEET_URL plus Google credentials (PDRD_DATA_SOURCE=sheets)`,
	Example: `  # Assessments for the current month
  pdrd report ketetapan --range month

  # Payments for a custom period, per-objek recap only
  pdrd report pembayaran --format per-objek --from 2025-01-01 --to 2025-03-31

  # All taxpayers, with an Excel copy
  pdrd report wp --excel

  # Revenue realization for this year, then proof-read the PDF
  pdrd report pendapatan --range year --proof`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("format", "f", "detailed", "Report format: detailed, per-objek, both")
	reportCmd.Flags().String("basis", "ketetapan", "Record set of the per-objek report: ketetapan or pembayaran")
	reportCmd.Flags().StringP("range", "r", "", "Period: all, today, week, month, quarter, year, custom (default: all)")
	reportCmd.Flags().String("from", "", "Custom range start (YYYY-MM-DD)")
	reportCmd.Flags().String("to", "", "Custom range end (YYYY-MM-DD)")
	reportCmd.Flags().StringP("output-dir", "d", "", "Directory for the report (default: PDRD_OUTPUT_DIR)")
	reportCmd.Flags().Bool("excel", false, "Also save an .xlsx copy")
	reportCmd.Flags().Bool("proof", false, "OCR the saved PDF with Cloud Vision and check the title and footer")
	reportCmd.Flags().StringP("output", "o", "", "Write the JSON result to a file (default: stdout)")
	reportCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

// ReportOutput is the JSON result of one report run.
type ReportOutput struct {
	Report *orchestrator.Result `json:"report"`
	Proof  *ocr.Proof           `json:"proof,omitempty"`
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("report")

	formatFlag, _ := cmd.Flags().GetString("format")
	basisFlag, _ := cmd.Flags().GetString("basis")
	rangeFlag, _ := cmd.Flags().GetString("range")
	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	excel, _ := cmd.Flags().GetBool("excel")
	proof, _ := cmd.Flags().GetBool("proof")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	req, err := buildRequest(args[0], formatFlag, basisFlag, rangeFlag, fromFlag, toFlag, time.Now())
	if err != nil {
		return handleReportError(err, log)
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	log.Info().
		Str("type", string(req.Type)).
		Str("format", string(req.Format)).
		Str("output_dir", outputDir).
		Bool("excel", excel || cfg.ExportXLSX).
		Int("timeout", timeoutSecs).
		Msg("Starting report generation")

	ctx, cancel := createCommandContext(timeoutSecs, log)
	defer cancel()

	source, err := newSource(ctx, cfg, log)
	if err != nil {
		return err
	}

	orch := orchestrator.New(source, report.DefaultRegistry(), newBuilder(cfg),
		orchestrator.WithOutputDir(outputDir),
		orchestrator.WithExcel(excel || cfg.ExportXLSX),
	)

	result, err := orch.Generate(ctx, req)
	if err != nil {
		return handleReportError(err, log)
	}

	output := ReportOutput{Report: result}
	if proof {
		p, err := proofReport(ctx, cfg, result.Path, result.Title, result.Pages, log)
		if err != nil {
			return err
		}
		output.Proof = p
	}

	return outputJSON(output, outputPath, log)
}

// buildRequest validates the command line into a report request.
func buildRequest(typeArg, formatFlag, basisFlag, rangeFlag, fromFlag, toFlag string, now time.Time) (report.Request, error) {
	t, err := report.ParseType(typeArg)
	if err != nil {
		return report.Request{}, err
	}
	f, err := report.ParseFormat(formatFlag)
	if err != nil {
		return report.Request{}, err
	}
	basis, err := report.ParseType(basisFlag)
	if err != nil || (basis != report.Assessments && basis != report.Payments) {
		return report.Request{}, fmt.Errorf("invalid --basis %q. Valid values: ketetapan, pembayaran", basisFlag)
	}
	rng, err := parseRange(rangeFlag, fromFlag, toFlag, now)
	if err != nil {
		return report.Request{}, err
	}
	return report.Request{Type: t, Format: f, Basis: basis, Range: rng, Now: now}, nil
}

// proofReport reads the saved PDF back through Cloud Vision.
func proofReport(ctx context.Context, cfg *config.Config, path, title string, pages int, log zerolog.Logger) (*ocr.Proof, error) {
	pdf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report for proofing: %w", err)
	}

	extractor, err := ocr.NewVisionExtractor(ctx, cfg.ProofPages)
	if err != nil {
		return nil, handleReportError(err, log)
	}
	defer func() {
		if closeErr := extractor.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close Vision client")
		}
	}()

	result, err := extractor.Extract(ctx, pdf)
	if err != nil {
		return nil, handleReportError(err, log)
	}

	p, err := ocr.Verify(result, title, pages)
	if err != nil {
		return &p, handleReportError(err, log)
	}

	log.Info().
		Str("file", path).
		Float32("confidence", p.Confidence).
		Msg("Report proof passed")
	return &p, nil
}
