package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/ocr"
)

var proofCmd = &cobra.Command{
	Use:   "proof [pdf-file]",
	Short: "Proof-read a generated report with Google Cloud Vision OCR",
	Long: `Run Cloud Vision document text detection over the first pages of a
generated report and check that the report title and the
"Halaman 1 dari N" footer can be read back.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Check a saved assessment report
  pdrd proof Laporan_Ketetapan_detailed_31_Maret_2025.pdf --title "LAPORAN KETETAPAN PAJAK DAERAH"

  # Include the recognized text in the output
  pdrd proof Laporan_Realisasi_PAD_31_Maret_2025.pdf --title "LAPORAN REALISASI" --text`,
	Args: cobra.ExactArgs(1),
	RunE: runProof,
}

func init() {
	rootCmd.AddCommand(proofCmd)

	proofCmd.Flags().String("title", "", "Report title expected on the first page (required)")
	proofCmd.Flags().Int("pages", 0, "Total page count printed in the footer (default: counted from the PDF)")
	proofCmd.Flags().Int("read", ocr.DefaultProofPages, "Leading pages to OCR (maximum 5)")
	proofCmd.Flags().Bool("text", false, "Include the recognized text in the output")
	proofCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	proofCmd.Flags().Int("timeout", 60, "Processing timeout in seconds")
	_ = proofCmd.MarkFlagRequired("title")
}

// ProofOutput is the JSON result of the proof command.
type ProofOutput struct {
	File   string      `json:"file"`
	Proof  ocr.Proof   `json:"proof"`
	Result *ocr.Result `json:"ocr,omitempty"`
}

func runProof(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("proof")

	title, _ := cmd.Flags().GetString("title")
	pages, _ := cmd.Flags().GetInt("pages")
	read, _ := cmd.Flags().GetInt("read")
	includeText, _ := cmd.Flags().GetBool("text")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	pdfPath := args[0]
	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		log.Error().Err(err).Str("file", pdfPath).Msg("Failed to read PDF file")
		return fmt.Errorf("failed to read PDF file: %w", err)
	}
	if err := ocr.CheckPDF(pdf); err != nil {
		return handleReportError(err, log)
	}

	if pages <= 0 {
		pages = ocr.CountPages(pdf)
		if pages == 0 {
			return fmt.Errorf("could not count the pages of %s. Pass --pages explicitly", pdfPath)
		}
	}

	log.Info().
		Str("file", pdfPath).
		Str("title", title).
		Int("pages", pages).
		Int("read", read).
		Msg("Starting report proof")

	ctx, cancel := createCommandContext(timeoutSecs, log)
	defer cancel()

	extractor, err := ocr.NewVisionExtractor(ctx, read)
	if err != nil {
		return handleReportError(err, log)
	}
	defer func() {
		if closeErr := extractor.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close Vision client")
		}
	}()

	result, err := extractor.Extract(ctx, pdf)
	if err != nil {
		return handleReportError(err, log)
	}

	output := ProofOutput{File: pdfPath}
	if includeText {
		output.Result = result
	}

	output.Proof, err = ocr.Verify(result, title, pages)
	if err != nil {
		// Still print what was read so the mismatch can be inspected.
		if writeErr := outputJSON(output, outputPath, log); writeErr != nil {
			log.Warn().Err(writeErr).Msg("Failed to write proof output")
		}
		return handleReportError(err, log)
	}

	log.Info().
		Float32("confidence", output.Proof.Confidence).
		Dur("duration", result.ProcessingDuration).
		Msg("Report proof passed")

	return outputJSON(output, outputPath, log)
}
