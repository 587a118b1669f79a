package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/aggregate"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/daterange"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/format"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/report"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/sheets"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/pkg/models"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Recap assessments or payments per tax object as JSON",
	Long: `Group the PDRD dataset by tax object (KodeLayanan) and print the recap as JSON.

With --sheet the recap is also appended to a Google Sheet tab
(GOOGLE_SHEET_WORKSHEET, default Ringkasan_Per_Objek), creating the tab and
a bold header row on first use.`,
	Example: `  # Assessment recap for this quarter
  pdrd summary --range quarter

  # Payment recap for 2025, published to the spreadsheet
  pdrd summary --basis pembayaran --range custom --from 2025-01-01 --to 2025-12-31 --sheet`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().String("basis", "ketetapan", "Record set: ketetapan or pembayaran")
	summaryCmd.Flags().StringP("range", "r", "", "Period: all, today, week, month, quarter, year, custom (default: all)")
	summaryCmd.Flags().String("from", "", "Custom range start (YYYY-MM-DD)")
	summaryCmd.Flags().String("to", "", "Custom range end (YYYY-MM-DD)")
	summaryCmd.Flags().Bool("sheet", false, "Append the recap to the Google Sheet at GOOGLE_SHEET_URL")
	summaryCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	summaryCmd.Flags().Int("timeout", 60, "Processing timeout in seconds")
}

// SummaryOutput is the JSON recap of one record set.
type SummaryOutput struct {
	Basis       string          `json:"basis"`
	Period      string          `json:"period"`
	GeneratedAt time.Time       `json:"generated_at"`
	Objects     []SummaryObject `json:"objects"`
	Total       decimal.Decimal `json:"total"`
	Records     int             `json:"records"`
	Skipped     int             `json:"skipped"`
}

// SummaryObject is the recap of one tax object.
type SummaryObject struct {
	Kode        string          `json:"kode"`
	Nama        string          `json:"nama"`
	Count       int             `json:"count"`
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	PaidCount   int             `json:"paid_count,omitempty"`
	UnpaidCount int             `json:"unpaid_count,omitempty"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Success     int             `json:"success_count,omitempty"`
	Failed      int             `json:"failed_count,omitempty"`
	Percent     float64         `json:"percent"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("summary")

	basisFlag, _ := cmd.Flags().GetString("basis")
	rangeFlag, _ := cmd.Flags().GetString("range")
	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")
	publish, _ := cmd.Flags().GetBool("sheet")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	now := time.Now()
	basis, err := report.ParseType(basisFlag)
	if err != nil || (basis != report.Assessments && basis != report.Payments) {
		return fmt.Errorf("invalid --basis %q. Valid values: ketetapan, pembayaran", basisFlag)
	}
	rng, err := parseRange(rangeFlag, fromFlag, toFlag, now)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if publish && cfg.GoogleSheetURL == "" {
		return fmt.Errorf("--sheet requires GOOGLE_SHEET_URL")
	}

	ctx, cancel := createCommandContext(timeoutSecs, log)
	defer cancel()

	source, err := newSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	ds, err := source.Fetch(ctx)
	if err != nil {
		return handleReportError(err, log)
	}

	summary := buildSummary(ds, basis, rng, now)
	log.Info().
		Str("basis", summary.Basis).
		Int("objects", len(summary.Objects)).
		Int("records", summary.Records).
		Int("skipped", summary.Skipped).
		Msg("Summary computed")

	if publish {
		if err := publishSummary(ctx, cfg.GoogleSheetURL, cfg.SummaryWorksheet, summary); err != nil {
			return handleReportError(err, log)
		}
	}

	return outputJSON(summary, outputPath, log)
}

// buildSummary groups the record set selected by basis within rng.
func buildSummary(ds *models.Dataset, basis report.Type, rng *daterange.Range, now time.Time) SummaryOutput {
	out := SummaryOutput{
		Basis:       string(basis),
		Period:      "Semua Periode",
		GeneratedAt: now,
	}
	if rng != nil {
		out.Period = rng.Span()
	}

	// Both bases count only payments made inside the range, the same rule
	// the per-objek report applies.
	payments := report.FilterByDateRange(ds.Payments, rng, func(p models.Payment) *time.Time { return p.TanggalBayar })

	if basis == report.Payments {
		g := aggregate.GroupPayments(ds, payments)
		for _, b := range g.Buckets() {
			out.Objects = append(out.Objects, SummaryObject{
				Kode: b.Kode, Nama: b.Nama, Count: b.Count, Total: b.Total,
				Success: b.SuccessCount, Failed: b.FailedCount, Percent: b.Percent,
			})
		}
		out.Total, out.Records, out.Skipped = g.Total(), g.Count(), g.Skipped()
		return out
	}

	assessments := report.FilterByDateRange(ds.Assessments, rng, func(a models.Assessment) *time.Time { return a.TanggalKetetapan })
	g := aggregate.GroupAssessments(ds, assessments)
	for _, o := range aggregate.AssessmentObjects(ds, assessments, payments) {
		out.Objects = append(out.Objects, SummaryObject{
			Kode: o.Kode, Nama: o.Nama, Count: o.Count, Total: o.Total, Paid: o.Paid,
			PaidCount: o.PaidCount, UnpaidCount: o.UnpaidCount, Outstanding: o.Outstanding,
			Percent: o.Percent,
		})
	}
	out.Total, out.Records, out.Skipped = g.Total(), g.Count(), g.Skipped()
	return out
}

var summaryHeaders = []string{
	"Tanggal Rekap", "Periode", "Basis", "Kode", "Nama Objek", "Jumlah", "Total Nilai", "Kontribusi (%)",
}

// summaryRows flattens the recap into sheet rows, one per object.
func summaryRows(s SummaryOutput) [][]interface{} {
	rows := make([][]interface{}, 0, len(s.Objects))
	for _, o := range s.Objects {
		rows = append(rows, []interface{}{
			s.GeneratedAt.Format("2006-01-02"),
			s.Period,
			s.Basis,
			o.Kode,
			o.Nama,
			o.Count,
			o.Total.StringFixed(0),
			format.Percent(o.Percent),
		})
	}
	return rows
}

// publishSummary appends the recap below the header of worksheet.
func publishSummary(ctx context.Context, sheetURL, worksheet string, s SummaryOutput) error {
	svc, err := sheets.NewSheetsService(ctx, sheetURL)
	if err != nil {
		return err
	}
	return svc.AppendRows(ctx, worksheet, summaryHeaders, summaryRows(s))
}
