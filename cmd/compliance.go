package cmd

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/compliance"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
)

var complianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Score taxpayer document compliance",
	Long: `Score every registered taxpayer on the supporting documents on file.

KTP and NPWP weigh 25, Domisili 20, NPWPD 15 and the optional Foto 15
(credited at 80%). A score of 90 or more is compliant, 70 or more is a
warning, anything lower is non-compliant.`,
	Example: `  # Scores for every taxpayer
  pdrd compliance

  # Only taxpayers below the compliant band
  pdrd compliance --status warning --status non_compliant -o compliance.json`,
	Args: cobra.NoArgs,
	RunE: runCompliance,
}

func init() {
	rootCmd.AddCommand(complianceCmd)

	complianceCmd.Flags().StringSlice("status", nil, "Only include these statuses: compliant, warning, non_compliant")
	complianceCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	complianceCmd.Flags().Int("timeout", 60, "Processing timeout in seconds")
}

// ComplianceOutput is the JSON result of the compliance command.
type ComplianceOutput struct {
	Summary   compliance.Summary  `json:"summary"`
	Taxpayers []compliance.Report `json:"taxpayers"`
}

func runCompliance(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("compliance")

	statuses, _ := cmd.Flags().GetStringSlice("status")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	keep, err := parseStatuses(statuses)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
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

	reports, summary := compliance.AssessAll(ds.Taxpayers, time.Now())
	if len(keep) > 0 {
		reports = lo.Filter(reports, func(r compliance.Report, _ int) bool { return keep[r.Status] })
	}

	log.Info().
		Int("total", summary.Total).
		Int("compliant", summary.Compliant).
		Int("warning", summary.Warning).
		Int("non_compliant", summary.NonCompliant).
		Float64("average_score", summary.AverageScore).
		Msg("Compliance scoring completed")

	return outputJSON(ComplianceOutput{Summary: summary, Taxpayers: reports}, outputPath, log)
}

func parseStatuses(values []string) (map[compliance.Status]bool, error) {
	keep := make(map[compliance.Status]bool, len(values))
	for _, v := range values {
		s := compliance.Status(v)
		switch s {
		case compliance.Compliant, compliance.Warning, compliance.NonCompliant:
			keep[s] = true
		default:
			return nil, fmt.Errorf("invalid --status %q. Valid values: compliant, warning, non_compliant", v)
		}
	}
	return keep, nil
}
