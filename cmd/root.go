package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "pdrd",
	Short: "PDRD reports - printable tax and levy reports for Kabupaten Mamberamo Raya",
	Long: `pdrd turns the regional tax (PDRD) dataset of Kabupaten Mamberamo Raya
into paginated PDF reports: taxpayers, assessments, payments, fiscal
certificates, revenue realization, per-object recaps and overdue taxpayers.

The dataset is read from the PDRD web API or straight from the backing
Google Sheet. Configuration comes from the environment or a .env file.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Debug().
			Str("version", version).
			Msg("pdrd executed without a subcommand")

		fmt.Println("PDRD Mamberamo Raya report tool")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Debug().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
