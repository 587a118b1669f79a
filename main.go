package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/cmd"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/config"
	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/logger"
)

func main() {
	// A missing .env is normal in production; the environment may be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		// Commands report configuration errors themselves; logging still works.
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	log := logger.WithComponent("main")
	log.Debug().Msg("Starting pdrd")

	cmd.Execute()
}
