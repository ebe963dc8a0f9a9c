package main

import (
	"fmt"
	"os"

	"github.com/meur/pinboard/internal/config"
	"github.com/meur/pinboard/internal/logging"
	"github.com/meur/pinboard/internal/models"
	"github.com/meur/pinboard/internal/seed"
	"github.com/meur/pinboard/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	dbPath     string
	userID     string
	seedFile   string
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample pins into the database",
	Long: `Creates pins owned by --user. Without --file the built-in mock pins
are used; with --file the pins are read from a YAML document:

  pins:
    - title: Mountain lake
      image_url: https://example.com/lake.jpg`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "pinboard.yaml", "Config file path")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.Flags().StringVarP(&userID, "user", "u", "", "Owner of the seeded pins")
	rootCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file")
	rootCmd.MarkFlagRequired("user")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging, false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	pins, source, err := loadPins()
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	created, err := store.BulkCreatePins(cmd.Context(), userID, pins)
	if err != nil {
		return fmt.Errorf("failed to seed pins: %w", err)
	}

	logger.Info("seeding complete",
		zap.String("source", source),
		zap.String("user_id", userID),
		zap.Int("count", len(created)),
	)
	return nil
}

func loadPins() ([]models.PinCreate, string, error) {
	if seedFile == "" {
		return seed.MockPins(), "mock", nil
	}
	pins, err := seed.LoadFile(seedFile)
	if err != nil {
		return nil, "", err
	}
	return pins, seedFile, nil
}
