package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quakelab/seissect/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "seissect",
	Short: "Earthquake catalog cross-section toolkit",
	Long:  "Converts earthquake catalogs between geographic and UTM coordinates, builds cross sections perpendicular to a structural strike, and selects map-view event subsets.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
