package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"collections-risk-backend/internal/config"
	"collections-risk-backend/internal/services/scoring"
)

var (
	cfg      *config.Config
	seedFlag uint64
)

var rootCmd = &cobra.Command{
	Use:   "riskctl",
	Short: "Offline customer risk scoring",
	Long:  "Scores customer CSV files and generates collection insights without a database.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
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

func init() {
	rootCmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 0, "random seed (0 uses scoring.seed from config)")
}

// source resolves the random source from --seed, falling back to config.
func source(cmd *cobra.Command) scoring.Source {
	seed := seedFlag
	if !cmd.Flags().Changed("seed") && cfg != nil {
		seed = cfg.Scoring.Seed
	}
	return scoring.SourceFromSeed(seed)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
