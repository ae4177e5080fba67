package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"collections-risk-backend/internal/services/insight"
)

var (
	insightScore  int
	insightDays   int
	insightAmount string
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Print a generated analysis for ad-hoc inputs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if insightScore < 0 || insightScore > 100 {
			return eris.Errorf("insight: --score must be between 0 and 100, got %d", insightScore)
		}
		if insightDays < 0 {
			return eris.Errorf("insight: --days must not be negative, got %d", insightDays)
		}
		amount, err := decimal.NewFromString(insightAmount)
		if err != nil || amount.IsNegative() {
			return eris.Errorf("insight: invalid --amount %q", insightAmount)
		}

		a := insight.NewGenerator(source(cmd)).Generate(insight.Input{
			RiskScore:         insightScore,
			DaysOverdue:       insightDays,
			OutstandingAmount: amount,
		})

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	},
}

func init() {
	insightCmd.Flags().IntVar(&insightScore, "score", 0, "risk score (0-100)")
	insightCmd.Flags().IntVar(&insightDays, "days", 0, "days overdue")
	insightCmd.Flags().StringVar(&insightAmount, "amount", "0", "outstanding amount")
	_ = insightCmd.MarkFlagRequired("score")
	rootCmd.AddCommand(insightCmd)
}
