package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collections-risk-backend/internal/services/insight"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		scoreInput, scoreJSON = "", ""
		insightScore, insightDays, insightAmount = 0, 0, "0"
		seedFlag = 0
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "book.csv")
	csv := "name,email,outstanding_amount,days_overdue\n" +
		"Alice,a@x.com,12000,95\n" +
		"Bob,,abc,10\n" +
		"Short,x\n"
	require.NoError(t, os.WriteFile(input, []byte(csv), 0o644))
	jsonOut := filepath.Join(dir, "scored.json")

	out, err := run(t, "score", "--input", input, "--seed", "9", "--json", jsonOut)
	require.NoError(t, err)

	assert.Contains(t, out, "File: book.csv")
	assert.Contains(t, out, "Records: 2 scored, 1 skipped, 1 fields defaulted")
	assert.Contains(t, out, "Total outstanding: 12000.00")
	assert.Contains(t, out, "Alice")

	data, err := os.ReadFile(jsonOut)
	require.NoError(t, err)
	var decoded scoreOutput
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Customers, 2)
	assert.Equal(t, 2, decoded.Summary.TotalCount)
	assert.Equal(t, []int{2}, decoded.Report.FlaggedRows)
	assert.GreaterOrEqual(t, decoded.Customers[0].RiskScore, 70)
}

func TestScoreRejectsNonCSV(t *testing.T) {
	_, err := run(t, "score", "--input", "book.xlsx")
	assert.Error(t, err)
}

func TestInsightCommand(t *testing.T) {
	out, err := run(t, "insight", "--score", "45", "--days", "70", "--amount", "800", "--seed", "3")
	require.NoError(t, err)

	var a insight.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, "Customer demonstrates MODERATE risk with some payment inconsistencies", a.Insights.Summary)
	assert.Len(t, a.Insights.Details, 4)
	assert.Len(t, a.RecommendedActions, 3)
}

func TestInsightRejectsBadInput(t *testing.T) {
	_, err := run(t, "insight", "--score", "120")
	assert.Error(t, err)

	_, err = run(t, "insight", "--score", "50", "--amount=-5")
	assert.Error(t, err)
}
