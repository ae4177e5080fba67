package insight

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collections-risk-backend/internal/models"
	"collections-risk-backend/internal/services/scoring"
)

type fixedSource int

func (f fixedSource) IntN(n int) int { return min(int(f), n-1) }

func actionNames(actions []models.RecommendedAction) []string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.Action
	}
	return names
}

func TestGenerateHighTier(t *testing.T) {
	a := NewGenerator(fixedSource(4)).Generate(Input{
		RiskScore:         82,
		DaysOverdue:       95,
		OutstandingAmount: decimal.NewFromInt(12000),
	})

	require.Len(t, a.Insights.Details, 5)
	assert.Equal(t, "Customer shows HIGH risk indicators with significant payment delays", a.Insights.Summary)
	assert.Equal(t, "Payment is 95 days overdue - urgency level HIGH", a.Insights.Details[3])
	assert.Equal(t, "High-value account - prioritize for personalized agent contact", a.Insights.Details[4])
	assert.Equal(t, "High stress, potential financial hardship", a.Insights.EmotionalIndicators)
	assert.Equal(t, "Low", a.Insights.EngagementReadiness)

	ra := a.RiskAssessment
	assert.Equal(t, 82, ra.OverallScore)
	assert.Equal(t, []models.RiskFactor{
		{Factor: "Payment History", Score: 85, Impact: "High"},
		{Factor: "Outstanding Amount", Score: 75, Impact: "High"},
		{Factor: "Communication Response", Score: 49, Impact: "Medium"},
		{Factor: "Financial Stability", Score: 80, Impact: "High"},
	}, ra.Factors)
	assert.Equal(t, "45-60%", ra.ProbabilityOfRecovery)
	assert.Equal(t, "60-90 days", ra.ExpectedRecoveryTime)

	assert.Equal(t, []string{"Immediate Agent Contact", "Offer Payment Plan", "Escalation Review"}, actionNames(a.RecommendedActions))
	assert.Equal(t, "Critical", a.RecommendedActions[0].Priority)
	assert.Equal(t, "Phone Call", a.RecommendedActions[0].Channel)
	assert.Equal(t, "Within 24 hours", a.RecommendedActions[0].Timing)
	assert.Equal(t, 89, a.ConfidenceScore)
}

func TestGenerateModerateTier(t *testing.T) {
	a := NewGenerator(fixedSource(0)).Generate(Input{
		RiskScore:         55,
		DaysOverdue:       45,
		OutstandingAmount: decimal.NewFromInt(3000),
	})

	assert.Len(t, a.Insights.Details, 3)
	assert.Equal(t, "Customer demonstrates MODERATE risk with some payment inconsistencies", a.Insights.Summary)
	assert.Equal(t, "Moderate willingness to engage", a.Insights.EmotionalIndicators)
	assert.Equal(t, "Moderate", a.Insights.EngagementReadiness)
	assert.Equal(t, 60, a.RiskAssessment.Factors[0].Score)
	assert.Equal(t, 50, a.RiskAssessment.Factors[1].Score)
	assert.Equal(t, 45, a.RiskAssessment.Factors[2].Score)
	assert.Equal(t, 55, a.RiskAssessment.Factors[3].Score)
	assert.Equal(t, "65-80%", a.RiskAssessment.ProbabilityOfRecovery)
	assert.Equal(t, "30-60 days", a.RiskAssessment.ExpectedRecoveryTime)
	assert.Equal(t, []string{"Personalized Email Reminder", "SMS Notification", "Agent Follow-up"}, actionNames(a.RecommendedActions))
	assert.Equal(t, 85, a.ConfidenceScore)
}

func TestGenerateLowTier(t *testing.T) {
	a := NewGenerator(fixedSource(100)).Generate(Input{
		RiskScore:         12,
		DaysOverdue:       0,
		OutstandingAmount: decimal.NewFromInt(800),
	})

	assert.Len(t, a.Insights.Details, 3)
	assert.Equal(t, "Customer shows LOW risk profile with manageable debt levels", a.Insights.Summary)
	assert.Equal(t, "High", a.Insights.EngagementReadiness)
	assert.Equal(t, 30, a.RiskAssessment.Factors[0].Score)
	assert.Equal(t, 25, a.RiskAssessment.Factors[1].Score)
	assert.Equal(t, 74, a.RiskAssessment.Factors[2].Score)
	assert.Equal(t, 30, a.RiskAssessment.Factors[3].Score)
	assert.Equal(t, "85-95%", a.RiskAssessment.ProbabilityOfRecovery)
	assert.Equal(t, "15-30 days", a.RiskAssessment.ExpectedRecoveryTime)
	assert.Equal(t, []string{"Automated Email Reminder", "Self-Service Portal"}, actionNames(a.RecommendedActions))
	assert.Equal(t, 94, a.ConfidenceScore)
}

func TestConditionalLinesAreIndependentOfTier(t *testing.T) {
	in := Input{RiskScore: 10, DaysOverdue: 61, OutstandingAmount: decimal.RequireFromString("5000.01")}
	details := Insights(in).Details
	require.Len(t, details, 5)
	assert.Equal(t, "Payment is 61 days overdue - urgency level HIGH", details[3])

	in = Input{RiskScore: 90, DaysOverdue: 60, OutstandingAmount: decimal.NewFromInt(5000)}
	assert.Len(t, Insights(in).Details, 3)
}

func TestNarrativeStructureIsStable(t *testing.T) {
	g := NewGenerator(scoring.NewSeededSource(11))
	for _, score := range []int{0, 39, 40, 69, 70, 100} {
		in := Input{RiskScore: score, DaysOverdue: 20, OutstandingAmount: decimal.NewFromInt(2000)}
		first := g.Generate(in)
		for i := 0; i < 25; i++ {
			next := g.Generate(in)
			assert.Equal(t, first.Insights, next.Insights)
			assert.Equal(t, actionNames(first.RecommendedActions), actionNames(next.RecommendedActions))
			require.Len(t, next.RiskAssessment.Factors, 4)
			assert.GreaterOrEqual(t, next.ConfidenceScore, 85)
			assert.LessOrEqual(t, next.ConfidenceScore, 94)
			comm := next.RiskAssessment.Factors[2].Score
			assert.GreaterOrEqual(t, comm, 45)
			assert.LessOrEqual(t, comm, 74)
		}
	}
}
