package insight

import (
	"fmt"

	"github.com/shopspring/decimal"

	"collections-risk-backend/internal/models"
	"collections-risk-backend/internal/services/scoring"
)

const (
	confidenceBase = 85
	confidenceSpan = 10

	// Communication Response is a simulated signal, not a measurement.
	communicationBase = 45
	communicationSpan = 30
)

var (
	highValueAmount = decimal.NewFromInt(5000)
	midValueAmount  = decimal.NewFromInt(1000)
)

// Input is everything the generator looks at.
type Input struct {
	RiskScore         int             `json:"risk_score"`
	DaysOverdue       int             `json:"days_overdue"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

func InputFor(c *models.Customer) Input {
	return Input{RiskScore: c.RiskScore, DaysOverdue: c.DaysOverdue, OutstandingAmount: c.OutstandingAmount}
}

// Analysis is the generated narrative for one account.
type Analysis struct {
	Insights           models.Insights            `json:"ai_insights"`
	RiskAssessment     models.RiskAssessment      `json:"risk_assessment"`
	RecommendedActions []models.RecommendedAction `json:"recommended_actions"`
	ConfidenceScore    int                        `json:"confidence_score"`
}

// Generator produces template-driven insight text. The narrative is fully
// determined by the tier; only the confidence score and the communication
// factor come from the random source.
type Generator struct {
	rng scoring.Source
}

func NewGenerator(rng scoring.Source) *Generator {
	if rng == nil {
		rng = scoring.AmbientSource()
	}
	return &Generator{rng: rng}
}

func (g *Generator) Generate(in Input) Analysis {
	tier := scoring.Classify(in.RiskScore)
	return Analysis{
		Insights:           Insights(in),
		RiskAssessment:     g.assess(in, tier),
		RecommendedActions: Actions(tier),
		ConfidenceScore:    confidenceBase + g.rng.IntN(confidenceSpan),
	}
}

// Insights builds the narrative lines: three tier lines, then the optional
// urgency and high-value lines.
func Insights(in Input) models.Insights {
	tier := scoring.Classify(in.RiskScore)

	var lines []string
	switch tier {
	case scoring.TierHigh:
		lines = []string{
			"Customer shows HIGH risk indicators with significant payment delays",
			"Immediate intervention required to prevent further delinquency",
			"Consider offering structured payment plan to facilitate recovery",
		}
	case scoring.TierModerate:
		lines = []string{
			"Customer demonstrates MODERATE risk with some payment inconsistencies",
			"Proactive engagement recommended to prevent escalation",
			"May respond well to reminder communications and flexible terms",
		}
	default:
		lines = []string{
			"Customer shows LOW risk profile with manageable debt levels",
			"Automated reminders likely sufficient for timely resolution",
			"Good candidate for self-service payment options",
		}
	}

	if in.DaysOverdue > 60 {
		lines = append(lines, fmt.Sprintf("Payment is %d days overdue - urgency level HIGH", in.DaysOverdue))
	}
	if in.OutstandingAmount.GreaterThan(highValueAmount) {
		lines = append(lines, "High-value account - prioritize for personalized agent contact")
	}

	emotional := "Moderate willingness to engage"
	if tier == scoring.TierHigh {
		emotional = "High stress, potential financial hardship"
	}

	return models.Insights{
		Summary:             lines[0],
		Details:             lines,
		EmotionalIndicators: emotional,
		EngagementReadiness: engagementReadiness(in.RiskScore),
	}
}

func engagementReadiness(score int) string {
	switch {
	case score < scoring.ModerateRiskThreshold:
		return "High"
	case score < scoring.HighRiskThreshold:
		return "Moderate"
	default:
		return "Low"
	}
}

func (g *Generator) assess(in Input, tier scoring.Tier) models.RiskAssessment {
	history := 30
	switch {
	case in.DaysOverdue > 60:
		history = 85
	case in.DaysOverdue > 30:
		history = 60
	}

	amount := 25
	switch {
	case in.OutstandingAmount.GreaterThan(highValueAmount):
		amount = 75
	case in.OutstandingAmount.GreaterThan(midValueAmount):
		amount = 50
	}

	stability := 30
	switch tier {
	case scoring.TierHigh:
		stability = 80
	case scoring.TierModerate:
		stability = 55
	}

	probability, timeline := RecoveryOutlook(tier)
	return models.RiskAssessment{
		OverallScore: in.RiskScore,
		Factors: []models.RiskFactor{
			{Factor: "Payment History", Score: history, Impact: "High"},
			{Factor: "Outstanding Amount", Score: amount, Impact: "High"},
			{Factor: "Communication Response", Score: communicationBase + g.rng.IntN(communicationSpan), Impact: "Medium"},
			{Factor: "Financial Stability", Score: stability, Impact: "High"},
		},
		ProbabilityOfRecovery: probability,
		ExpectedRecoveryTime:  timeline,
	}
}

// RecoveryOutlook returns the recovery probability and expected timeline
// ranges for a tier.
func RecoveryOutlook(tier scoring.Tier) (probability, timeline string) {
	switch tier {
	case scoring.TierHigh:
		return "45-60%", "60-90 days"
	case scoring.TierModerate:
		return "65-80%", "30-60 days"
	default:
		return "85-95%", "15-30 days"
	}
}

// Actions returns the recommended collection steps for a tier, in order.
func Actions(tier scoring.Tier) []models.RecommendedAction {
	switch tier {
	case scoring.TierHigh:
		return []models.RecommendedAction{
			{
				Action:   "Immediate Agent Contact",
				Priority: "Critical",
				Channel:  "Phone Call",
				Timing:   "Within 24 hours",
				Script:   "Empathetic approach focusing on payment plan options and hardship assessment",
			},
			{
				Action:   "Offer Payment Plan",
				Priority: "High",
				Channel:  "Follow-up Email",
				Timing:   "After initial contact",
				Script:   "Present flexible 3-6 month payment plan with reduced interest",
			},
			{
				Action:   "Escalation Review",
				Priority: "Medium",
				Channel:  "Internal",
				Timing:   "If no response in 7 days",
				Script:   "Prepare for potential collections agency referral",
			},
		}
	case scoring.TierModerate:
		return []models.RecommendedAction{
			{
				Action:   "Personalized Email Reminder",
				Priority: "High",
				Channel:  "Email",
				Timing:   "Within 3 days",
				Script:   "Friendly reminder with payment options and contact information",
			},
			{
				Action:   "SMS Notification",
				Priority: "Medium",
				Channel:  "SMS",
				Timing:   "Day 5 if no response",
				Script:   "Brief payment reminder with direct payment link",
			},
			{
				Action:   "Agent Follow-up",
				Priority: "Medium",
				Channel:  "Phone",
				Timing:   "Day 10 if unresolved",
				Script:   "Check-in call to discuss payment obstacles and solutions",
			},
		}
	default:
		return []models.RecommendedAction{
			{
				Action:   "Automated Email Reminder",
				Priority: "Low",
				Channel:  "Email",
				Timing:   "Within 7 days",
				Script:   "Standard payment reminder with self-service portal link",
			},
			{
				Action:   "Self-Service Portal",
				Priority: "Low",
				Channel:  "Online",
				Timing:   "Immediate",
				Script:   "Provide easy access to online payment and account management",
			},
		}
	}
}
