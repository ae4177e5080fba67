package scoring

import "collections-risk-backend/internal/models"

// Tier is the three-way bucketing of a risk score.
type Tier string

const (
	TierHigh     Tier = models.StatusHighRisk
	TierModerate Tier = models.StatusModerateRisk
	TierLow      Tier = models.StatusLowRisk
)

// Classify buckets a score: >=70 high, 40..69 moderate, <40 low.
func Classify(score int) Tier {
	switch {
	case score >= HighRiskThreshold:
		return TierHigh
	case score >= ModerateRiskThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

// ParseTier accepts the stored status values.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierHigh, TierModerate, TierLow:
		return Tier(s), true
	}
	return "", false
}

// Label is the short display name used next to a score.
func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "High"
	case TierModerate:
		return "Moderate"
	default:
		return "Low"
	}
}

// Color is the presentation colour for the tier.
func (t Tier) Color() string {
	switch t {
	case TierHigh:
		return "#ef4444"
	case TierModerate:
		return "#f59e0b"
	default:
		return "#10b981"
	}
}
