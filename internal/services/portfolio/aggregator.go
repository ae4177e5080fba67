package portfolio

import (
	"slices"

	"github.com/shopspring/decimal"

	"collections-risk-backend/internal/models"
	"collections-risk-backend/internal/services/scoring"
)

const TopN = 5

// Bucket is one range of a distribution.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TierShare is a tier's count and share of the portfolio in percent.
type TierShare struct {
	Tier       scoring.Tier `json:"tier"`
	Label      string       `json:"label"`
	Count      int          `json:"count"`
	Percentage float64      `json:"percentage"`
}

// Summary is the dashboard view of a portfolio.
type Summary struct {
	TotalCount        int               `json:"total_count"`
	HighRiskCount     int               `json:"high_risk_count"`
	ModerateRiskCount int               `json:"moderate_risk_count"`
	LowRiskCount      int               `json:"low_risk_count"`
	TotalOutstanding  decimal.Decimal   `json:"total_outstanding"`
	AvgRiskScore      float64           `json:"avg_risk_score"`
	AvgDaysOverdue    float64           `json:"avg_days_overdue"`
	RiskDistribution  []TierShare       `json:"risk_distribution"`
	OverdueBuckets    []Bucket          `json:"overdue_buckets"`
	AmountBuckets     []Bucket          `json:"amount_buckets"`
	TopOutstanding    []models.Customer `json:"top_outstanding"`
}

var (
	overdueLabels = []string{"0-30 days", "31-60 days", "61-90 days", "90+ days"}
	amountLabels  = []string{"$0-$1,000", "$1,001-$5,000", "$5,001-$10,000", "$10,000+"}

	amount1k  = decimal.NewFromInt(1000)
	amount5k  = decimal.NewFromInt(5000)
	amount10k = decimal.NewFromInt(10000)
)

// OverdueBucket returns the index of the overdue-days range:
// [0,30], (30,60], (60,90], (90,inf).
func OverdueBucket(days int) int {
	switch {
	case days <= 30:
		return 0
	case days <= 60:
		return 1
	case days <= 90:
		return 2
	default:
		return 3
	}
}

// AmountBucket returns the index of the outstanding-amount range:
// [0,1000], (1000,5000], (5000,10000], (10000,inf).
func AmountBucket(amount decimal.Decimal) int {
	switch {
	case amount.LessThanOrEqual(amount1k):
		return 0
	case amount.LessThanOrEqual(amount5k):
		return 1
	case amount.LessThanOrEqual(amount10k):
		return 2
	default:
		return 3
	}
}

// Summarize reduces a collection of scored customers. It is pure and
// defined for an empty collection. Tier counts use the current RiskScore,
// not the stored Status.
func Summarize(customers []models.Customer) Summary {
	s := Summary{
		TotalCount:       len(customers),
		TotalOutstanding: decimal.Zero,
		OverdueBuckets:   newBuckets(overdueLabels),
		AmountBuckets:    newBuckets(amountLabels),
	}

	var scoreSum, daysSum int64
	for _, c := range customers {
		switch scoring.Classify(c.RiskScore) {
		case scoring.TierHigh:
			s.HighRiskCount++
		case scoring.TierModerate:
			s.ModerateRiskCount++
		default:
			s.LowRiskCount++
		}
		s.TotalOutstanding = s.TotalOutstanding.Add(c.OutstandingAmount)
		scoreSum += int64(c.RiskScore)
		daysSum += int64(c.DaysOverdue)
		s.OverdueBuckets[OverdueBucket(c.DaysOverdue)].Count++
		s.AmountBuckets[AmountBucket(c.OutstandingAmount)].Count++
	}

	if s.TotalCount > 0 {
		s.AvgRiskScore = float64(scoreSum) / float64(s.TotalCount)
		s.AvgDaysOverdue = float64(daysSum) / float64(s.TotalCount)
	}

	s.RiskDistribution = []TierShare{
		share(scoring.TierHigh, s.HighRiskCount, s.TotalCount),
		share(scoring.TierModerate, s.ModerateRiskCount, s.TotalCount),
		share(scoring.TierLow, s.LowRiskCount, s.TotalCount),
	}
	s.TopOutstanding = TopOutstanding(customers, TopN)
	return s
}

// TopOutstanding returns the n largest balances, descending. Equal balances
// keep their input order.
func TopOutstanding(customers []models.Customer, n int) []models.Customer {
	sorted := make([]models.Customer, len(customers))
	copy(sorted, customers)
	slices.SortStableFunc(sorted, func(a, b models.Customer) int {
		return b.OutstandingAmount.Cmp(a.OutstandingAmount)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func newBuckets(labels []string) []Bucket {
	b := make([]Bucket, len(labels))
	for i, l := range labels {
		b[i].Label = l
	}
	return b
}

func share(tier scoring.Tier, count, total int) TierShare {
	ts := TierShare{Tier: tier, Label: tier.Label(), Count: count}
	if total > 0 {
		ts.Percentage = float64(count) / float64(total) * 100
	}
	return ts
}
