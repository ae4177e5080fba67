package scoring

import (
	"github.com/shopspring/decimal"

	"collections-risk-backend/internal/models"
)

const (
	MaxScore = 100

	// RandomSpan is the exclusive upper bound of the random contribution,
	// so the random term falls in [0, RandomSpan-1].
	RandomSpan = 30

	HighRiskThreshold     = 70
	ModerateRiskThreshold = 40
)

var (
	amount10k = decimal.NewFromInt(10000)
	amount5k  = decimal.NewFromInt(5000)
	amount1k  = decimal.NewFromInt(1000)
)

// Breakdown is a scored account: each contribution plus the clamped total.
type Breakdown struct {
	Overdue int  `json:"overdue"`
	Amount  int  `json:"amount"`
	Random  int  `json:"random"`
	Total   int  `json:"total"`
	Tier    Tier `json:"tier"`
}

// Scorer computes risk scores. The random term is drawn from the injected
// Source so callers can make scoring reproducible.
type Scorer struct {
	rng Source
}

func NewScorer(rng Source) *Scorer {
	if rng == nil {
		rng = AmbientSource()
	}
	return &Scorer{rng: rng}
}

// Score returns the risk breakdown for an account.
func (s *Scorer) Score(amount decimal.Decimal, daysOverdue int) Breakdown {
	b := Breakdown{
		Overdue: OverdueContribution(daysOverdue),
		Amount:  AmountContribution(amount),
		Random:  s.rng.IntN(RandomSpan),
	}
	b.Total = min(MaxScore, max(0, b.Overdue+b.Amount+b.Random))
	b.Tier = Classify(b.Total)
	return b
}

// Apply scores c in place and stamps its status.
func (s *Scorer) Apply(c *models.Customer) Breakdown {
	b := s.Score(c.OutstandingAmount, c.DaysOverdue)
	c.RiskScore = b.Total
	c.Status = string(b.Tier)
	return b
}

// OverdueContribution uses the highest matching bracket only.
func OverdueContribution(days int) int {
	switch {
	case days > 90:
		return 40
	case days > 60:
		return 30
	case days > 30:
		return 20
	case days > 0:
		return 10
	default:
		return 0
	}
}

// AmountContribution uses the highest matching bracket only.
func AmountContribution(amount decimal.Decimal) int {
	switch {
	case amount.GreaterThan(amount10k):
		return 30
	case amount.GreaterThan(amount5k):
		return 20
	case amount.GreaterThan(amount1k):
		return 10
	default:
		return 0
	}
}

// Reclassify recomputes c.Status from its stored RiskScore and reports
// whether the status changed. Status is otherwise a snapshot taken at
// ingestion, so this only runs when explicitly requested.
func Reclassify(c *models.Customer) bool {
	next := string(Classify(c.RiskScore))
	if next == c.Status {
		return false
	}
	c.Status = next
	return true
}
