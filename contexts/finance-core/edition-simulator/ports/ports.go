package ports

import (
	"context"
	"time"
)

type CostRuleKind string

const (
	CostRuleFixed   CostRuleKind = "fixed"
	CostRulePercent CostRuleKind = "percent"
)

// CostRule is one operational cost entry: either a flat amount in centavos
// or a percentage of gross revenue.
type CostRule struct {
	Kind           CostRuleKind
	AmountCentavos int64
	Percent        float64
}

type ExtraCost struct {
	Label          string
	AmountCentavos int64
}

type CostPlan struct {
	PlanID                string
	Name                  string
	TicketPriceCentavos   int64
	ExpectedTicketsSold   int64
	CapitalizationFee     CostRule
	PaymentProcessorFee   CostRule
	PhilanthropicDonation CostRule
	InfluencerPayout      CostRule
	AffiliatePayout       CostRule
	PaidTrafficSpend      CostRule
	ExtraCosts            []ExtraCost
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// OperationalRules returns the six cost categories in a fixed order.
func (p CostPlan) OperationalRules() []CostRule {
	return []CostRule{
		p.CapitalizationFee,
		p.PaymentProcessorFee,
		p.PhilanthropicDonation,
		p.InfluencerPayout,
		p.AffiliatePayout,
		p.PaidTrafficSpend,
	}
}

type SimulationEdition struct {
	EditionID            string
	LotteryPrizeCentavos int64
	CostPlanID           string
}

type SimulationScratchCard struct {
	CardID                string
	EditionID             string
	ExpectedSalesVolume   int64
	InstantPrizesCentavos int64
}

type SimulationResult struct {
	GrossRevenueCentavos     int64
	TotalPrizesCentavos      int64
	OperationalCostsCentavos int64
	TaxesCentavos            int64
	TotalExpensesCentavos    int64
	NetResultCentavos        int64
}

type Repository interface {
	CreateCostPlan(ctx context.Context, plan CostPlan) error
	GetCostPlan(ctx context.Context, planID string) (CostPlan, error)
	ListCostPlans(ctx context.Context) ([]CostPlan, error)
	UpdateCostPlan(ctx context.Context, plan CostPlan) error
}

// Catalog reads the simulation inputs owned by other contexts through this
// module's own adapters.
type Catalog interface {
	GetSimulationEdition(ctx context.Context, editionID string) (SimulationEdition, error)
	ListScratchCards(ctx context.Context) ([]SimulationScratchCard, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
