package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "raspepix/contexts/finance-core/edition-simulator/domain/errors"
	"raspepix/contexts/finance-core/edition-simulator/ports"
	"raspepix/internal/shared/money"
)

// Simplified presumed-profit tax model (Lucro Presumido):
// the taxable base is 32% of gross revenue; IRPJ 15% of the base plus a 10%
// surtax on the base portion above the statutory monthly threshold; CSLL 9%
// of the base; PIS, COFINS and ISS levied directly on gross revenue.
const (
	presumedProfitPercent   = 32.0
	irpjPercent             = 15.0
	irpjSurtaxPercent       = 10.0
	surtaxThresholdCentavos = int64(2_000_000) // R$ 20.000,00 per month
	csllPercent             = 9.0
	pisPercent              = 0.65
	cofinsPercent           = 3.0
	issPercent              = 5.0
)

type Service struct {
	Repo    ports.Repository
	Catalog ports.Catalog
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// Simulate projects the financial outcome of one edition. The computation is
// pure and never fails: an unresolved cost plan reference zeroes every
// revenue-dependent figure instead of erroring.
func (s Service) Simulate(
	edition ports.SimulationEdition,
	costPlans []ports.CostPlan,
	scratchCards []ports.SimulationScratchCard,
) ports.SimulationResult {
	result := ports.SimulationResult{}

	plan, planResolved := resolvePlan(edition.CostPlanID, costPlans)
	var instantPrizes int64
	if planResolved {
		for _, card := range scratchCards {
			if card.EditionID != edition.EditionID || card.ExpectedSalesVolume <= 0 {
				continue
			}
			result.GrossRevenueCentavos += card.ExpectedSalesVolume * plan.TicketPriceCentavos
			instantPrizes += card.InstantPrizesCentavos
		}

		for _, rule := range plan.OperationalRules() {
			result.OperationalCostsCentavos += applyRule(rule, result.GrossRevenueCentavos)
		}
		for _, extra := range plan.ExtraCosts {
			result.OperationalCostsCentavos += extra.AmountCentavos
		}
		result.TaxesCentavos = estimateTaxes(result.GrossRevenueCentavos)
	}

	result.TotalPrizesCentavos = edition.LotteryPrizeCentavos + instantPrizes
	result.TotalExpensesCentavos = result.OperationalCostsCentavos + result.TaxesCentavos
	result.NetResultCentavos = result.GrossRevenueCentavos - result.TotalPrizesCentavos - result.TotalExpensesCentavos
	return result
}

// SimulateEdition loads the catalogs and runs Simulate for one edition id.
func (s Service) SimulateEdition(ctx context.Context, editionID string) (ports.SimulationResult, error) {
	edition, err := s.Catalog.GetSimulationEdition(ctx, strings.TrimSpace(editionID))
	if err != nil {
		return ports.SimulationResult{}, err
	}
	plans, err := s.Repo.ListCostPlans(ctx)
	if err != nil {
		return ports.SimulationResult{}, err
	}
	cards, err := s.Catalog.ListScratchCards(ctx)
	if err != nil {
		return ports.SimulationResult{}, err
	}

	result := s.Simulate(edition, plans, cards)
	resolveLogger(s.Logger).Info("edition financials simulated",
		"event", "edition_financials_simulated",
		"module", "finance-core/edition-simulator",
		"layer", "application",
		"edition_id", edition.EditionID,
		"gross_revenue_centavos", result.GrossRevenueCentavos,
		"net_result_centavos", result.NetResultCentavos,
	)
	return result, nil
}

func (s Service) CreateCostPlan(ctx context.Context, plan ports.CostPlan) (ports.CostPlan, error) {
	if !isValidPlan(plan) {
		return ports.CostPlan{}, domainerrors.ErrInvalidCostPlan
	}
	now := s.now()
	if strings.TrimSpace(plan.PlanID) == "" {
		id, err := s.IDGen.NewID(ctx)
		if err != nil {
			return ports.CostPlan{}, err
		}
		plan.PlanID = id
	}
	plan.PlanID = strings.TrimSpace(plan.PlanID)
	plan.Name = strings.TrimSpace(plan.Name)
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if err := s.Repo.CreateCostPlan(ctx, plan); err != nil {
		return ports.CostPlan{}, err
	}
	resolveLogger(s.Logger).Info("cost plan created",
		"event", "cost_plan_created",
		"module", "finance-core/edition-simulator",
		"layer", "application",
		"plan_id", plan.PlanID,
	)
	return plan, nil
}

func (s Service) GetCostPlan(ctx context.Context, planID string) (ports.CostPlan, error) {
	return s.Repo.GetCostPlan(ctx, strings.TrimSpace(planID))
}

func (s Service) ListCostPlans(ctx context.Context) ([]ports.CostPlan, error) {
	return s.Repo.ListCostPlans(ctx)
}

func (s Service) UpdateCostPlan(ctx context.Context, plan ports.CostPlan) (ports.CostPlan, error) {
	if strings.TrimSpace(plan.PlanID) == "" {
		return ports.CostPlan{}, domainerrors.ErrCostPlanNotFound
	}
	if !isValidPlan(plan) {
		return ports.CostPlan{}, domainerrors.ErrInvalidCostPlan
	}
	plan.PlanID = strings.TrimSpace(plan.PlanID)
	plan.Name = strings.TrimSpace(plan.Name)
	plan.UpdatedAt = s.now()
	if err := s.Repo.UpdateCostPlan(ctx, plan); err != nil {
		return ports.CostPlan{}, err
	}
	return plan, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolvePlan(planID string, plans []ports.CostPlan) (ports.CostPlan, bool) {
	id := strings.TrimSpace(planID)
	if id == "" {
		return ports.CostPlan{}, false
	}
	for _, plan := range plans {
		if plan.PlanID == id {
			return plan, true
		}
	}
	return ports.CostPlan{}, false
}

func applyRule(rule ports.CostRule, grossCentavos int64) int64 {
	switch rule.Kind {
	case ports.CostRulePercent:
		return money.Percent(grossCentavos, rule.Percent)
	default:
		return rule.AmountCentavos
	}
}

func estimateTaxes(grossCentavos int64) int64 {
	if grossCentavos <= 0 {
		return 0
	}
	base := money.Percent(grossCentavos, presumedProfitPercent)

	taxes := money.Percent(base, irpjPercent)
	if base > surtaxThresholdCentavos {
		taxes += money.Percent(base-surtaxThresholdCentavos, irpjSurtaxPercent)
	}
	taxes += money.Percent(base, csllPercent)
	taxes += money.Percent(grossCentavos, pisPercent)
	taxes += money.Percent(grossCentavos, cofinsPercent)
	taxes += money.Percent(grossCentavos, issPercent)
	return taxes
}

func isValidPlan(plan ports.CostPlan) bool {
	if plan.TicketPriceCentavos < 0 || plan.ExpectedTicketsSold < 0 {
		return false
	}
	for _, rule := range plan.OperationalRules() {
		if rule.AmountCentavos < 0 || rule.Percent < 0 {
			return false
		}
		switch rule.Kind {
		case ports.CostRuleFixed, ports.CostRulePercent, "":
		default:
			return false
		}
	}
	for _, extra := range plan.ExtraCosts {
		if extra.AmountCentavos < 0 {
			return false
		}
	}
	return true
}
