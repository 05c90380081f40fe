package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"raspepix/contexts/finance-core/edition-simulator/application"
	"raspepix/contexts/finance-core/edition-simulator/ports"
	httptransport "raspepix/contexts/finance-core/edition-simulator/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) SimulateHandler(
	ctx context.Context,
	req httptransport.SimulationRequest,
) (httptransport.SimulationResponse, error) {
	result, err := h.Service.SimulateEdition(ctx, req.EditionID)
	if err != nil {
		return httptransport.SimulationResponse{}, err
	}
	return httptransport.SimulationResponse{
		Status: "success",
		Result: httptransport.SimulationResultDTO{
			EditionID:                req.EditionID,
			GrossRevenueCentavos:     result.GrossRevenueCentavos,
			TotalPrizesCentavos:      result.TotalPrizesCentavos,
			OperationalCostsCentavos: result.OperationalCostsCentavos,
			TaxesCentavos:            result.TaxesCentavos,
			TotalExpensesCentavos:    result.TotalExpensesCentavos,
			NetResultCentavos:        result.NetResultCentavos,
		},
	}, nil
}

func (h Handler) CreateCostPlanHandler(
	ctx context.Context,
	req httptransport.CostPlanDTO,
) (httptransport.CostPlanResponse, error) {
	plan, err := h.Service.CreateCostPlan(ctx, costPlanFromDTO(req))
	if err != nil {
		return httptransport.CostPlanResponse{}, err
	}
	return httptransport.CostPlanResponse{Status: "success", Plan: costPlanToDTO(plan)}, nil
}

func (h Handler) GetCostPlanHandler(ctx context.Context, planID string) (httptransport.CostPlanResponse, error) {
	plan, err := h.Service.GetCostPlan(ctx, planID)
	if err != nil {
		return httptransport.CostPlanResponse{}, err
	}
	return httptransport.CostPlanResponse{Status: "success", Plan: costPlanToDTO(plan)}, nil
}

func (h Handler) ListCostPlansHandler(ctx context.Context) (httptransport.CostPlanListResponse, error) {
	plans, err := h.Service.ListCostPlans(ctx)
	if err != nil {
		return httptransport.CostPlanListResponse{}, err
	}
	resp := httptransport.CostPlanListResponse{
		Status: "success",
		Plans:  make([]httptransport.CostPlanDTO, 0, len(plans)),
	}
	for _, plan := range plans {
		resp.Plans = append(resp.Plans, costPlanToDTO(plan))
	}
	return resp, nil
}

func (h Handler) UpdateCostPlanHandler(
	ctx context.Context,
	planID string,
	req httptransport.CostPlanDTO,
) (httptransport.CostPlanResponse, error) {
	plan := costPlanFromDTO(req)
	plan.PlanID = planID
	updated, err := h.Service.UpdateCostPlan(ctx, plan)
	if err != nil {
		return httptransport.CostPlanResponse{}, err
	}
	return httptransport.CostPlanResponse{Status: "success", Plan: costPlanToDTO(updated)}, nil
}

func costPlanFromDTO(dto httptransport.CostPlanDTO) ports.CostPlan {
	return ports.CostPlan{
		PlanID:                dto.PlanID,
		Name:                  dto.Name,
		TicketPriceCentavos:   dto.TicketPriceCentavos,
		ExpectedTicketsSold:   dto.ExpectedTicketsSold,
		CapitalizationFee:     costRuleFromDTO(dto.CapitalizationFee),
		PaymentProcessorFee:   costRuleFromDTO(dto.PaymentProcessorFee),
		PhilanthropicDonation: costRuleFromDTO(dto.PhilanthropicDonation),
		InfluencerPayout:      costRuleFromDTO(dto.InfluencerPayout),
		AffiliatePayout:       costRuleFromDTO(dto.AffiliatePayout),
		PaidTrafficSpend:      costRuleFromDTO(dto.PaidTrafficSpend),
		ExtraCosts:            extraCostsFromDTO(dto.ExtraCosts),
	}
}

func costPlanToDTO(plan ports.CostPlan) httptransport.CostPlanDTO {
	return httptransport.CostPlanDTO{
		PlanID:                plan.PlanID,
		Name:                  plan.Name,
		TicketPriceCentavos:   plan.TicketPriceCentavos,
		ExpectedTicketsSold:   plan.ExpectedTicketsSold,
		CapitalizationFee:     costRuleToDTO(plan.CapitalizationFee),
		PaymentProcessorFee:   costRuleToDTO(plan.PaymentProcessorFee),
		PhilanthropicDonation: costRuleToDTO(plan.PhilanthropicDonation),
		InfluencerPayout:      costRuleToDTO(plan.InfluencerPayout),
		AffiliatePayout:       costRuleToDTO(plan.AffiliatePayout),
		PaidTrafficSpend:      costRuleToDTO(plan.PaidTrafficSpend),
		ExtraCosts:            extraCostsToDTO(plan.ExtraCosts),
		CreatedAt:             formatTimestamp(plan.CreatedAt),
		UpdatedAt:             formatTimestamp(plan.UpdatedAt),
	}
}

func costRuleFromDTO(dto httptransport.CostRuleDTO) ports.CostRule {
	return ports.CostRule{
		Kind:           ports.CostRuleKind(dto.Kind),
		AmountCentavos: dto.AmountCentavos,
		Percent:        dto.Percent,
	}
}

func costRuleToDTO(rule ports.CostRule) httptransport.CostRuleDTO {
	return httptransport.CostRuleDTO{
		Kind:           string(rule.Kind),
		AmountCentavos: rule.AmountCentavos,
		Percent:        rule.Percent,
	}
}

func extraCostsFromDTO(dtos []httptransport.ExtraCostDTO) []ports.ExtraCost {
	if len(dtos) == 0 {
		return nil
	}
	extras := make([]ports.ExtraCost, 0, len(dtos))
	for _, dto := range dtos {
		extras = append(extras, ports.ExtraCost{
			Label:          dto.Label,
			AmountCentavos: dto.AmountCentavos,
		})
	}
	return extras
}

func extraCostsToDTO(extras []ports.ExtraCost) []httptransport.ExtraCostDTO {
	if len(extras) == 0 {
		return nil
	}
	dtos := make([]httptransport.ExtraCostDTO, 0, len(extras))
	for _, extra := range extras {
		dtos = append(dtos, httptransport.ExtraCostDTO{
			Label:          extra.Label,
			AmountCentavos: extra.AmountCentavos,
		})
	}
	return dtos
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
