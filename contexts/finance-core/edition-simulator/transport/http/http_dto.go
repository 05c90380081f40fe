package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CostRuleDTO struct {
	Kind           string  `json:"kind"`
	AmountCentavos int64   `json:"amount_centavos,omitempty"`
	Percent        float64 `json:"percent,omitempty"`
}

type ExtraCostDTO struct {
	Label          string `json:"label"`
	AmountCentavos int64  `json:"amount_centavos"`
}

type CostPlanDTO struct {
	PlanID                string         `json:"plan_id"`
	Name                  string         `json:"name"`
	TicketPriceCentavos   int64          `json:"ticket_price_centavos"`
	ExpectedTicketsSold   int64          `json:"expected_tickets_sold"`
	CapitalizationFee     CostRuleDTO    `json:"capitalization_fee"`
	PaymentProcessorFee   CostRuleDTO    `json:"payment_processor_fee"`
	PhilanthropicDonation CostRuleDTO    `json:"philanthropic_donation"`
	InfluencerPayout      CostRuleDTO    `json:"influencer_payout"`
	AffiliatePayout       CostRuleDTO    `json:"affiliate_payout"`
	PaidTrafficSpend      CostRuleDTO    `json:"paid_traffic_spend"`
	ExtraCosts            []ExtraCostDTO `json:"extra_costs,omitempty"`
	CreatedAt             string         `json:"created_at,omitempty"`
	UpdatedAt             string         `json:"updated_at,omitempty"`
}

type CostPlanResponse struct {
	Status string      `json:"status"`
	Plan   CostPlanDTO `json:"plan"`
}

type CostPlanListResponse struct {
	Status string        `json:"status"`
	Plans  []CostPlanDTO `json:"plans"`
}

type SimulationRequest struct {
	EditionID string `json:"edition_id"`
}

type SimulationResultDTO struct {
	EditionID                string `json:"edition_id"`
	GrossRevenueCentavos     int64  `json:"gross_revenue_centavos"`
	TotalPrizesCentavos      int64  `json:"total_prizes_centavos"`
	OperationalCostsCentavos int64  `json:"operational_costs_centavos"`
	TaxesCentavos            int64  `json:"taxes_centavos"`
	TotalExpensesCentavos    int64  `json:"total_expenses_centavos"`
	NetResultCentavos        int64  `json:"net_result_centavos"`
}

type SimulationResponse struct {
	Status string              `json:"status"`
	Result SimulationResultDTO `json:"result"`
}
