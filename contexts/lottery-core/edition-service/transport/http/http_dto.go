package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateEditionRequest struct {
	Name                         string `json:"name"`
	StartsAt                     string `json:"starts_at"`
	EndsAt                       string `json:"ends_at"`
	LotteryPrizeCentavos         int64  `json:"lottery_prize_centavos"`
	CostPlanID                   string `json:"cost_plan_id,omitempty"`
	TotalInstantTickets          int64  `json:"total_instant_tickets"`
	InstantPrizesToDistribute    int64  `json:"instant_prizes_to_distribute"`
	MinInstantPrizeValueCentavos int64  `json:"min_instant_prize_value_centavos"`
	MaxInstantPrizeValueCentavos int64  `json:"max_instant_prize_value_centavos"`
}

type EditionDTO struct {
	EditionID                    string   `json:"edition_id"`
	Name                         string   `json:"name"`
	Status                       string   `json:"status"`
	StartsAt                     string   `json:"starts_at"`
	EndsAt                       string   `json:"ends_at"`
	LotteryPrizeCentavos         int64    `json:"lottery_prize_centavos"`
	CostPlanID                   string   `json:"cost_plan_id,omitempty"`
	TotalInstantTickets          int64    `json:"total_instant_tickets"`
	InstantPrizesToDistribute    int64    `json:"instant_prizes_to_distribute"`
	MinInstantPrizeValueCentavos int64    `json:"min_instant_prize_value_centavos"`
	MaxInstantPrizeValueCentavos int64    `json:"max_instant_prize_value_centavos"`
	WinningNumbers               []string `json:"winning_numbers,omitempty"`
	ActivatedAt                  string   `json:"activated_at,omitempty"`
	ClosedAt                     string   `json:"closed_at,omitempty"`
}

type EditionResponse struct {
	Status  string     `json:"status"`
	Edition EditionDTO `json:"edition"`
}

type EditionListResponse struct {
	Status   string       `json:"status"`
	Editions []EditionDTO `json:"editions"`
}

type ImportWinningNumbersRequest struct {
	Numbers []string `json:"numbers"`
}

type InstantPrizeSummaryDTO struct {
	TotalTickets          int64 `json:"total_tickets"`
	PrizedTickets         int64 `json:"prized_tickets"`
	TotalPrizesCentavos   int64 `json:"total_prizes_centavos"`
	MinPrizeValueCentavos int64 `json:"min_prize_value_centavos"`
	MaxPrizeValueCentavos int64 `json:"max_prize_value_centavos"`
}

type InstantPrizeResponse struct {
	Status  string                 `json:"status"`
	Summary InstantPrizeSummaryDTO `json:"summary"`
}
