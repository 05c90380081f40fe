package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PerformanceRecordDTO struct {
	AffiliateID            string  `json:"affiliate_id"`
	Name                   string  `json:"name"`
	IsActive               bool    `json:"is_active"`
	CommissionRate         float64 `json:"commission_rate"`
	DirectReferrals        int     `json:"direct_referrals"`
	TotalDepositedCentavos int64   `json:"total_deposited_centavos"`
	CommissionCentavos     int64   `json:"commission_centavos"`
}

type PerformanceKPIsDTO struct {
	TotalActiveAffiliates    int   `json:"total_active_affiliates"`
	TotalReferrals           int   `json:"total_referrals"`
	TotalDepositedCentavos   int64 `json:"total_deposited_centavos"`
	TotalCommissionsCentavos int64 `json:"total_commissions_centavos"`
}

type PerformanceResponse struct {
	Status     string                 `json:"status"`
	Affiliates []PerformanceRecordDTO `json:"affiliates"`
	KPIs       PerformanceKPIsDTO     `json:"kpis"`
}

type SetRateRequest struct {
	Rate float64 `json:"rate"`
}

type SetRatesBulkRequest struct {
	AffiliateIDs []string `json:"affiliate_ids"`
	Rate         float64  `json:"rate"`
}

type SetRateResponse struct {
	Status       string `json:"status"`
	UpdatedCount int64  `json:"updated_count,omitempty"`
}
