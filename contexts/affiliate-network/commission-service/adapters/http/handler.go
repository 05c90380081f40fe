package httpadapter

import (
	"context"
	"log/slog"

	exceladapter "raspepix/contexts/affiliate-network/commission-service/adapters/excel"
	"raspepix/contexts/affiliate-network/commission-service/application"
	httptransport "raspepix/contexts/affiliate-network/commission-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) PerformanceHandler(
	ctx context.Context,
	editionID string,
	nameSearch string,
) (httptransport.PerformanceResponse, error) {
	records, kpis, err := h.Service.ComputePerformance(ctx, editionID, nameSearch)
	if err != nil {
		return httptransport.PerformanceResponse{}, err
	}

	resp := httptransport.PerformanceResponse{
		Status:     "success",
		Affiliates: make([]httptransport.PerformanceRecordDTO, 0, len(records)),
		KPIs: httptransport.PerformanceKPIsDTO{
			TotalActiveAffiliates:    kpis.TotalActiveAffiliates,
			TotalReferrals:           kpis.TotalReferrals,
			TotalDepositedCentavos:   kpis.TotalDepositedCentavos,
			TotalCommissionsCentavos: kpis.TotalCommissionsCentavos,
		},
	}
	for _, record := range records {
		resp.Affiliates = append(resp.Affiliates, httptransport.PerformanceRecordDTO{
			AffiliateID:            record.AffiliateID,
			Name:                   record.Name,
			IsActive:               record.IsActive,
			CommissionRate:         record.CommissionRate,
			DirectReferrals:        record.DirectReferrals,
			TotalDepositedCentavos: record.TotalDepositedCentavos,
			CommissionCentavos:     record.CommissionCentavos,
		})
	}
	return resp, nil
}

func (h Handler) PerformanceReportHandler(ctx context.Context, editionID string) ([]byte, error) {
	records, kpis, err := h.Service.ComputePerformance(ctx, editionID, "")
	if err != nil {
		return nil, err
	}
	return exceladapter.BuildPerformanceReport(editionID, records, kpis)
}

func (h Handler) SetRateHandler(
	ctx context.Context,
	affiliateID string,
	req httptransport.SetRateRequest,
) (httptransport.SetRateResponse, error) {
	if err := h.Service.SetCommissionRate(ctx, affiliateID, req.Rate); err != nil {
		return httptransport.SetRateResponse{}, err
	}
	return httptransport.SetRateResponse{Status: "success"}, nil
}

func (h Handler) SetRatesBulkHandler(
	ctx context.Context,
	req httptransport.SetRatesBulkRequest,
) (httptransport.SetRateResponse, error) {
	if err := h.Service.SetCommissionRatesBulk(ctx, req.AffiliateIDs, req.Rate); err != nil {
		return httptransport.SetRateResponse{}, err
	}
	return httptransport.SetRateResponse{Status: "success"}, nil
}

func (h Handler) SetAllActiveRateHandler(
	ctx context.Context,
	req httptransport.SetRateRequest,
) (httptransport.SetRateResponse, error) {
	updated, err := h.Service.SetAllActiveCommissionRate(ctx, req.Rate)
	if err != nil {
		return httptransport.SetRateResponse{}, err
	}
	return httptransport.SetRateResponse{Status: "success", UpdatedCount: updated}, nil
}

func (h Handler) ReferralQRHandler(ctx context.Context, affiliateID string) ([]byte, error) {
	return h.Service.ReferralQR(ctx, affiliateID)
}
