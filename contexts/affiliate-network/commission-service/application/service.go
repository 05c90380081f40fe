package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainerrors "raspepix/contexts/affiliate-network/commission-service/domain/errors"
	"raspepix/contexts/affiliate-network/commission-service/ports"
	"raspepix/internal/shared/money"
)

type Service struct {
	Repo          ports.Repository
	Editions      ports.EditionSource
	Deposits      ports.DepositSource
	PublicBaseURL string
	Logger        *slog.Logger
}

// ComputePerformance builds the per-affiliate performance view for one
// edition window. The call is all-or-nothing: any fetch failure aborts it
// and no partial result is returned.
func (s Service) ComputePerformance(
	ctx context.Context,
	editionID string,
	nameSearch string,
) ([]ports.PerformanceRecord, ports.PerformanceKPIs, error) {
	window, err := s.Editions.GetEditionWindow(ctx, strings.TrimSpace(editionID))
	if err != nil {
		return nil, ports.PerformanceKPIs{}, err
	}

	roster, err := s.Repo.ListAffiliates(ctx, ports.RosterFilter{
		NameSearch: strings.TrimSpace(nameSearch),
	})
	if err != nil {
		return nil, ports.PerformanceKPIs{}, fmt.Errorf("%w: list affiliates: %v", domainerrors.ErrUpstreamFetch, err)
	}

	deposits, err := s.Deposits.ListDepositsWithin(ctx, window.StartsAt, window.EndsAt)
	if err != nil {
		return nil, ports.PerformanceKPIs{}, fmt.Errorf("%w: list deposits: %v", domainerrors.ErrUpstreamFetch, err)
	}

	// Records keep roster iteration order.
	records := make([]ports.PerformanceRecord, len(roster))
	byCode := make(map[string]int, len(roster))
	for i, affiliate := range roster {
		records[i] = ports.PerformanceRecord{
			AffiliateID:    affiliate.AffiliateID,
			Name:           affiliate.Name,
			IsActive:       affiliate.IsActive,
			CommissionRate: affiliate.CommissionRate,
		}
		if code := normalizeCode(affiliate.ReferralCode); code != "" {
			byCode[code] = i
		}
	}

	for _, deposit := range deposits {
		// The deposit description carries the referral code. The schema has
		// no referrer column, so attribution re-resolves the credited
		// affiliate through the code registry.
		matched, ok := byCode[normalizeCode(deposit.Description)]
		if !ok {
			continue
		}
		referrer, ok := byCode[normalizeCode(roster[matched].ReferralCode)]
		if !ok {
			continue
		}
		records[referrer].DirectReferrals++
		records[referrer].TotalDepositedCentavos += deposit.AmountCentavos
	}

	retained := make([]ports.PerformanceRecord, 0, len(records))
	kpis := ports.PerformanceKPIs{}
	for _, record := range records {
		record.CommissionCentavos = money.Percent(record.TotalDepositedCentavos, record.CommissionRate)
		if record.DirectReferrals == 0 && record.CommissionCentavos == 0 {
			continue
		}
		retained = append(retained, record)
		if record.IsActive {
			kpis.TotalActiveAffiliates++
		}
		kpis.TotalReferrals += record.DirectReferrals
		kpis.TotalDepositedCentavos += record.TotalDepositedCentavos
		kpis.TotalCommissionsCentavos += record.CommissionCentavos
	}

	resolveLogger(s.Logger).Info("affiliate performance computed",
		"event", "affiliate_performance_computed",
		"module", "affiliate-network/commission-service",
		"layer", "application",
		"edition_id", window.EditionID,
		"roster_size", len(roster),
		"retained_count", len(retained),
		"total_commissions_centavos", kpis.TotalCommissionsCentavos,
	)
	return retained, kpis, nil
}

func (s Service) SetCommissionRate(ctx context.Context, affiliateID string, rate float64) error {
	affiliateID = strings.TrimSpace(affiliateID)
	if affiliateID == "" {
		return domainerrors.ErrAffiliateNotFound
	}
	if !isValidRate(rate) {
		return domainerrors.ErrInvalidCommissionRate
	}
	if err := s.Repo.UpdateCommissionRate(ctx, affiliateID, rate); err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("commission rate updated",
		"event", "commission_rate_updated",
		"module", "affiliate-network/commission-service",
		"layer", "application",
		"affiliate_id", affiliateID,
		"rate", rate,
	)
	return nil
}

// SetCommissionRatesBulk upserts one rate across a set of affiliates.
// Re-running with the same arguments leaves the stored state unchanged.
func (s Service) SetCommissionRatesBulk(ctx context.Context, affiliateIDs []string, rate float64) error {
	if !isValidRate(rate) {
		return domainerrors.ErrInvalidCommissionRate
	}
	ids := make([]string, 0, len(affiliateIDs))
	for _, id := range affiliateIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		return domainerrors.ErrNoAffiliateIDs
	}
	if err := s.Repo.UpsertCommissionRates(ctx, ids, rate); err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("commission rates bulk updated",
		"event", "commission_rates_bulk_updated",
		"module", "affiliate-network/commission-service",
		"layer", "application",
		"affiliate_count", len(ids),
		"rate", rate,
	)
	return nil
}

// SetAllActiveCommissionRate applies one rate to every affiliate flagged
// active at call time. Inactive rows are never touched.
func (s Service) SetAllActiveCommissionRate(ctx context.Context, rate float64) (int64, error) {
	if !isValidRate(rate) {
		return 0, domainerrors.ErrInvalidCommissionRate
	}
	updated, err := s.Repo.UpdateAllActiveCommissionRate(ctx, rate)
	if err != nil {
		return 0, err
	}
	resolveLogger(s.Logger).Info("commission rate applied to active affiliates",
		"event", "commission_rate_all_active_updated",
		"module", "affiliate-network/commission-service",
		"layer", "application",
		"updated_count", updated,
		"rate", rate,
	)
	return updated, nil
}

func isValidRate(rate float64) bool {
	return rate >= 0 && rate <= 100
}

func normalizeCode(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
