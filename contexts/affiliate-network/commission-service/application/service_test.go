package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainerrors "raspepix/contexts/affiliate-network/commission-service/domain/errors"
	"raspepix/contexts/affiliate-network/commission-service/ports"
)

type fakeRepo struct {
	affiliates []ports.Affiliate
	rates      map[string]float64
	listErr    error
	upserts    int
}

func newFakeRepo(affiliates ...ports.Affiliate) *fakeRepo {
	repo := &fakeRepo{affiliates: affiliates, rates: make(map[string]float64)}
	for _, item := range affiliates {
		repo.rates[item.AffiliateID] = item.CommissionRate
	}
	return repo
}

func (r *fakeRepo) GetAffiliate(_ context.Context, affiliateID string) (ports.Affiliate, error) {
	for _, item := range r.affiliates {
		if item.AffiliateID == affiliateID {
			return item, nil
		}
	}
	return ports.Affiliate{}, domainerrors.ErrAffiliateNotFound
}

func (r *fakeRepo) ListAffiliates(_ context.Context, filter ports.RosterFilter) ([]ports.Affiliate, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if filter.NameSearch == "" {
		return r.affiliates, nil
	}
	term := strings.ToLower(filter.NameSearch)
	var matched []ports.Affiliate
	for _, item := range r.affiliates {
		if strings.Contains(strings.ToLower(item.Name), term) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (r *fakeRepo) UpdateCommissionRate(_ context.Context, affiliateID string, rate float64) error {
	if _, ok := r.rates[affiliateID]; !ok {
		return domainerrors.ErrAffiliateNotFound
	}
	r.rates[affiliateID] = rate
	return nil
}

func (r *fakeRepo) UpsertCommissionRates(_ context.Context, affiliateIDs []string, rate float64) error {
	r.upserts++
	for _, id := range affiliateIDs {
		r.rates[id] = rate
	}
	return nil
}

func (r *fakeRepo) UpdateAllActiveCommissionRate(_ context.Context, rate float64) (int64, error) {
	var updated int64
	for _, item := range r.affiliates {
		if item.IsActive {
			r.rates[item.AffiliateID] = rate
			updated++
		}
	}
	return updated, nil
}

type fakeEditions struct {
	windows map[string]ports.EditionWindow
}

func (e fakeEditions) GetEditionWindow(_ context.Context, editionID string) (ports.EditionWindow, error) {
	window, ok := e.windows[editionID]
	if !ok {
		return ports.EditionWindow{}, domainerrors.ErrEditionNotFound
	}
	return window, nil
}

type fakeDeposits struct {
	deposits []ports.DepositTransaction
	err      error
}

func (d fakeDeposits) ListDepositsWithin(_ context.Context, from time.Time, to time.Time) ([]ports.DepositTransaction, error) {
	if d.err != nil {
		return nil, d.err
	}
	var within []ports.DepositTransaction
	for _, item := range d.deposits {
		if !item.CreatedAt.Before(from) && !item.CreatedAt.After(to) {
			within = append(within, item)
		}
	}
	return within, nil
}

func januaryWindow() fakeEditions {
	return fakeEditions{windows: map[string]ports.EditionWindow{
		"ed_2024_01": {
			EditionID: "ed_2024_01",
			StartsAt:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndsAt:    time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC),
		},
	}}
}

func TestComputePerformanceSingleReferralScenario(t *testing.T) {
	repo := newFakeRepo(ports.Affiliate{
		AffiliateID:    "aff_1",
		Name:           "Marina Costa",
		ReferralCode:   "AFF1",
		CommissionRate: 10,
		IsActive:       true,
	})
	service := Service{
		Repo:     repo,
		Editions: januaryWindow(),
		Deposits: fakeDeposits{deposits: []ports.DepositTransaction{{
			TransactionID:  "tx_1",
			UserID:         "user_9",
			AmountCentavos: 20000,
			Description:    "AFF1",
			CreatedAt:      time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC),
		}}},
	}

	records, kpis, err := service.ComputePerformance(context.Background(), "ed_2024_01", "")
	if err != nil {
		t.Fatalf("compute performance failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	record := records[0]
	if record.DirectReferrals != 1 {
		t.Fatalf("expected 1 referral, got %d", record.DirectReferrals)
	}
	if record.TotalDepositedCentavos != 20000 {
		t.Fatalf("expected 20000 centavos deposited, got %d", record.TotalDepositedCentavos)
	}
	if record.CommissionCentavos != 2000 {
		t.Fatalf("expected 2000 centavos commission, got %d", record.CommissionCentavos)
	}
	if kpis.TotalReferrals != 1 || kpis.TotalDepositedCentavos != 20000 || kpis.TotalCommissionsCentavos != 2000 {
		t.Fatalf("unexpected kpis: %+v", kpis)
	}
	if kpis.TotalActiveAffiliates != 1 {
		t.Fatalf("expected 1 active affiliate, got %d", kpis.TotalActiveAffiliates)
	}
}

func TestComputePerformanceFiltersZeroRows(t *testing.T) {
	repo := newFakeRepo(
		ports.Affiliate{AffiliateID: "aff_1", Name: "Marina", ReferralCode: "AFF1", CommissionRate: 10, IsActive: true},
		ports.Affiliate{AffiliateID: "aff_2", Name: "Paulo", ReferralCode: "AFF2", CommissionRate: 15, IsActive: true},
	)
	service := Service{
		Repo:     repo,
		Editions: januaryWindow(),
		Deposits: fakeDeposits{deposits: []ports.DepositTransaction{{
			TransactionID:  "tx_1",
			AmountCentavos: 5000,
			Description:    "AFF1",
			CreatedAt:      time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		}}},
	}

	records, _, err := service.ComputePerformance(context.Background(), "ed_2024_01", "")
	if err != nil {
		t.Fatalf("compute performance failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected the zero row to be filtered, got %d records", len(records))
	}
	if records[0].AffiliateID != "aff_1" {
		t.Fatalf("expected aff_1 retained, got %s", records[0].AffiliateID)
	}
}

func TestComputePerformanceSumConsistencyAndActiveCount(t *testing.T) {
	repo := newFakeRepo(
		ports.Affiliate{AffiliateID: "aff_1", Name: "Marina", ReferralCode: "AFF1", CommissionRate: 10, IsActive: true},
		ports.Affiliate{AffiliateID: "aff_2", Name: "Paulo", ReferralCode: "AFF2", CommissionRate: 20, IsActive: false},
	)
	service := Service{
		Repo:     repo,
		Editions: januaryWindow(),
		Deposits: fakeDeposits{deposits: []ports.DepositTransaction{
			{TransactionID: "tx_1", AmountCentavos: 10000, Description: "AFF1", CreatedAt: time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)},
			{TransactionID: "tx_2", AmountCentavos: 30000, Description: "aff2", CreatedAt: time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)},
			{TransactionID: "tx_3", AmountCentavos: 2500, Description: "AFF2", CreatedAt: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		}},
	}

	records, kpis, err := service.ComputePerformance(context.Background(), "ed_2024_01", "")
	if err != nil {
		t.Fatalf("compute performance failed: %v", err)
	}

	var deposited, commissions int64
	var referrals int
	for _, record := range records {
		deposited += record.TotalDepositedCentavos
		commissions += record.CommissionCentavos
		referrals += record.DirectReferrals
	}
	if deposited != kpis.TotalDepositedCentavos {
		t.Fatalf("deposited sum mismatch: records=%d kpis=%d", deposited, kpis.TotalDepositedCentavos)
	}
	if commissions != kpis.TotalCommissionsCentavos {
		t.Fatalf("commission sum mismatch: records=%d kpis=%d", commissions, kpis.TotalCommissionsCentavos)
	}
	if referrals != kpis.TotalReferrals {
		t.Fatalf("referral sum mismatch: records=%d kpis=%d", referrals, kpis.TotalReferrals)
	}
	if kpis.TotalActiveAffiliates != 1 {
		t.Fatalf("inactive affiliates must not count as active, got %d", kpis.TotalActiveAffiliates)
	}
	if kpis.TotalActiveAffiliates > len(records) {
		t.Fatalf("active count %d exceeds record count %d", kpis.TotalActiveAffiliates, len(records))
	}
}

func TestComputePerformanceIgnoresDepositsOutsideWindow(t *testing.T) {
	repo := newFakeRepo(ports.Affiliate{AffiliateID: "aff_1", Name: "Marina", ReferralCode: "AFF1", CommissionRate: 10, IsActive: true})
	service := Service{
		Repo:     repo,
		Editions: januaryWindow(),
		Deposits: fakeDeposits{deposits: []ports.DepositTransaction{
			{TransactionID: "tx_early", AmountCentavos: 1000, Description: "AFF1", CreatedAt: time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC)},
			{TransactionID: "tx_lower_bound", AmountCentavos: 2000, Description: "AFF1", CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
			{TransactionID: "tx_upper_bound", AmountCentavos: 3000, Description: "AFF1", CreatedAt: time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)},
			{TransactionID: "tx_late", AmountCentavos: 4000, Description: "AFF1", CreatedAt: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		}},
	}

	records, _, err := service.ComputePerformance(context.Background(), "ed_2024_01", "")
	if err != nil {
		t.Fatalf("compute performance failed: %v", err)
	}
	if len(records) != 1 || records[0].TotalDepositedCentavos != 5000 {
		t.Fatalf("expected inclusive-bounds total 5000, got %+v", records)
	}
	if records[0].DirectReferrals != 2 {
		t.Fatalf("expected 2 referrals inside the window, got %d", records[0].DirectReferrals)
	}
}

func TestComputePerformanceEditionNotFound(t *testing.T) {
	service := Service{
		Repo:     newFakeRepo(),
		Editions: fakeEditions{windows: map[string]ports.EditionWindow{}},
		Deposits: fakeDeposits{},
	}
	_, _, err := service.ComputePerformance(context.Background(), "ed_missing", "")
	if !errors.Is(err, domainerrors.ErrEditionNotFound) {
		t.Fatalf("expected edition not found, got %v", err)
	}
}

func TestComputePerformanceWrapsUpstreamFailures(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("connection reset")
	service := Service{
		Repo:     repo,
		Editions: januaryWindow(),
		Deposits: fakeDeposits{},
	}
	_, _, err := service.ComputePerformance(context.Background(), "ed_2024_01", "")
	if !errors.Is(err, domainerrors.ErrUpstreamFetch) {
		t.Fatalf("expected upstream fetch error, got %v", err)
	}

	service.Repo = newFakeRepo(ports.Affiliate{AffiliateID: "aff_1", ReferralCode: "AFF1", CommissionRate: 10})
	service.Deposits = fakeDeposits{err: errors.New("timeout")}
	_, _, err = service.ComputePerformance(context.Background(), "ed_2024_01", "")
	if !errors.Is(err, domainerrors.ErrUpstreamFetch) {
		t.Fatalf("expected upstream fetch error for deposits, got %v", err)
	}
}

func TestComputePerformanceNameSearch(t *testing.T) {
	repo := newFakeRepo(
		ports.Affiliate{AffiliateID: "aff_1", Name: "Marina Costa", ReferralCode: "AFF1", CommissionRate: 10, IsActive: true},
		ports.Affiliate{AffiliateID: "aff_2", Name: "Paulo Lima", ReferralCode: "AFF2", CommissionRate: 10, IsActive: true},
	)
	service := Service{
		Repo:     repo,
		Editions: januaryWindow(),
		Deposits: fakeDeposits{deposits: []ports.DepositTransaction{
			{TransactionID: "tx_1", AmountCentavos: 10000, Description: "AFF1", CreatedAt: time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)},
			{TransactionID: "tx_2", AmountCentavos: 10000, Description: "AFF2", CreatedAt: time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)},
		}},
	}

	records, _, err := service.ComputePerformance(context.Background(), "ed_2024_01", "marina")
	if err != nil {
		t.Fatalf("compute performance failed: %v", err)
	}
	if len(records) != 1 || records[0].AffiliateID != "aff_1" {
		t.Fatalf("expected only marina's record, got %+v", records)
	}
}

func TestSetCommissionRateValidation(t *testing.T) {
	repo := newFakeRepo(ports.Affiliate{AffiliateID: "aff_1", CommissionRate: 5})
	service := Service{Repo: repo}

	if err := service.SetCommissionRate(context.Background(), "aff_1", 120); !errors.Is(err, domainerrors.ErrInvalidCommissionRate) {
		t.Fatalf("expected invalid rate error, got %v", err)
	}
	if err := service.SetCommissionRate(context.Background(), "aff_missing", 10); !errors.Is(err, domainerrors.ErrAffiliateNotFound) {
		t.Fatalf("expected affiliate not found, got %v", err)
	}
	if err := service.SetCommissionRate(context.Background(), "aff_1", 12.5); err != nil {
		t.Fatalf("expected rate update to succeed, got %v", err)
	}
	if repo.rates["aff_1"] != 12.5 {
		t.Fatalf("expected stored rate 12.5, got %v", repo.rates["aff_1"])
	}
}

func TestSetCommissionRatesBulkIsIdempotent(t *testing.T) {
	repo := newFakeRepo(ports.Affiliate{AffiliateID: "aff_1", CommissionRate: 5})
	service := Service{Repo: repo}

	ids := []string{"aff_1", "aff_new"}
	if err := service.SetCommissionRatesBulk(context.Background(), ids, 8); err != nil {
		t.Fatalf("bulk update failed: %v", err)
	}
	first := map[string]float64{}
	for id, rate := range repo.rates {
		first[id] = rate
	}

	if err := service.SetCommissionRatesBulk(context.Background(), ids, 8); err != nil {
		t.Fatalf("repeated bulk update failed: %v", err)
	}
	if len(repo.rates) != len(first) {
		t.Fatalf("repeat changed stored row count: %d vs %d", len(repo.rates), len(first))
	}
	for id, rate := range first {
		if repo.rates[id] != rate {
			t.Fatalf("repeat changed rate for %s: %v vs %v", id, repo.rates[id], rate)
		}
	}
}

func TestSetCommissionRatesBulkRequiresIDs(t *testing.T) {
	service := Service{Repo: newFakeRepo()}
	if err := service.SetCommissionRatesBulk(context.Background(), []string{" ", ""}, 8); !errors.Is(err, domainerrors.ErrNoAffiliateIDs) {
		t.Fatalf("expected missing ids error, got %v", err)
	}
}

func TestSetAllActiveCommissionRateSkipsInactive(t *testing.T) {
	repo := newFakeRepo(
		ports.Affiliate{AffiliateID: "aff_active", CommissionRate: 5, IsActive: true},
		ports.Affiliate{AffiliateID: "aff_inactive", CommissionRate: 7, IsActive: false},
	)
	service := Service{Repo: repo}

	updated, err := service.SetAllActiveCommissionRate(context.Background(), 9)
	if err != nil {
		t.Fatalf("all-active update failed: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected one row updated, got %d", updated)
	}
	if repo.rates["aff_active"] != 9 {
		t.Fatalf("active affiliate not updated: %v", repo.rates["aff_active"])
	}
	if repo.rates["aff_inactive"] != 7 {
		t.Fatalf("inactive affiliate must stay untouched, got %v", repo.rates["aff_inactive"])
	}
}

func TestReferralLinkAndQR(t *testing.T) {
	repo := newFakeRepo(ports.Affiliate{AffiliateID: "aff_1", ReferralCode: "aff1", CommissionRate: 10})
	service := Service{Repo: repo, PublicBaseURL: "https://raspepix.example/"}

	if link := service.ReferralLink("aff1"); link != "https://raspepix.example/r/AFF1" {
		t.Fatalf("unexpected referral link: %s", link)
	}

	png, err := service.ReferralQR(context.Background(), "aff_1")
	if err != nil {
		t.Fatalf("referral qr failed: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("expected non-empty png payload")
	}

	if _, err := service.ReferralQR(context.Background(), "aff_missing"); !errors.Is(err, domainerrors.ErrAffiliateNotFound) {
		t.Fatalf("expected affiliate not found, got %v", err)
	}
}
