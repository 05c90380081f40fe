package ports

import (
	"context"
	"time"
)

type Affiliate struct {
	AffiliateID    string
	UserID         string
	Name           string
	Email          string
	ReferralCode   string
	CommissionRate float64 // percent, 0..100
	IsActive       bool
}

type DepositTransaction struct {
	TransactionID  string
	UserID         string
	AmountCentavos int64
	Description    string
	CreatedAt      time.Time
}

type EditionWindow struct {
	EditionID string
	StartsAt  time.Time
	EndsAt    time.Time
}

// PerformanceRecord is derived per aggregation call and never persisted.
type PerformanceRecord struct {
	AffiliateID            string
	Name                   string
	IsActive               bool
	CommissionRate         float64
	DirectReferrals        int
	TotalDepositedCentavos int64
	CommissionCentavos     int64
}

type PerformanceKPIs struct {
	TotalActiveAffiliates    int
	TotalReferrals           int
	TotalDepositedCentavos   int64
	TotalCommissionsCentavos int64
}

type RosterFilter struct {
	// NameSearch restricts the roster to affiliates whose linked user name
	// contains the term, case-insensitively.
	NameSearch string
}

type Repository interface {
	GetAffiliate(ctx context.Context, affiliateID string) (Affiliate, error)
	ListAffiliates(ctx context.Context, filter RosterFilter) ([]Affiliate, error)
	UpdateCommissionRate(ctx context.Context, affiliateID string, rate float64) error
	UpsertCommissionRates(ctx context.Context, affiliateIDs []string, rate float64) error
	UpdateAllActiveCommissionRate(ctx context.Context, rate float64) (int64, error)
}

type EditionSource interface {
	GetEditionWindow(ctx context.Context, editionID string) (EditionWindow, error)
}

type DepositSource interface {
	// ListDepositsWithin returns deposit transactions created inside
	// [from, to], inclusive on both bounds.
	ListDepositsWithin(ctx context.Context, from time.Time, to time.Time) ([]DepositTransaction, error)
}
