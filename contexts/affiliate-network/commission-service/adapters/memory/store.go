package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	domainerrors "raspepix/contexts/affiliate-network/commission-service/domain/errors"
	"raspepix/contexts/affiliate-network/commission-service/ports"
)

// Store backs the commission service with in-memory state for tests and
// local runs. Roster iteration order is insertion order, matching the
// ordering contract of ComputePerformance.
type Store struct {
	mu sync.RWMutex

	affiliates map[string]ports.Affiliate
	order      []string
	editions   map[string]ports.EditionWindow
	deposits   []ports.DepositTransaction
}

func NewStore() *Store {
	return &Store{
		affiliates: make(map[string]ports.Affiliate),
		editions:   make(map[string]ports.EditionWindow),
	}
}

func (s *Store) SeedAffiliate(affiliate ports.Affiliate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(affiliate.AffiliateID)
	if id == "" {
		return
	}
	if _, exists := s.affiliates[id]; !exists {
		s.order = append(s.order, id)
	}
	s.affiliates[id] = affiliate
}

func (s *Store) SeedEdition(window ports.EditionWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editions[strings.TrimSpace(window.EditionID)] = window
}

func (s *Store) SeedDeposit(deposit ports.DepositTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deposits = append(s.deposits, deposit)
}

func (s *Store) GetAffiliate(_ context.Context, affiliateID string) (ports.Affiliate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.affiliates[strings.TrimSpace(affiliateID)]
	if !ok {
		return ports.Affiliate{}, domainerrors.ErrAffiliateNotFound
	}
	return item, nil
}

func (s *Store) ListAffiliates(_ context.Context, filter ports.RosterFilter) ([]ports.Affiliate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.NameSearch))
	items := make([]ports.Affiliate, 0, len(s.order))
	for _, id := range s.order {
		item := s.affiliates[id]
		if term != "" && !strings.Contains(strings.ToLower(item.Name), term) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Store) UpdateCommissionRate(_ context.Context, affiliateID string, rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(affiliateID)
	item, ok := s.affiliates[id]
	if !ok {
		return domainerrors.ErrAffiliateNotFound
	}
	item.CommissionRate = rate
	s.affiliates[id] = item
	return nil
}

func (s *Store) UpsertCommissionRates(_ context.Context, affiliateIDs []string, rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, raw := range affiliateIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		item, ok := s.affiliates[id]
		if !ok {
			item = ports.Affiliate{AffiliateID: id}
			s.order = append(s.order, id)
		}
		item.CommissionRate = rate
		s.affiliates[id] = item
	}
	return nil
}

func (s *Store) UpdateAllActiveCommissionRate(_ context.Context, rate float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for id, item := range s.affiliates {
		if !item.IsActive {
			continue
		}
		item.CommissionRate = rate
		s.affiliates[id] = item
		updated++
	}
	return updated, nil
}

func (s *Store) GetEditionWindow(_ context.Context, editionID string) (ports.EditionWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window, ok := s.editions[strings.TrimSpace(editionID)]
	if !ok {
		return ports.EditionWindow{}, domainerrors.ErrEditionNotFound
	}
	return window, nil
}

func (s *Store) ListDepositsWithin(_ context.Context, from time.Time, to time.Time) ([]ports.DepositTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.DepositTransaction, 0)
	for _, item := range s.deposits {
		if item.CreatedAt.Before(from) || item.CreatedAt.After(to) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
