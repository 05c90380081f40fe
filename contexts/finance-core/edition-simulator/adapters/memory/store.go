package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "raspepix/contexts/finance-core/edition-simulator/domain/errors"
	"raspepix/contexts/finance-core/edition-simulator/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	plans    map[string]ports.CostPlan
	editions map[string]ports.SimulationEdition
	cards    []ports.SimulationScratchCard
}

func NewStore() *Store {
	return &Store{
		plans:    make(map[string]ports.CostPlan),
		editions: make(map[string]ports.SimulationEdition),
	}
}

func (s *Store) SeedEdition(edition ports.SimulationEdition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editions[strings.TrimSpace(edition.EditionID)] = edition
}

func (s *Store) SeedScratchCard(card ports.SimulationScratchCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append(s.cards, card)
}

func (s *Store) CreateCostPlan(_ context.Context, plan ports.CostPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(plan.PlanID)
	if id == "" {
		return domainerrors.ErrInvalidCostPlan
	}
	if _, exists := s.plans[id]; exists {
		return domainerrors.ErrCostPlanAlreadyExists
	}
	s.plans[id] = plan
	return nil
}

func (s *Store) GetCostPlan(_ context.Context, planID string) (ports.CostPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[strings.TrimSpace(planID)]
	if !ok {
		return ports.CostPlan{}, domainerrors.ErrCostPlanNotFound
	}
	return plan, nil
}

func (s *Store) ListCostPlans(_ context.Context) ([]ports.CostPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.CostPlan, 0, len(s.plans))
	for _, plan := range s.plans {
		items = append(items, plan)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].PlanID < items[j].PlanID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdateCostPlan(_ context.Context, plan ports.CostPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(plan.PlanID)
	if _, ok := s.plans[id]; !ok {
		return domainerrors.ErrCostPlanNotFound
	}
	s.plans[id] = plan
	return nil
}

func (s *Store) GetSimulationEdition(_ context.Context, editionID string) (ports.SimulationEdition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edition, ok := s.editions[strings.TrimSpace(editionID)]
	if !ok {
		return ports.SimulationEdition{}, domainerrors.ErrEditionNotFound
	}
	return edition, nil
}

func (s *Store) ListScratchCards(_ context.Context) ([]ports.SimulationScratchCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.SimulationScratchCard(nil), s.cards...), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
