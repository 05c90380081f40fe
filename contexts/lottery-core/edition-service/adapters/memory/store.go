package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"raspepix/contexts/lottery-core/edition-service/domain/entities"
	domainerrors "raspepix/contexts/lottery-core/edition-service/domain/errors"
	"raspepix/contexts/lottery-core/edition-service/ports"

	"github.com/google/uuid"
)

type outboxRow struct {
	message     ports.OutboxMessage
	published   bool
	publishedAt time.Time
}

type Store struct {
	mu sync.RWMutex

	editions map[string]entities.Edition
	tickets  []entities.InstantTicket
	outbox   []outboxRow
}

func NewStore() *Store {
	return &Store{
		editions: make(map[string]entities.Edition),
	}
}

func (s *Store) SeedEdition(edition entities.Edition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editions[edition.EditionID] = edition
}

func (s *Store) CreateEdition(_ context.Context, edition entities.Edition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.editions[edition.EditionID]; exists {
		return domainerrors.ErrEditionAlreadyExists
	}
	s.editions[edition.EditionID] = edition
	return nil
}

func (s *Store) GetEdition(_ context.Context, editionID string) (entities.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.editions[strings.TrimSpace(editionID)]
	if !exists {
		return entities.Edition{}, domainerrors.ErrEditionNotFound
	}
	return item, nil
}

func (s *Store) ListEditions(_ context.Context, filter ports.EditionFilter) ([]entities.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Edition, 0, len(s.editions))
	for _, edition := range s.editions {
		if filter.Status != "" && edition.Status != filter.Status {
			continue
		}
		items = append(items, edition)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].StartsAt.Equal(items[j].StartsAt) {
			return items[i].EditionID < items[j].EditionID
		}
		return items[i].StartsAt.Before(items[j].StartsAt)
	})
	return items, nil
}

func (s *Store) TransitionStatus(
	_ context.Context,
	editionID string,
	from entities.EditionStatus,
	to entities.EditionStatus,
	transitionedAt time.Time,
	envelope ports.EventEnvelope,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edition, exists := s.editions[strings.TrimSpace(editionID)]
	if !exists {
		return domainerrors.ErrEditionNotFound
	}
	if edition.Status != from {
		return domainerrors.ErrInvalidStateTransition
	}

	at := transitionedAt.UTC()
	edition.Status = to
	edition.UpdatedAt = at
	switch to {
	case entities.EditionStatusActive:
		edition.ActivatedAt = &at
	case entities.EditionStatusClosed:
		edition.ClosedAt = &at
	}
	s.editions[edition.EditionID] = edition
	return s.appendOutboxLocked(envelope)
}

func (s *Store) AttachWinningNumbers(
	_ context.Context,
	editionID string,
	numbers []string,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edition, exists := s.editions[strings.TrimSpace(editionID)]
	if !exists {
		return domainerrors.ErrEditionNotFound
	}
	edition.WinningNumbers = append([]string(nil), numbers...)
	edition.UpdatedAt = updatedAt.UTC()
	s.editions[edition.EditionID] = edition
	return nil
}

func (s *Store) SaveInstantTickets(_ context.Context, tickets []entities.InstantTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = append(s.tickets, tickets...)
	return nil
}

func (s *Store) ListInstantTickets(_ context.Context, editionID string) ([]entities.InstantTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.InstantTicket, 0)
	for _, ticket := range s.tickets {
		if ticket.EditionID == strings.TrimSpace(editionID) {
			items = append(items, ticket)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Number < items[j].Number
	})
	return items, nil
}

func (s *Store) CountInstantTickets(_ context.Context, editionID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, ticket := range s.tickets {
		if ticket.EditionID == strings.TrimSpace(editionID) {
			count++
		}
	}
	return count, nil
}

func (s *Store) CloseEditionsPastEnd(
	_ context.Context,
	now time.Time,
	limit int,
) ([]ports.ClosedEdition, error) {
	if limit <= 0 {
		limit = 100
	}
	timestamp := now.UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := make([]entities.Edition, 0)
	for _, edition := range s.editions {
		if edition.Status == entities.EditionStatusActive && edition.EndsAt.Before(timestamp) {
			expired = append(expired, edition)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].EndsAt.Before(expired[j].EndsAt)
	})
	if len(expired) > limit {
		expired = expired[:limit]
	}

	results := make([]ports.ClosedEdition, 0, len(expired))
	for _, edition := range expired {
		at := timestamp
		edition.Status = entities.EditionStatusClosed
		edition.UpdatedAt = at
		edition.ClosedAt = &at
		s.editions[edition.EditionID] = edition

		envelope, err := closeEnvelope(edition.EditionID, timestamp)
		if err != nil {
			return nil, err
		}
		if err := s.appendOutboxLocked(envelope); err != nil {
			return nil, err
		}
		results = append(results, ports.ClosedEdition{EditionID: edition.EditionID})
	}
	return results, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		message := row.message
		message.Payload = append([]byte(nil), row.message.Payload...)
		items = append(items, message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == strings.TrimSpace(outboxID) {
			s.outbox[i].published = true
			s.outbox[i].publishedAt = publishedAt.UTC()
			return nil
		}
	}
	return domainerrors.ErrEditionNotFound
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) appendOutboxLocked(envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	for _, row := range s.outbox {
		if row.message.OutboxID == envelope.EventID {
			if !bytes.Equal(row.message.Payload, payload) {
				return domainerrors.ErrOutboxPayloadConflict
			}
			return nil
		}
	}
	s.outbox = append(s.outbox, outboxRow{
		message: ports.OutboxMessage{
			OutboxID:     envelope.EventID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt.UTC(),
		},
	})
	return nil
}

func closeEnvelope(editionID string, occurredAt time.Time) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(map[string]any{
		"edition_id": editionID,
		"status":     string(entities.EditionStatusClosed),
		"reason":     "sales_window_ended",
	})
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	eventID := uuid.NewString()
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        "edition.closed",
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "edition-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "edition_id",
		PartitionKey:     editionID,
		Data:             payload,
	}, nil
}
