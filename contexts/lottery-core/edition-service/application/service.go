package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"raspepix/contexts/lottery-core/edition-service/domain/entities"
	domainerrors "raspepix/contexts/lottery-core/edition-service/domain/errors"
	"raspepix/contexts/lottery-core/edition-service/ports"
)

const moduleName = "lottery-core/edition-service"

type Service struct {
	Editions ports.Repository
	Tickets  ports.TicketRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Numbers  ports.NumberSource
	Logger   *slog.Logger
}

func (s Service) CreateEdition(ctx context.Context, edition entities.Edition) (entities.Edition, error) {
	edition.Name = strings.TrimSpace(edition.Name)
	edition.CostPlanID = strings.TrimSpace(edition.CostPlanID)
	if !edition.ValidateBasics() {
		return entities.Edition{}, domainerrors.ErrInvalidEditionInput
	}

	now := s.now()
	if strings.TrimSpace(edition.EditionID) == "" {
		id, err := s.IDGen.NewID(ctx)
		if err != nil {
			return entities.Edition{}, err
		}
		edition.EditionID = id
	}
	edition.EditionID = strings.TrimSpace(edition.EditionID)
	edition.Status = entities.EditionStatusFuture
	edition.WinningNumbers = nil
	edition.CreatedAt = now
	edition.UpdatedAt = now
	edition.ActivatedAt = nil
	edition.ClosedAt = nil

	if err := s.Editions.CreateEdition(ctx, edition); err != nil {
		return entities.Edition{}, err
	}
	ResolveLogger(s.Logger).Info("edition created",
		"event", "edition_created",
		"module", moduleName,
		"layer", "application",
		"edition_id", edition.EditionID,
		"starts_at", edition.StartsAt.UTC().Format(time.RFC3339),
		"ends_at", edition.EndsAt.UTC().Format(time.RFC3339),
	)
	return edition, nil
}

func (s Service) GetEdition(ctx context.Context, editionID string) (entities.Edition, error) {
	return s.Editions.GetEdition(ctx, strings.TrimSpace(editionID))
}

func (s Service) ListEditions(ctx context.Context, filter ports.EditionFilter) ([]entities.Edition, error) {
	if filter.Status != "" && !entities.IsSupportedStatus(filter.Status) {
		return nil, domainerrors.ErrInvalidEditionInput
	}
	return s.Editions.ListEditions(ctx, filter)
}

// ActivateEdition moves futuro to ativo and records an edition.activated
// outbox event in the same transaction as the status change.
func (s Service) ActivateEdition(ctx context.Context, editionID string) (entities.Edition, error) {
	edition, err := s.Editions.GetEdition(ctx, strings.TrimSpace(editionID))
	if err != nil {
		return entities.Edition{}, err
	}
	if !edition.CanActivate() {
		return entities.Edition{}, domainerrors.ErrInvalidStateTransition
	}

	now := s.now()
	envelope, err := s.newEditionEnvelope(ctx, "edition.activated", edition.EditionID, now, map[string]any{
		"edition_id": edition.EditionID,
		"status":     string(entities.EditionStatusActive),
		"starts_at":  edition.StartsAt.UTC().Format(time.RFC3339),
		"ends_at":    edition.EndsAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return entities.Edition{}, err
	}
	if err := s.Editions.TransitionStatus(
		ctx,
		edition.EditionID,
		entities.EditionStatusFuture,
		entities.EditionStatusActive,
		now,
		envelope,
	); err != nil {
		return entities.Edition{}, err
	}

	edition.Status = entities.EditionStatusActive
	edition.UpdatedAt = now
	edition.ActivatedAt = &now
	ResolveLogger(s.Logger).Info("edition activated",
		"event", "edition_activated",
		"module", moduleName,
		"layer", "application",
		"edition_id", edition.EditionID,
	)
	return edition, nil
}

// CloseEdition moves ativo to encerrado and records an edition.closed outbox
// event in the same transaction as the status change.
func (s Service) CloseEdition(ctx context.Context, editionID string) (entities.Edition, error) {
	edition, err := s.Editions.GetEdition(ctx, strings.TrimSpace(editionID))
	if err != nil {
		return entities.Edition{}, err
	}
	if !edition.CanClose() {
		return entities.Edition{}, domainerrors.ErrInvalidStateTransition
	}

	now := s.now()
	envelope, err := s.newEditionEnvelope(ctx, "edition.closed", edition.EditionID, now, map[string]any{
		"edition_id": edition.EditionID,
		"status":     string(entities.EditionStatusClosed),
		"reason":     "manual_close",
	})
	if err != nil {
		return entities.Edition{}, err
	}
	if err := s.Editions.TransitionStatus(
		ctx,
		edition.EditionID,
		entities.EditionStatusActive,
		entities.EditionStatusClosed,
		now,
		envelope,
	); err != nil {
		return entities.Edition{}, err
	}

	edition.Status = entities.EditionStatusClosed
	edition.UpdatedAt = now
	edition.ClosedAt = &now
	ResolveLogger(s.Logger).Info("edition closed",
		"event", "edition_closed",
		"module", moduleName,
		"layer", "application",
		"edition_id", edition.EditionID,
	)
	return edition, nil
}

// GenerateInstantPrizes materializes the edition's ticket pool and assigns
// instant prizes to distinct tickets, each valued uniformly within the
// edition's configured bounds. The pool is generated at most once.
func (s Service) GenerateInstantPrizes(ctx context.Context, editionID string) ([]entities.InstantTicket, error) {
	edition, err := s.Editions.GetEdition(ctx, strings.TrimSpace(editionID))
	if err != nil {
		return nil, err
	}
	if edition.Status == entities.EditionStatusClosed {
		return nil, domainerrors.ErrEditionClosed
	}
	existing, err := s.Tickets.CountInstantTickets(ctx, edition.EditionID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, domainerrors.ErrInstantPrizesGenerated
	}

	now := s.now()
	prized := s.pickPrizedPositions(int(edition.TotalInstantTickets), int(edition.InstantPrizesToDistribute))

	tickets := make([]entities.InstantTicket, 0, edition.TotalInstantTickets)
	for position := int64(1); position <= edition.TotalInstantTickets; position++ {
		ticketID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		ticket := entities.InstantTicket{
			TicketID:  ticketID,
			EditionID: edition.EditionID,
			Number:    position,
			CreatedAt: now,
		}
		if prized[position-1] {
			ticket.IsPrized = true
			ticket.PrizeValueCentavos = s.drawPrizeValue(
				edition.MinInstantPrizeValueCentavos,
				edition.MaxInstantPrizeValueCentavos,
			)
		}
		tickets = append(tickets, ticket)
	}

	if err := s.Tickets.SaveInstantTickets(ctx, tickets); err != nil {
		return nil, err
	}
	ResolveLogger(s.Logger).Info("instant prizes generated",
		"event", "edition_instant_prizes_generated",
		"module", moduleName,
		"layer", "application",
		"edition_id", edition.EditionID,
		"total_tickets", edition.TotalInstantTickets,
		"prized_tickets", edition.InstantPrizesToDistribute,
	)
	return tickets, nil
}

func (s Service) ListInstantTickets(ctx context.Context, editionID string) ([]entities.InstantTicket, error) {
	if _, err := s.Editions.GetEdition(ctx, strings.TrimSpace(editionID)); err != nil {
		return nil, err
	}
	return s.Tickets.ListInstantTickets(ctx, strings.TrimSpace(editionID))
}

// ImportWinningNumbers attaches the capitalization-bond draw numbers to the
// edition. Closed editions no longer accept imports.
func (s Service) ImportWinningNumbers(ctx context.Context, editionID string, numbers []string) (entities.Edition, error) {
	edition, err := s.Editions.GetEdition(ctx, strings.TrimSpace(editionID))
	if err != nil {
		return entities.Edition{}, err
	}
	if edition.Status == entities.EditionStatusClosed {
		return entities.Edition{}, domainerrors.ErrEditionClosed
	}

	cleaned := make([]string, 0, len(numbers))
	for _, number := range numbers {
		if trimmed := strings.TrimSpace(number); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return entities.Edition{}, domainerrors.ErrNoWinningNumbers
	}

	now := s.now()
	if err := s.Editions.AttachWinningNumbers(ctx, edition.EditionID, cleaned, now); err != nil {
		return entities.Edition{}, err
	}

	edition.WinningNumbers = cleaned
	edition.UpdatedAt = now
	ResolveLogger(s.Logger).Info("winning numbers imported",
		"event", "edition_winning_numbers_imported",
		"module", moduleName,
		"layer", "application",
		"edition_id", edition.EditionID,
		"count", len(cleaned),
	)
	return edition, nil
}

// pickPrizedPositions marks prizeCount distinct positions out of total using
// a partial Fisher-Yates shuffle over the position indices.
func (s Service) pickPrizedPositions(total int, prizeCount int) []bool {
	prized := make([]bool, total)
	if total <= 0 || prizeCount <= 0 {
		return prized
	}
	if prizeCount > total {
		prizeCount = total
	}

	indices := make([]int, total)
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < prizeCount; i++ {
		j := i + s.Numbers.Intn(total-i)
		indices[i], indices[j] = indices[j], indices[i]
		prized[indices[i]] = true
	}
	return prized
}

func (s Service) drawPrizeValue(minCentavos int64, maxCentavos int64) int64 {
	if maxCentavos <= minCentavos {
		return minCentavos
	}
	return minCentavos + s.Numbers.Int63n(maxCentavos-minCentavos+1)
}

func (s Service) newEditionEnvelope(
	ctx context.Context,
	eventType string,
	editionID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "edition-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "edition_id",
		PartitionKey:     editionID,
		Data:             payload,
	}, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
